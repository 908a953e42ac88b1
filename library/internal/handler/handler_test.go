package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/handler"
	service_mocks "github.com/Astemirdum/library-lending/library/internal/handler/mocks"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/pkg/auth"
	"github.com/Astemirdum/library-lending/pkg/storage"
)

var (
	testUserID = uuid.MustParse("7b0d3c47-9f1f-4b0b-9bd2-8d1c5b7a2e11")
	testBookID = uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")
)

func newTestRouter(t *testing.T, svc handler.LibraryService) (*echo.Echo, *auth.Issuer) {
	t.Helper()
	return newTestRouterWithCovers(t, svc, t.TempDir())
}

func newTestRouterWithCovers(t *testing.T, svc handler.LibraryService, coversDir string) (*echo.Echo, *auth.Issuer) {
	t.Helper()
	issuer := auth.NewIssuer(auth.Config{Secret: "test-secret", TokenTTL: time.Hour})
	covers := storage.NewLocal(storage.Config{Dir: coversDir, MaxSize: 1 << 20})
	h := handler.New(svc, issuer, covers, nil, zap.NewNop())
	return h.NewRouter(), issuer
}

func bearer(t *testing.T, issuer *auth.Issuer, role model.Role) string {
	t.Helper()
	token, _, err := issuer.Issue(testUserID.String(), string(role))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandler_Borrow(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		body         string
		withToken    bool
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:      "ok",
			body:      `{"bookId":"` + testBookID.String() + `"}`,
			withToken: true,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), testUserID, testBookID).
					Return(model.Borrowing{ID: testBookID, Book: model.Book{ID: testBookID, Title: "Dune"}}, nil)
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name:         "err. no token",
			body:         `{"bookId":"` + testBookID.String() + `"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"No Authorization Header"}`,
			},
		},
		{
			name:         "err. book id required",
			body:         `{}`,
			withToken:    true,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name:      "err. no copies",
			body:      `{"bookId":"` + testBookID.String() + `"}`,
			withToken: true,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), testUserID, testBookID).
					Return(model.Borrowing{}, errs.ErrNoCopiesAvailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"No copies available"}`,
			},
		},
		{
			name:      "err. book not found",
			body:      `{"bookId":"` + testBookID.String() + `"}`,
			withToken: true,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), testUserID, testBookID).
					Return(model.Borrowing{}, errs.ErrBookNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"Book not found"}`,
			},
		},
		{
			name:      "err. internal",
			body:      `{"bookId":"` + testBookID.String() + `"}`,
			withToken: true,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), testUserID, testBookID).
					Return(model.Borrowing{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"Internal server error"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLibraryService(c)
			e, issuer := newTestRouter(t, svc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/borrowings/borrow", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.withToken {
				r.Header.Set(echo.HeaderAuthorization, bearer(t, issuer, model.RoleMember))
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_BorrowResponseBody(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLibraryService(c)
	e, issuer := newTestRouter(t, svc)

	borrowedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.EXPECT().
		Borrow(gomock.Any(), testUserID, testBookID).
		Return(model.Borrowing{
			ID:         uuid.MustParse("0b6f7f0e-3c3a-4d7a-8a43-1b2f4a9b1c01"),
			UserID:     testUserID,
			BookID:     testBookID,
			BorrowedAt: borrowedAt,
			User:       model.UserRef{ID: testUserID, Email: "reader@example.com", Role: model.RoleMember},
			Book:       model.Book{ID: testBookID, Title: "Dune", TotalQuantity: 2, AvailableQuantity: 1},
		}, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/borrowings/borrow", strings.NewReader(`{"bookId":"`+testBookID.String()+`"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	r.Header.Set(echo.HeaderAuthorization, bearer(t, issuer, model.RoleMember))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "0b6f7f0e-3c3a-4d7a-8a43-1b2f4a9b1c01", got["id"])
	require.Nil(t, got["returnedAt"])
	require.Equal(t, "reader@example.com", got["user"].(map[string]any)["email"])
	require.Equal(t, float64(1), got["book"].(map[string]any)["availableQuantity"])
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	borrowingID := uuid.New()

	var tests = []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "ok",
			expectedCode: http.StatusOK,
		},
		{
			name:         "err. not owner",
			err:          errs.ErrNotOwner,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Cannot return someone else's borrowing"}`,
		},
		{
			name:         "err. already returned",
			err:          errs.ErrAlreadyReturned,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Already returned"}`,
		},
		{
			name:         "err. not found",
			err:          errs.ErrBorrowingNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Borrowing not found"}`,
		},
		{
			name:         "err. invariant",
			err:          errors.Wrap(errs.ErrInvariant, "Borrowing not found after update"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"Internal server error"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLibraryService(c)
			e, issuer := newTestRouter(t, svc)

			svc.EXPECT().
				Return(gomock.Any(), testUserID, borrowingID).
				Return(model.Borrowing{ID: borrowingID}, tt.err)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/borrowings/return", strings.NewReader(`{"borrowingId":"`+borrowingID.String()+`"}`))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(echo.HeaderAuthorization, bearer(t, issuer, model.RoleMember))
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_History(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		role         model.Role
		query        string
		mockBehavior func(r *service_mocks.MockLibraryService)
		expectedCode int
		expectedBody string
	}{
		{
			name:  "ok",
			role:  model.RoleLibrarian,
			query: "?page=2&limit=5",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					HistoryForBook(gomock.Any(), testBookID, 2, 5).
					Return(model.BorrowingList{
						Data:   []model.Borrowing{},
						Paging: model.Paging{Total: 6, Page: 2, Limit: 5, TotalPages: 2},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"data":[],"total":6,"page":2,"limit":5,"totalPages":2}`,
		},
		{
			name: "ok. defaults",
			role: model.RoleAdmin,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					HistoryForBook(gomock.Any(), testBookID, 1, model.DefaultLimit).
					Return(model.BorrowingList{
						Data:   []model.Borrowing{},
						Paging: model.Paging{Page: 1, Limit: model.DefaultLimit},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"data":[],"total":0,"page":1,"limit":10,"totalPages":0}`,
		},
		{
			name:  "ok. zero limit is passed on for clamping",
			role:  model.RoleAdmin,
			query: "?limit=0",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					HistoryForBook(gomock.Any(), testBookID, 1, 0).
					Return(model.BorrowingList{
						Data:   []model.Borrowing{},
						Paging: model.Paging{Page: 1, Limit: 1},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"data":[],"total":0,"page":1,"limit":1,"totalPages":0}`,
		},
		{
			name:         "err. member forbidden",
			role:         model.RoleMember,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			expectedCode: http.StatusForbidden,
			expectedBody: `{"message":"Forbidden resource"}`,
		},
		{
			name:         "err. bad limit",
			role:         model.RoleAdmin,
			query:        "?limit=ten",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"limit is invalid"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLibraryService(c)
			e, issuer := newTestRouter(t, svc)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/borrowings/book/"+testBookID.String()+"/history"+tt.query, http.NoBody)
			r.Header.Set(echo.HeaderAuthorization, bearer(t, issuer, tt.role))
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_MostBorrowed(t *testing.T) {
	t.Parallel()
	item := model.MostBorrowed{BookID: testBookID, Title: "Dune", BorrowCount: 4}
	body := `[{"bookId":"` + testBookID.String() + `","title":"Dune","borrowCount":4}]`

	var tests = []struct {
		name         string
		query        string
		wantLimit    int
		expectedBody string
	}{
		{name: "ok", query: "?limit=3", wantLimit: 3, expectedBody: body},
		{name: "ok. default limit", query: "", wantLimit: model.DefaultLimit, expectedBody: body},
		{name: "ok. zero limit", query: "?limit=0", wantLimit: 0, expectedBody: body},
		{name: "ok. negative limit", query: "?limit=-5", wantLimit: -5, expectedBody: body},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLibraryService(c)
			e, issuer := newTestRouter(t, svc)

			svc.EXPECT().
				MostBorrowed(gomock.Any(), tt.wantLimit).
				Return([]model.MostBorrowed{item}, nil)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/borrowings/most-borrowed"+tt.query, http.NoBody)
			r.Header.Set(echo.HeaderAuthorization, bearer(t, issuer, model.RoleAdmin))
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLibraryService(c)
	e, _ := newTestRouter(t, svc)

	svc.EXPECT().
		Login(gomock.Any(), model.LoginRequest{Email: "reader@example.com", Password: "nope"}).
		Return(model.LoginResponse{}, errs.ErrInvalidCredentials)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"reader@example.com","password":"nope"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, `{"message":"Invalid credentials"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	e, _ := newTestRouter(t, service_mocks.NewMockLibraryService(c))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/health", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}
