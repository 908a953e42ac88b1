package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/pkg/auth"
	md "github.com/Astemirdum/library-lending/pkg/middleware"
	"github.com/Astemirdum/library-lending/pkg/storage"
	"github.com/Astemirdum/library-lending/pkg/validate"
	_ "github.com/Astemirdum/library-lending/swagger"
)

type Handler struct {
	librarySvc  LibraryService
	tokens      md.TokenParser
	covers      storage.Storage
	corsOrigins []string
	log         *zap.Logger
}

func New(librarySvc LibraryService, tokens md.TokenParser, covers storage.Storage, corsOrigins []string, log *zap.Logger) *Handler {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Handler{
		librarySvc:  librarySvc,
		tokens:      tokens,
		covers:      covers,
		corsOrigins: corsOrigins,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     h.corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)
	if local, ok := h.covers.(*storage.Local); ok {
		base.Static("/"+storage.PublicPrefix, local.Dir())
	}

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)

	var (
		authed = api.Group("", md.JwtAuthentication(h.tokens))
		staff  = md.RequireRole(string(model.RoleAdmin), string(model.RoleLibrarian))
		admin  = md.RequireRole(string(model.RoleAdmin))
	)

	authed.POST("/borrowings/borrow", h.Borrow)
	authed.POST("/borrowings/return", h.Return)
	authed.GET("/borrowings/book/:bookId/active", h.ActiveBorrowings)
	authed.GET("/borrowings/book/:bookId/history", h.History, staff)
	authed.GET("/borrowings/most-borrowed", h.MostBorrowed, staff)

	authed.POST("/books", h.CreateBook, staff)
	authed.PATCH("/books/:id", h.UpdateBook, staff)

	authed.POST("/users", h.CreateUser, admin)
	authed.GET("/users", h.ListUsers, admin)
	authed.GET("/users/:id", h.GetUser, admin)
	authed.PATCH("/users/:id", h.UpdateUser, admin)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// errorResponse turns service errors into HTTP errors. Business errors keep their message;
// anything else is logged and hidden behind a generic 500.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	var bErr *errs.Error
	if errors.As(err, &bErr) {
		switch bErr.Kind {
		case errs.KindNotFound:
			return echo.NewHTTPError(http.StatusNotFound, bErr.Message)
		case errs.KindInvalidRequest:
			return echo.NewHTTPError(http.StatusBadRequest, bErr.Message)
		}
	}
	if errors.Is(err, errs.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	h.log.Error("internal error",
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// bindValid binds the request body and runs the struct validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// intQuery returns def when the parameter is absent.
func intQuery(c echo.Context, name string, def int) (int, error) {
	param := c.QueryParam(name)
	if param == "" {
		return def, nil
	}
	v, err := strconv.Atoi(param)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return v, nil
}

// caller returns the authenticated user id set by JwtAuthentication.
func caller(c echo.Context) (uuid.UUID, error) {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(id.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return userID, nil
}
