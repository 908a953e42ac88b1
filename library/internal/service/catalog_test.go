package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

type stubCatalog struct {
	books     []model.Book
	available map[uuid.UUID]int
	err       error
	listCalls int
}

func (r *stubCatalog) CreateBook(_ context.Context, req model.CreateBookRequest) (model.Book, error) {
	if r.err != nil {
		return model.Book{}, r.err
	}
	return model.Book{ID: uuid.New(), Title: req.Title, TotalQuantity: req.TotalQuantity}, nil
}

func (r *stubCatalog) GetBook(context.Context, uuid.UUID) (model.Book, error) {
	return model.Book{}, repository.ErrNotFound
}

func (r *stubCatalog) ListBooks(_ context.Context, _ string, _, _ int) ([]model.Book, int, error) {
	r.listCalls++
	return r.books, len(r.books), nil
}

func (r *stubCatalog) UpdateBook(context.Context, uuid.UUID, model.UpdateBookRequest) (model.Book, error) {
	return model.Book{}, r.err
}

func (r *stubCatalog) Availability(context.Context, []uuid.UUID) (map[uuid.UUID]int, error) {
	return r.available, nil
}

func TestCatalog_ListBooksMergesFreshAvailability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	book := model.Book{ID: uuid.New(), Title: "Dune", TotalQuantity: 3, AvailableQuantity: 3}
	repo := &stubCatalog{books: []model.Book{book}}
	c := newMemCache()
	s := NewCatalog(repo, c, 0, zap.NewNop())

	first, err := s.ListBooks(ctx, model.SearchBooksRequest{Page: 1, Limit: model.DefaultLimit})
	require.NoError(t, err)
	require.Equal(t, 3, first.Data[0].AvailableQuantity)
	require.Equal(t, model.Paging{Total: 1, Page: 1, Limit: model.DefaultLimit, TotalPages: 1}, first.Paging)

	raw, ok := c.Get(ctx, "books:list:1:10")
	require.True(t, ok)
	require.Contains(t, raw, `"availableQuantity":0`)

	repo.available = map[uuid.UUID]int{book.ID: 1}
	second, err := s.ListBooks(ctx, model.SearchBooksRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)
	require.Equal(t, 1, second.Data[0].AvailableQuantity)
}

func TestCatalog_SearchUsesOwnKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &stubCatalog{}
	c := newMemCache()
	s := NewCatalog(repo, c, 0, zap.NewNop())

	_, err := s.ListBooks(ctx, model.SearchBooksRequest{Query: "dune", Page: 2, Limit: 5})
	require.NoError(t, err)
	_, ok := c.Get(ctx, "books:search:dune:2:5")
	require.True(t, ok)
}

func TestCatalog_CreateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	over := 5

	tests := []struct {
		name    string
		req     model.CreateBookRequest
		repoErr error
		wantErr error
	}{
		{
			name: "ok",
			req:  model.CreateBookRequest{Title: "Dune", TotalQuantity: 3},
		},
		{
			name:    "available exceeds total",
			req:     model.CreateBookRequest{Title: "Dune", TotalQuantity: 3, AvailableQuantity: &over},
			wantErr: errs.ErrAvailableExceeds,
		},
		{
			name:    "duplicate isbn",
			req:     model.CreateBookRequest{Title: "Dune", TotalQuantity: 3},
			repoErr: &repository.ErrUniqueViolation{Constraint: "books_isbn_key"},
			wantErr: errs.ErrIsbnExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newMemCache()
			c.Set(ctx, "books:list:1:10", "[]", 0)
			c.Set(ctx, "reports:most-borrowed:10", "[]", 0)
			s := NewCatalog(&stubCatalog{err: tt.repoErr}, c, 0, zap.NewNop())

			_, err := s.CreateBook(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, ok := c.Get(ctx, "books:list:1:10")
				require.True(t, ok)
				return
			}
			require.NoError(t, err)
			_, ok := c.Get(ctx, "books:list:1:10")
			require.False(t, ok)
			_, ok = c.Get(ctx, "reports:most-borrowed:10")
			require.False(t, ok)
		})
	}
}

func TestCatalog_ErrorMapping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewCatalog(&stubCatalog{}, nil, 0, zap.NewNop())
	_, err := s.GetBook(ctx, uuid.New())
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	s = NewCatalog(&stubCatalog{err: repository.ErrCapacityBelowBorrowed}, nil, 0, zap.NewNop())
	total := 1
	_, err = s.UpdateBook(ctx, uuid.New(), model.UpdateBookRequest{TotalQuantity: &total})
	require.ErrorIs(t, err, errs.ErrTotalBelowLent)
}
