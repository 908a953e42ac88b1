package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/cache"
	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

const booksCachePrefix = "books:"

type Catalog struct {
	repo  repository.Catalog
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCatalog(repo repository.Catalog, c cache.Cache, ttl time.Duration, log *zap.Logger) *Catalog {
	if c == nil {
		c = cache.NewNop()
	}
	return &Catalog{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   log.Named("catalog"),
	}
}

func (s *Catalog) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if req.AvailableQuantity != nil && *req.AvailableQuantity > req.TotalQuantity {
		return model.Book{}, errs.ErrAvailableExceeds
	}
	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		return model.Book{}, s.mapError(err)
	}
	s.invalidate(ctx)
	return book, nil
}

func (s *Catalog) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, s.mapError(err)
	}
	return book, nil
}

func (s *Catalog) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.UpdateBook(ctx, id, req)
	if err != nil {
		return model.Book{}, s.mapError(err)
	}
	s.invalidate(ctx)
	return book, nil
}

// ListBooks serves pages from the cache when it can. Cached pages never carry availability:
// it changes on every borrow, so it is always read fresh and merged in.
func (s *Catalog) ListBooks(ctx context.Context, req model.SearchBooksRequest) (model.BookList, error) {
	page, limit := ClampPaging(req.Page, req.Limit)
	key := listCacheKey(req.Query, page, limit)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached model.BookList
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			s.log.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		} else if err := s.mergeAvailability(ctx, cached.Data); err != nil {
			return model.BookList{}, err
		} else {
			return cached, nil
		}
	}

	books, total, err := s.repo.ListBooks(ctx, req.Query, page, limit)
	if err != nil {
		return model.BookList{}, err
	}
	res := model.BookList{
		Data:   books,
		Paging: newPaging(total, page, limit),
	}
	s.store(ctx, key, res)
	return res, nil
}

func (s *Catalog) store(ctx context.Context, key string, list model.BookList) {
	stripped := model.BookList{
		Data:   make([]model.Book, len(list.Data)),
		Paging: list.Paging,
	}
	for i, b := range list.Data {
		b.AvailableQuantity = 0
		stripped.Data[i] = b
	}
	raw, err := json.Marshal(stripped)
	if err != nil {
		s.log.Warn("cache marshal", zap.String("key", key), zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, string(raw), s.ttl)
}

func (s *Catalog) mergeAvailability(ctx context.Context, books []model.Book) error {
	ids := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	available, err := s.repo.Availability(ctx, ids)
	if err != nil {
		return err
	}
	for i := range books {
		books[i].AvailableQuantity = available[books[i].ID]
	}
	return nil
}

// invalidate drops cached listings and reports, since both show catalog fields.
func (s *Catalog) invalidate(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, booksCachePrefix, reportsCachePrefix)
}

func (s *Catalog) mapError(err error) error {
	var uErr *repository.ErrUniqueViolation
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errs.ErrBookNotFound
	case errors.Is(err, repository.ErrCapacityBelowBorrowed):
		return errs.ErrTotalBelowLent
	case errors.As(err, &uErr):
		return errs.ErrIsbnExists
	}
	return err
}

func listCacheKey(q string, page, limit int) string {
	if q == "" {
		return fmt.Sprintf("%slist:%d:%d", booksCachePrefix, page, limit)
	}
	return fmt.Sprintf("%ssearch:%s:%d:%d", booksCachePrefix, q, page, limit)
}
