package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-lending/library/internal/cache"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

const (
	reportsCachePrefix  = "reports:"
	mostBorrowedKeyTmpl = reportsCachePrefix + "most-borrowed:%d"
)

type Reports struct {
	repo  repository.Reports
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewReports(repo repository.Reports, c cache.Cache, ttl time.Duration, log *zap.Logger) *Reports {
	if c == nil {
		c = cache.NewNop()
	}
	return &Reports{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   log.Named("reports"),
	}
}

// ClampPaging keeps page >= 1 and limit within [1, MaxLimit]. Defaults for absent parameters are applied by callers.
func ClampPaging(page, limit int) (int, int) {
	return max(1, page), max(1, min(model.MaxLimit, limit))
}

func newPaging(total, page, limit int) model.Paging {
	return model.Paging{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}

func (s *Reports) HistoryForBook(ctx context.Context, bookID uuid.UUID, page, limit int) (model.BorrowingList, error) {
	page, limit = ClampPaging(page, limit)

	var (
		items []model.Borrowing
		total int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.HistoryForBook(gCtx, bookID, limit, (page-1)*limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountHistory(gCtx, bookID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BorrowingList{}, err
	}
	if items == nil {
		items = make([]model.Borrowing, 0)
	}
	return model.BorrowingList{
		Data:   items,
		Paging: newPaging(total, page, limit),
	}, nil
}

func (s *Reports) MostBorrowed(ctx context.Context, limit int) ([]model.MostBorrowed, error) {
	_, limit = ClampPaging(1, limit)
	key := fmt.Sprintf(mostBorrowedKeyTmpl, limit)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []model.MostBorrowed
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		} else {
			s.log.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		}
	}

	items, err := s.repo.MostBorrowed(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]model.MostBorrowed, 0)
	}
	if raw, err := json.Marshal(items); err == nil {
		s.cache.Set(ctx, key, string(raw), s.ttl)
	}
	return items, nil
}

func (s *Reports) ActiveBorrowingsFor(ctx context.Context, userID, bookID uuid.UUID) ([]model.Borrowing, error) {
	items, err := s.repo.ActiveBorrowings(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]model.Borrowing, 0)
	}
	return items, nil
}

// InvalidateReports drops every cached report. It is driven by borrowing events and catalog edits.
func (s *Reports) InvalidateReports(ctx context.Context, event model.BorrowingEvent) error {
	s.log.Debug("invalidate reports",
		zap.String("type", string(event.Type)),
		zap.Stringer("book_id", event.BookID),
	)
	s.cache.InvalidatePrefix(ctx, reportsCachePrefix)
	return nil
}
