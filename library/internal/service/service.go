package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/cache"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
	"github.com/Astemirdum/library-lending/pkg/kafka"
)

type Repository interface {
	repository.Lending
	repository.Catalog
	repository.Users
}

type Service struct {
	*Lending
	*Catalog
	*Reports
	*Users
}

type Deps struct {
	Repo     Repository
	Reports  repository.Reports
	Cache    cache.Cache
	CacheTTL time.Duration
	Enqueuer kafka.Enqueuer
	Issuer   TokenIssuer
}

// NewService wires the services. Without an Enqueuer, borrowing events invalidate cached reports in process.
func NewService(d Deps, log *zap.Logger) *Service {
	reports := NewReports(d.Reports, d.Cache, d.CacheTTL, log)
	enqueuer := d.Enqueuer
	if enqueuer == nil {
		enqueuer = localEvents{reports: reports}
	}
	return &Service{
		Lending: NewLending(d.Repo, enqueuer, log),
		Catalog: NewCatalog(d.Repo, d.Cache, d.CacheTTL, log),
		Reports: reports,
		Users:   NewUsers(d.Repo, d.Issuer, log),
	}
}

// localEvents stands in for the broker when Kafka is not configured.
type localEvents struct {
	reports *Reports
}

func (e localEvents) Enqueue(_, _ string, v any) error {
	event, ok := v.(model.BorrowingEvent)
	if !ok {
		return nil
	}
	return e.reports.InvalidateReports(context.Background(), event)
}
