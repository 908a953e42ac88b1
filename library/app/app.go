package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/config"
	"github.com/Astemirdum/library-lending/library/internal/cache"
	"github.com/Astemirdum/library-lending/library/internal/handler"
	"github.com/Astemirdum/library-lending/library/internal/repository"
	"github.com/Astemirdum/library-lending/library/internal/server"
	"github.com/Astemirdum/library-lending/library/internal/service"
	"github.com/Astemirdum/library-lending/library/migrations"
	"github.com/Astemirdum/library-lending/pkg/auth"
	"github.com/Astemirdum/library-lending/pkg/kafka"
	"github.com/Astemirdum/library-lending/pkg/logger"
	"github.com/Astemirdum/library-lending/pkg/postgres"
	"github.com/Astemirdum/library-lending/pkg/storage"
	"github.com/Astemirdum/library-lending/pkg/tracing"
)

const serviceName = "library"

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, serviceName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, serviceName)
	if err != nil {
		log.Fatal("tracing init", zap.Error(err))
	}

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("pool init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	c := cache.NewNop()
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.CircuitBreaker, log)
		if err != nil {
			log.Fatal("redis init", zap.Error(err))
		}
		defer rc.Close()
		c = rc
	}

	// Without Kafka the service invalidates cached reports in process.
	var enqueuer kafka.Enqueuer
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewSyncProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewSyncProducer", zap.Error(err))
		}
		defer producer.Close()
		enqueuer = kafka.NewEnqueuer(producer)
	}

	issuer := auth.NewIssuer(cfg.Auth)
	svc := service.NewService(service.Deps{
		Repo:     repo,
		Reports:  repository.NewReportsRepository(pool, log),
		Cache:    c,
		CacheTTL: cfg.Redis.TTL,
		Enqueuer: enqueuer,
		Issuer:   issuer,
	}, log)

	if cfg.Kafka.Enabled() {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.ReportsConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		defer consumer.Close()
		go kafka.Consume(ctx, consumer, handler.NewConsumer(svc.InvalidateReports, log), log, kafka.BorrowingTopic)
	}

	h := handler.New(svc, issuer, storage.NewLocal(cfg.Storage), cfg.Server.CORSOrigins, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = shutdownTracing(closeCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
	pool.Close()
	if err = db.Close(); err != nil {
		log.Warn("db.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
