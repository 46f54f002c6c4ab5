package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/config"
	"github.com/zllibrary/library-service/library/internal/events"
	"github.com/zllibrary/library-service/library/internal/handler"
	"github.com/zllibrary/library-service/library/internal/repository"
	"github.com/zllibrary/library-service/library/internal/server"
	"github.com/zllibrary/library-service/library/internal/service"
	"github.com/zllibrary/library-service/library/migrations"
	"github.com/zllibrary/library-service/pkg/kafka"
	"github.com/zllibrary/library-service/pkg/logger"
	"github.com/zllibrary/library-service/pkg/metrics"
	"github.com/zllibrary/library-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log, err := logger.NewLogger(cfg.Log, "library")
	if err != nil {
		return errors.Wrap(err, "logger init")
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log,
		repository.WithTxTimeout(cfg.Database.TxTimeout),
		repository.WithLockTimeout(cfg.Database.LockTimeout),
	)
	if err != nil {
		return errors.Wrap(err, "repo")
	}
	stats := repository.NewStats(db, log)

	publisher, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("publisher close", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.NewService(repo, log,
		service.WithMaxBorrowedBooks(cfg.Lending.MaxBorrowedBooks),
		service.WithDefaultLoanPeriod(cfg.Lending.DefaultLoanPeriod),
		service.WithPublisher(publisher),
		service.WithMetrics(metrics.NewLending(reg)),
	)
	reports := service.NewReports(stats, repo, log,
		service.WithActiveWindowDays(cfg.Lending.ActiveResidentsWindowDays),
	)

	h := handler.New(svc, reports, log,
		handler.WithAuth(cfg.Auth),
		handler.WithMetrics(metrics.Handler(reg)),
	)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	runErr := make(chan error, 1)
	go func() {
		runErr <- srv.Run()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case err = <-runErr:
		if err != nil {
			return errors.Wrap(err, "server run")
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (events.Publisher, error) {
	if !cfg.Enabled() {
		log.Info("kafka is not configured, lending events are not published")
		return events.NewNopPublisher(), nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "kafka.NewProducer")
	}
	return events.NewKafkaPublisher(producer, cfg.Topic, log), nil
}
