package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"staffdir/internal/employee"
	employeemetrics "staffdir/internal/employee/metrics"
	"staffdir/internal/employee/service"
	"staffdir/internal/platform/config"
	"staffdir/internal/platform/httpserver"
	"staffdir/internal/platform/logger"
	"staffdir/internal/platform/metrics"
	httptransport "staffdir/internal/transport/http"
	audit "staffdir/pkg/platform/audit"
	"staffdir/pkg/platform/audit/publisher"
	kafkastore "staffdir/pkg/platform/audit/store/kafka"
	"staffdir/pkg/platform/audit/store/logstore"
)

const (
	serviceName     = "staffdir"
	auditBufferSize = 256
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	auditStore, closeAuditStore, err := buildAuditStore(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeAuditStore()
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
		publisher.WithDrainTimeout(cfg.ShutdownTimeout),
	)
	defer auditPublisher.Close()

	svc := employee.NewService(
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(employeemetrics.New(reg)),
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Features: []httptransport.Registrar{employee.NewHandler(svc, log)},
	})
	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting staffdir", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down staffdir", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// buildAuditStore picks the Kafka sink when brokers are configured and the
// process log otherwise.
func buildAuditStore(ctx context.Context, cfg config.Audit, log *slog.Logger) (audit.Store, func(), error) {
	if !cfg.KafkaEnabled() {
		log.Info("audit events routed to log")
		return logstore.New(log), func() {}, nil
	}

	store, err := kafkastore.New(ctx, kafkastore.Config{
		Brokers:         cfg.KafkaBrokers,
		Topic:           cfg.KafkaTopic,
		DeliveryTimeout: kafkastore.DefaultDeliveryTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect audit kafka: %w", err)
	}
	if err := store.Health(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("audit kafka unreachable: %w", err)
	}
	log.Info("audit events routed to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return store, store.Close, nil
}
