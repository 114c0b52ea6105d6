package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"liga/api"
	"liga/application"
	"liga/config"
	"liga/database"
	"liga/domain/events"
	"liga/domain/interfaces"
	"liga/infrastructure"
	"liga/observability"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the configured level and formatter to logrus
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Run initializes and starts the service until the context is cancelled
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.WithField("environment", cfg.Environment).Info("Starting liga service...")

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.TracingExporter)
	if err != nil {
		return err
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		_ = shutdownTracing(ctx)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	eventPublisher, natsClient, err := newEventPublisher(ctx, cfg)
	if err != nil {
		db.Close()
		_ = shutdownTracing(ctx)
		return err
	}

	metrics := observability.Default()
	uowFactory := infrastructure.NewUnitOfWorkFactoryWrapper(db, eventPublisher)
	registerMetricHandlers(uowFactory, metrics)

	settlementHandler := application.NewSettlementHandler(uowFactory, metrics)
	standingsHandler := application.NewStandingsHandler(uowFactory)

	health := api.HealthCheckers{db}
	if natsClient != nil {
		health = append(health, natsClient)
	}

	server := api.NewServer(settlementHandler, standingsHandler, health, metrics.Handler(), cfg.AdminToken)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stopSweeper := func() {}
	if cfg.SettlementSweepInterval > 0 {
		sweeper := application.NewSettlementSweeper(settlementHandler, cfg.SettlementSweepInterval, cfg.SettlementSweepLimit)
		stopSweeper = sweeper.Start(ctx)
	} else {
		log.Info("Settlement sweeper disabled")
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	log.Info("Shutting down liga service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}
	stopSweeper()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Error("Error flushing traces")
	}

	log.Info("Closing database connection...")
	db.Close()
	log.Info("Shutdown completed")

	return runErr
}

// newEventPublisher connects to NATS when configured and falls back to the no-op publisher.
// The returned client is nil when NATS is not configured.
func newEventPublisher(ctx context.Context, cfg *config.Config) (interfaces.EventPublisher, *infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, domain events will not be published")
		return infrastructure.NewNoopEventPublisher(), nil, nil
	}

	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return nil, nil, err
	}

	publisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := publisher.EnsureDomainEventStream(natsClient); err != nil {
		_ = natsClient.Close()
		return nil, nil, fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	return publisher, natsClient, nil
}

// registerMetricHandlers counts committed events in prometheus
func registerMetricHandlers(uowFactory *infrastructure.UnitOfWorkFactoryWrapper, metrics *observability.Metrics) {
	eventTypes := []events.EventType{
		events.EventTypeMatchSettled,
		events.EventTypeWalletCredited,
		events.EventTypeStandingsRecomputed,
		events.EventTypeMatchResultRecorded,
	}
	for _, eventType := range eventTypes {
		uowFactory.RegisterLocalHandler(eventType, func(ctx context.Context, event events.Event) error {
			metrics.RecordEventPublished(string(event.Type()))
			return nil
		})
	}

	uowFactory.RegisterLocalHandler(events.EventTypeStandingsRecomputed, func(ctx context.Context, event events.Event) error {
		metrics.RecordStandingsRecomputed()
		return nil
	})
}
