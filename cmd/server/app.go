package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/events"
	"github.com/phrazzld/cards-api/internal/generation"
	"github.com/phrazzld/cards-api/internal/platform/memory"
	"github.com/phrazzld/cards-api/internal/platform/metrics"
	"github.com/phrazzld/cards-api/internal/platform/postgres"
	cardredis "github.com/phrazzld/cards-api/internal/platform/redis"
	"github.com/phrazzld/cards-api/internal/service"
	"github.com/phrazzld/cards-api/internal/service/auth"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Connections owned by the application; either may be nil.
	db    *sql.DB
	redis *cardredis.Client

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	cardStore   store.CardStore
	cardService service.CardService
	emitter     *events.InMemoryEventEmitter

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService
}

// newApplication creates a new application instance with all dependencies initialized.
// db must be non-nil for the postgres backend and is ignored otherwise.
// Connections opened here are closed again when a later step fails; db stays owned by the caller.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (_ *application, err error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	switch cfg.Database.Backend {
	case config.BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres backend requires a database connection")
		}
		app.cardStore = postgres.NewPostgresCardStore(db, logger)
	case config.BackendMemory:
		logger.Warn("using in-memory card store; cards are lost on restart")
		app.cardStore = memory.NewCardStore(logger)
	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Database.Backend)
	}

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.NewLogHandler(logger))

	redisClient, err := cardredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
	}
	if redisClient != nil {
		app.redis = redisClient
		defer func() {
			if err != nil {
				app.closeRedis()
			}
		}()
		ttl := time.Duration(cfg.Redis.CacheTTLSeconds) * time.Second
		app.cardStore = cardredis.NewCachedCardStore(app.cardStore, redisClient, ttl, logger)
		logger.Info("card cache enabled", slog.Duration("ttl", ttl))

		if cfg.Redis.EventsChannel != "" {
			publisher := cardredis.NewEventPublisher(redisClient, cfg.Redis.EventsChannel)
			app.emitter.RegisterHandler(publisher)
			logger.Info("publishing card events", slog.String("channel", publisher.Channel()))
		}
	}

	app.cardService, err = service.NewCardService(
		app.cardStore,
		generation.NewRandomGenerator(),
		logger,
		service.WithMetrics(app.metrics),
		service.WithEventEmitter(app.emitter),
		service.WithMaxCardNumberAttempts(cfg.Cards.MaxCardNumberAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize card service: %w", err)
	}

	if cfg.Auth.Enabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled for mutating card routes",
			slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	} else {
		logger.Warn("JWT authentication disabled; mutating card routes are open")
	}

	return app, nil
}

// cleanup releases the connections held by the application.
func (app *application) cleanup() {
	app.closeRedis()
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}

func (app *application) closeRedis() {
	if app.redis == nil {
		return
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
	}
	app.redis = nil
}
