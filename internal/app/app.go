// Package app wires configuration, stores, services and the HTTP router into
// a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/leaddesk/leads-api/internal/api"
	"github.com/leaddesk/leads-api/internal/api/handler"
	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
	"github.com/leaddesk/leads-api/internal/core/service"
	"github.com/leaddesk/leads-api/internal/infrastructure/config"
	"github.com/leaddesk/leads-api/internal/infrastructure/db/mongo"
	"github.com/leaddesk/leads-api/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	mongo  *mongodriver.Client
	redis  *goredis.Client
	server *echo.Echo
}

// New connects the stores, seeds the administrator and builds the router.
// Every failure is returned as a *domain.StartupError.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, &domain.StartupError{Stage: "mongo", Err: err}
	}
	a.mongo = client
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	adminRepo := mongo.NewAdminRepository(db)
	leadRepo := mongo.NewLeadRepository(db)
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		a.close(ctx)
		return nil, &domain.StartupError{Stage: "indexes", Err: err}
	}
	if err := leadRepo.EnsureIndexes(ctx); err != nil {
		a.close(ctx)
		return nil, &domain.StartupError{Stage: "indexes", Err: err}
	}

	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	if err := authService.EnsureAdministrator(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		a.close(ctx)
		return nil, &domain.StartupError{Stage: "admin seed", Err: err}
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, client) },
	}

	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close(ctx)
			return nil, &domain.StartupError{Stage: "redis", Err: err}
		}
		a.redis = rdb
		limiter = redis.NewLoginLimiter(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	a.server = api.NewRouter(api.Deps{
		Auth:        authService,
		Leads:       service.NewLeadService(leadRepo, log),
		Limiter:     limiter,
		Checks:      checks,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	return a, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// disconnects the stores.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", a.cfg.Port)
	errCh := make(chan error, 1)

	go func() {
		a.log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := a.server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		a.close(context.Background())
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close(shutdownCtx)
	if err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	a.log.Info().Msg("server stopped")
	return nil
}

func (a *App) close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
