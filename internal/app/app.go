package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/metrics"
	"github.com/heartmarshall/zine-backend/internal/ratelimit"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
	"github.com/heartmarshall/zine-backend/internal/transport/rest"
)

const (
	rateStoreMemory = "memory"
	rateStoreRedis  = "redis"

	throttleIdle = 10 * time.Minute
)

// App is the assembled HTTP application.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	services *Services
	handler  http.Handler

	memStore *ratelimit.MemoryStore
	redis    *redis.Client
}

// Run is the application entry point for `zine serve`. It loads
// configuration, connects to the database and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("env", cfg.App.Env),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	a, err := New(ctx, cfg, logger, pool)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

// New builds services, the rate guard and the router over pool.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	a.services = NewServices(cfg, logger, pool, m)

	store, err := a.rateStore(ctx)
	if err != nil {
		return nil, err
	}
	guard := ratelimit.NewGuard(logger, store, ratelimit.QuotasFromConfig(cfg.RateLimit)...)
	if m != nil {
		guard = guard.WithRecorder(m)
	}

	checks := []rest.Check{{Name: "database", Ping: pool.Ping}}
	if a.redis != nil {
		checks = append(checks, rest.Check{
			Name:     "rate_store",
			Ping:     func(ctx context.Context) error { return a.redis.Ping(ctx).Err() },
			Optional: true,
		})
	}

	errs := rest.NewErrors(logger, !cfg.App.IsProduction())
	deps := rest.RouterDeps{
		Logger:        logger,
		CORS:          cfg.CORS,
		MetricsPath:   cfg.Metrics.Path,
		Errors:        errs,
		Authenticator: auth.NewAuthenticator(a.services.Tokens, cfg.Auth.TrustUpstreamHeaders),
		Guard:         guard,

		Auth:        rest.NewAuthHandler(a.services.Auth, errs, cfg.App.IsProduction(), logger),
		Submissions: rest.NewSubmissionHandler(a.services.Submissions, a.services.Moderation, errs),
		Magazines:   rest.NewMagazineHandler(a.services.Publication, a.services.Likes, errs),
		Admin:       rest.NewAdminHandler(a.services.Audit, errs),
		Health:      rest.NewHealthHandler(Version, checks...),
	}
	if m != nil {
		deps.Metrics = m
	}
	if cfg.RateLimit.ThrottleRPS > 0 {
		deps.Throttle = middleware.NewThrottle(cfg.RateLimit.ThrottleRPS, cfg.RateLimit.ThrottleBurst, throttleIdle)
	}

	a.handler = rest.NewRouter(deps)
	return a, nil
}

func (a *App) rateStore(ctx context.Context) (ratelimit.Store, error) {
	switch a.cfg.RateLimit.Store {
	case rateStoreRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		// Guard fails open, so an unreachable Redis only degrades limiting.
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.log.Warn("redis unreachable at startup",
				slog.String("addr", a.cfg.Redis.Addr),
				slog.String("error", err.Error()))
		}
		return ratelimit.NewRedisStore(a.redis, a.cfg.RateLimit.KeyPrefix), nil
	case rateStoreMemory, "":
		a.memStore = ratelimit.NewMemoryStore()
		return a.memStore, nil
	default:
		return nil, fmt.Errorf("app: unknown rate limit store %q", a.cfg.RateLimit.Store)
	}
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Serve runs the HTTP server and background loops until ctx is cancelled or
// one of them fails. The server drains within server.shutdown_timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if a.memStore != nil {
		g.Go(func() error {
			a.memStore.Run(gctx, a.cfg.RateLimit.SweepInterval)
			return nil
		})
	}

	if a.cfg.Auth.CleanupInterval > 0 {
		g.Go(func() error {
			a.cleanupLoop(gctx, a.cfg.Auth.CleanupInterval)
			return nil
		})
	}

	return g.Wait()
}

// cleanupLoop deletes expired refresh sessions every interval. Failures are
// logged by the service and retried on the next tick.
func (a *App) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = a.services.Auth.CleanupExpiredTokens(ctx)
		}
	}
}

// Close releases the Redis client if one was opened.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
}
