package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/ratelimit"
	"github.com/heartmarshall/zine-backend/internal/transport/middleware"
)

// magazineParam names the edition segment. GET resolves it as a slug, the
// admin routes as an id.
const magazineParam = "magazine"

type authenticator interface {
	Resolve(r *http.Request) (auth.Principal, error)
	RequireRole(r *http.Request, allowed ...domain.Role) (auth.Principal, error)
}

type rateGuard interface {
	Allow(ctx context.Context, quota, identifier string) (ratelimit.Decision, error)
}

type metricsSink interface {
	RequestStarted() func()
	ObserveRequest(method, route string, status int, d time.Duration)
	Handler() http.Handler
}

// RouterDeps is everything the HTTP surface is built from. Metrics and
// Throttle are optional.
type RouterDeps struct {
	Logger        *slog.Logger
	CORS          config.CORSConfig
	MetricsPath   string
	Errors        *Errors
	Authenticator authenticator
	Guard         rateGuard
	Throttle      *middleware.Throttle
	Metrics       metricsSink

	Auth        *AuthHandler
	Submissions *SubmissionHandler
	Magazines   *MagazineHandler
	Admin       *AdminHandler
	Health      *HealthHandler
}

// NewRouter builds the chi router with the global middleware chain:
// Recovery, RequestID, Metrics, Logger, CORS, Throttle, Authenticate.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger), middleware.RequestID())
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(middleware.Logger(d.Logger), middleware.CORS(d.CORS))
	if d.Throttle != nil {
		r.Use(d.Throttle.Middleware())
	}
	r.Use(middleware.Authenticate(d.Authenticator, d.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorBody{Error: "route not found", Code: CodeNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})

	requireRole := func(roles ...domain.Role) func(http.Handler) http.Handler {
		return middleware.RequireRole(d.Authenticator, d.Errors.WriteError, roles...)
	}
	rate := func(quota string) func(http.Handler) http.Handler {
		return middleware.RateGuard(d.Guard, quota, d.Logger)
	}

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Metrics != nil && d.MetricsPath != "" {
		r.Method(http.MethodGet, d.MetricsPath, d.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(rate(ratelimit.QuotaRegister)).Post("/register", d.Auth.Register)
		r.With(rate(ratelimit.QuotaAuth)).Post("/login", d.Auth.Login)
		r.With(rate(ratelimit.QuotaAuth)).Post("/refresh", d.Auth.Refresh)
		r.Post("/logout", d.Auth.Logout)
		r.With(requireRole()).Get("/me", d.Auth.Me)
	})

	r.Route("/submissions", func(r chi.Router) {
		r.With(rate(ratelimit.QuotaSubmission)).Post("/", d.Submissions.Create)

		r.Group(func(r chi.Router) {
			r.Use(requireRole(domain.RoleAdmin, domain.RoleModerator))
			r.Get("/", d.Submissions.List)
			r.Patch("/{id}/status", d.Submissions.SetStatus)
		})
	})

	r.Route("/magazines", func(r chi.Router) {
		r.Get("/", d.Magazines.List)
		r.Get("/{"+magazineParam+"}", d.Magazines.GetBySlug)
		r.Post("/items/{itemId}/like", d.Magazines.ToggleLike)

		r.Group(func(r chi.Router) {
			r.Use(requireRole(domain.RoleAdmin))
			r.Post("/", d.Magazines.Create)
			r.Put("/{"+magazineParam+"}", d.Magazines.Update)
			r.Patch("/{"+magazineParam+"}", d.Magazines.Transition)
			r.Delete("/{"+magazineParam+"}", d.Magazines.Delete)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireRole(domain.RoleAdmin))
		r.Get("/audit", d.Admin.Audit)
	})

	return r
}
