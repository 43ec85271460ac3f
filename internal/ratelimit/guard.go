package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// Named quotas.
const (
	QuotaAuth       = "auth"
	QuotaRegister   = "register"
	QuotaUpload     = "upload"
	QuotaSubmission = "submission"
)

// Quota allows Limit requests per Window.
type Quota struct {
	Name   string
	Limit  int
	Window time.Duration
}

// QuotasFromConfig converts the configured quotas.
func QuotasFromConfig(cfg config.RateLimitConfig) []Quota {
	named := cfg.Quotas()
	out := make([]Quota, 0, len(named))
	for _, name := range []string{QuotaAuth, QuotaRegister, QuotaUpload, QuotaSubmission} {
		q := named[name]
		out = append(out, Quota{Name: name, Limit: q.Limit, Window: q.Window})
	}
	return out
}

// Decision describes an allowed request's standing in its window.
type Decision struct {
	Quota     string
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type rejectionRecorder interface {
	RateLimited(quota string)
}

// Guard enforces named quotas over a Store.
type Guard struct {
	log      *slog.Logger
	store    Store
	quotas   map[string]Quota
	recorder rejectionRecorder
	now      func() time.Time
}

// NewGuard creates a Guard for the given quotas.
func NewGuard(logger *slog.Logger, store Store, quotas ...Quota) *Guard {
	m := make(map[string]Quota, len(quotas))
	for _, q := range quotas {
		m[q.Name] = q
	}
	return &Guard{
		log:    logger.With("component", "rate_guard"),
		store:  store,
		quotas: m,
		now:    time.Now,
	}
}

// WithRecorder attaches a rejection counter (metrics).
func (g *Guard) WithRecorder(r rejectionRecorder) *Guard {
	g.recorder = r
	return g
}

// Quota returns the named quota.
func (g *Guard) Quota(name string) (Quota, bool) {
	q, ok := g.quotas[name]
	return q, ok
}

// Allow counts one request for identifier under quota. It returns a
// *domain.RateLimitError once the window's limit is exceeded. Store failures
// fail open: the request is allowed and the failure is logged.
func (g *Guard) Allow(ctx context.Context, quota, identifier string) (Decision, error) {
	q, ok := g.quotas[quota]
	if !ok {
		return Decision{}, fmt.Errorf("ratelimit: unknown quota %q", quota)
	}

	w, err := g.store.Hit(ctx, q.Name+":"+identifier, q.Window)
	if err != nil {
		g.log.WarnContext(ctx, "rate store unavailable, allowing request",
			slog.String("quota", q.Name),
			slog.String("error", err.Error()))
		return Decision{Quota: q.Name, Limit: q.Limit, Remaining: q.Limit, ResetAt: g.now().Add(q.Window)}, nil
	}

	if w.Count > q.Limit {
		if g.recorder != nil {
			g.recorder.RateLimited(q.Name)
		}
		g.log.InfoContext(ctx, "rate limit exceeded",
			slog.String("quota", q.Name),
			slog.String("identifier", identifier),
			slog.Int("count", w.Count))
		return Decision{}, &domain.RateLimitError{
			Quota:     q.Name,
			Limit:     q.Limit,
			Remaining: 0,
			ResetAt:   w.ResetAt,
		}
	}

	return Decision{
		Quota:     q.Name,
		Limit:     q.Limit,
		Remaining: q.Limit - w.Count,
		ResetAt:   w.ResetAt,
	}, nil
}
