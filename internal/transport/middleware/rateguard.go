package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/ratelimit"
)

//go:generate moq -out quota_guard_mock_test.go -pkg middleware . quotaGuard

type quotaGuard interface {
	Allow(ctx context.Context, quota, identifier string) (ratelimit.Decision, error)
}

type rateLimitedBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}

// RateGuard counts the request against quota before calling next. The caller
// is keyed by ratelimit.Identifier, so it must run after Authenticate.
func RateGuard(guard quotaGuard, quota string, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := guard.Allow(r.Context(), quota, ratelimit.Identifier(r))
			if err != nil {
				var rl *domain.RateLimitError
				if errors.As(err, &rl) {
					WriteRateLimited(w, rl, time.Now())
					return
				}
				logger.ErrorContext(r.Context(), "rate guard failed",
					slog.String("quota", quota),
					slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				return
			}

			setRateHeaders(w.Header(), d.Limit, d.Remaining, d.ResetAt)
			next.ServeHTTP(w, r)
		})
	}
}

// WriteRateLimited renders the 429 response for an exhausted quota.
func WriteRateLimited(w http.ResponseWriter, e *domain.RateLimitError, now time.Time) {
	retry := e.RetryAfter(now)
	setRateHeaders(w.Header(), e.Limit, 0, e.ResetAt)
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	writeJSON(w, http.StatusTooManyRequests, rateLimitedBody{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests. Please try again in " + strconv.Itoa(retry) + " seconds.",
		RetryAfter: retry,
	})
}

func setRateHeaders(h http.Header, limit, remaining int, resetAt time.Time) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}
