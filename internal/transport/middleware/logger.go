package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/heartmarshall/zine-backend/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, and context identifiers (request_id, identity_id).
// The identity is resolved further down the chain, so Authenticate reports it
// back through a holder placed in the context here.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			ann := &requestAnnotations{}
			r = r.WithContext(context.WithValue(r.Context(), annotationsKey{}, ann))

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				slog.String("ip", ClientIP(r)),
			}
			if id, role := ann.get(); id != "" {
				attrs = append(attrs, slog.String("identity_id", id), slog.String("role", role))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

type annotationsKey struct{}

type requestAnnotations struct {
	mu         sync.Mutex
	identityID string
	role       string
}

func (a *requestAnnotations) get() (string, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identityID, a.role
}

// annotateIdentity records the resolved caller for the access log line.
func annotateIdentity(ctx context.Context, identityID, role string) {
	a, ok := ctx.Value(annotationsKey{}).(*requestAnnotations)
	if !ok {
		return
	}
	a.mu.Lock()
	a.identityID, a.role = identityID, role
	a.mu.Unlock()
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
