package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultRetryDelay = 5 * time.Second
	defaultMaxRetries = 3
	defaultMinWait    = time.Second
)

// RefreshFunc renews the session and returns the new access expiry.
type RefreshFunc func(ctx context.Context) (time.Time, error)

// Refresher renews a session lead before each access token expires, on its
// own goroutine. It runs independently of any request and stops on Stop,
// on ErrUnauthenticated, or after maxRetries consecutive failures.
type Refresher struct {
	refresh    RefreshFunc
	lead       time.Duration
	retryDelay time.Duration
	maxRetries int
	minWait    time.Duration
	log        *slog.Logger
	now        func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewRefresher creates a stopped Refresher.
func NewRefresher(fn RefreshFunc, lead time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		refresh:    fn,
		lead:       lead,
		retryDelay: defaultRetryDelay,
		maxRetries: defaultMaxRetries,
		minWait:    defaultMinWait,
		log:        logger.With("component", "session_refresher"),
		now:        time.Now,
	}
}

// Start schedules the first refresh for expiresAt minus lead. A running
// schedule is stopped first.
func (r *Refresher) Start(expiresAt time.Time) {
	r.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.err = nil
	r.mu.Unlock()

	go func() {
		defer close(done)
		err := r.run(ctx, expiresAt)

		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
	}()
}

// Stop cancels the schedule and waits for an in-flight refresh to return.
// It is safe to call on a stopped Refresher.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()
}

// Done is closed when the current schedule ends. It is nil before Start.
func (r *Refresher) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Err reports why the last schedule ended on its own: ErrUnauthenticated or
// the final refresh failure. It is nil while running and after Stop.
func (r *Refresher) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Refresher) run(ctx context.Context, expiresAt time.Time) error {
	next := expiresAt.Add(-r.lead)
	failures := 0

	for {
		timer := time.NewTimer(max(next.Sub(r.now()), 0))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		exp, err := r.refresh(ctx)
		switch {
		case err == nil:
			failures = 0
			next = exp.Add(-r.lead)
			if floor := r.now().Add(r.minWait); next.Before(floor) {
				next = floor
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrUnauthenticated):
			r.log.Info("session ended, refresh stopped")
			return err
		default:
			failures++
			if failures > r.maxRetries {
				r.log.Error("refresh failed, giving up",
					slog.Int("attempts", failures),
					slog.String("error", err.Error()))
				return err
			}
			r.log.Warn("refresh failed, retrying",
				slog.Int("attempt", failures),
				slog.Duration("delay", r.retryDelay),
				slog.String("error", err.Error()))
			next = r.now().Add(r.retryDelay)
		}
	}
}
