package middleware

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/ratelimit"
)

var _ quotaGuard = &quotaGuardMock{}

type quotaGuardMock struct {
	AllowFunc func(ctx context.Context, quota string, identifier string) (ratelimit.Decision, error)

	calls struct {
		Allow []struct {
			Ctx        context.Context
			Quota      string
			Identifier string
		}
	}
	lockAllow sync.RWMutex
}

func (mock *quotaGuardMock) Allow(ctx context.Context, quota string, identifier string) (ratelimit.Decision, error) {
	if mock.AllowFunc == nil {
		panic("quotaGuardMock.AllowFunc: method is nil but quotaGuard.Allow was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Quota      string
		Identifier string
	}{Ctx: ctx, Quota: quota, Identifier: identifier}
	mock.lockAllow.Lock()
	mock.calls.Allow = append(mock.calls.Allow, callInfo)
	mock.lockAllow.Unlock()
	return mock.AllowFunc(ctx, quota, identifier)
}

func (mock *quotaGuardMock) AllowCalls() []struct {
	Ctx        context.Context
	Quota      string
	Identifier string
} {
	mock.lockAllow.RLock()
	calls := mock.calls.Allow
	mock.lockAllow.RUnlock()
	return calls
}
