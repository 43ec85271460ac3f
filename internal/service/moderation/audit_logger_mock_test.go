package moderation

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	AppendFunc func(ctx context.Context, e domain.AuditEntry) error

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
	}
	lockAppend sync.RWMutex
}

func (mock *auditLoggerMock) Append(ctx context.Context, e domain.AuditEntry) error {
	if mock.AppendFunc == nil {
		panic("auditLoggerMock.AppendFunc: method is nil but auditLogger.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *auditLoggerMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}
