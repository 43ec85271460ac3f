package audit

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc            func(ctx context.Context, e domain.AuditEntry) error
	AppendInSavepointFunc func(ctx context.Context, e domain.AuditEntry) error
	QueryFunc             func(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, int, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		AppendInSavepoint []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		Query []struct {
			Ctx context.Context
			F   domain.AuditFilter
		}
	}
	lockAppend            sync.RWMutex
	lockAppendInSavepoint sync.RWMutex
	lockQuery             sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, e domain.AuditEntry) error {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but auditRepo.Append was just called")
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

func (mock *auditRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditRepoMock) AppendInSavepoint(ctx context.Context, e domain.AuditEntry) error {
	if mock.AppendInSavepointFunc == nil {
		panic("auditRepoMock.AppendInSavepointFunc: method is nil but auditRepo.AppendInSavepoint was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockAppendInSavepoint.Lock()
	mock.calls.AppendInSavepoint = append(mock.calls.AppendInSavepoint, callInfo)
	mock.lockAppendInSavepoint.Unlock()
	return mock.AppendInSavepointFunc(ctx, e)
}

func (mock *auditRepoMock) AppendInSavepointCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppendInSavepoint.RLock()
	calls := mock.calls.AppendInSavepoint
	mock.lockAppendInSavepoint.RUnlock()
	return calls
}

func (mock *auditRepoMock) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, int, error) {
	if mock.QueryFunc == nil {
		panic("auditRepoMock.QueryFunc: method is nil but auditRepo.Query was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.AuditFilter
	}{Ctx: ctx, F: f}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, f)
}

func (mock *auditRepoMock) QueryCalls() []struct {
	Ctx context.Context
	F   domain.AuditFilter
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}
