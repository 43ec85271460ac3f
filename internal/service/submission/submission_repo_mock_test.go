package submission

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	CreateFunc func(ctx context.Context, s *domain.Submission) (*domain.Submission, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.Submission
		}
	}
	lockCreate sync.RWMutex
}

func (mock *submissionRepoMock) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	if mock.CreateFunc == nil {
		panic("submissionRepoMock.CreateFunc: method is nil but submissionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Submission
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *submissionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.Submission
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
