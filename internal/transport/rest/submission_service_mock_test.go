package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/submission"
)

var _ submissionService = &submissionServiceMock{}

type submissionServiceMock struct {
	CreateFunc func(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input submission.CreateInput
		}
	}
	lockCreate sync.RWMutex
}

func (mock *submissionServiceMock) Create(ctx context.Context, input submission.CreateInput) (*domain.Submission, error) {
	if mock.CreateFunc == nil {
		panic("submissionServiceMock.CreateFunc: method is nil but submissionService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *submissionServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input submission.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
