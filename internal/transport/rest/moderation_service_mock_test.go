package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/moderation"
)

var _ moderationService = &moderationServiceMock{}

type moderationServiceMock struct {
	SetStatusFunc func(ctx context.Context, input moderation.SetStatusInput) (*domain.Submission, error)
	ListFunc      func(ctx context.Context, input moderation.ListInput) ([]domain.Submission, int, error)

	calls struct {
		SetStatus []struct {
			Ctx   context.Context
			Input moderation.SetStatusInput
		}
		List []struct {
			Ctx   context.Context
			Input moderation.ListInput
		}
	}
	lockSetStatus sync.RWMutex
	lockList      sync.RWMutex
}

func (mock *moderationServiceMock) SetStatus(ctx context.Context, input moderation.SetStatusInput) (*domain.Submission, error) {
	if mock.SetStatusFunc == nil {
		panic("moderationServiceMock.SetStatusFunc: method is nil but moderationService.SetStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input moderation.SetStatusInput
	}{Ctx: ctx, Input: input}
	mock.lockSetStatus.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lockSetStatus.Unlock()
	return mock.SetStatusFunc(ctx, input)
}

func (mock *moderationServiceMock) SetStatusCalls() []struct {
	Ctx   context.Context
	Input moderation.SetStatusInput
} {
	mock.lockSetStatus.RLock()
	calls := mock.calls.SetStatus
	mock.lockSetStatus.RUnlock()
	return calls
}

func (mock *moderationServiceMock) List(ctx context.Context, input moderation.ListInput) ([]domain.Submission, int, error) {
	if mock.ListFunc == nil {
		panic("moderationServiceMock.ListFunc: method is nil but moderationService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input moderation.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *moderationServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input moderation.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
