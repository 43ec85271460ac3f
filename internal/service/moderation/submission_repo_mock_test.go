package moderation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ReviewFunc       func(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewer uuid.UUID, notes *string, at time.Time) (*domain.Submission, error)
	ListFunc         func(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Review []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Status   domain.SubmissionStatus
			Reviewer uuid.UUID
			Notes    *string
			At       time.Time
		}
		List []struct {
			Ctx context.Context
			F   domain.SubmissionFilter
		}
	}
	lockGetForUpdate sync.RWMutex
	lockReview       sync.RWMutex
	lockList         sync.RWMutex
}

func (mock *submissionRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if mock.GetForUpdateFunc == nil {
		panic("submissionRepoMock.GetForUpdateFunc: method is nil but submissionRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *submissionRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *submissionRepoMock) Review(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, reviewer uuid.UUID, notes *string, at time.Time) (*domain.Submission, error) {
	if mock.ReviewFunc == nil {
		panic("submissionRepoMock.ReviewFunc: method is nil but submissionRepo.Review was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Status   domain.SubmissionStatus
		Reviewer uuid.UUID
		Notes    *string
		At       time.Time
	}{Ctx: ctx, ID: id, Status: status, Reviewer: reviewer, Notes: notes, At: at}
	mock.lockReview.Lock()
	mock.calls.Review = append(mock.calls.Review, callInfo)
	mock.lockReview.Unlock()
	return mock.ReviewFunc(ctx, id, status, reviewer, notes, at)
}

func (mock *submissionRepoMock) ReviewCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Status   domain.SubmissionStatus
	Reviewer uuid.UUID
	Notes    *string
	At       time.Time
} {
	mock.lockReview.RLock()
	calls := mock.calls.Review
	mock.lockReview.RUnlock()
	return calls
}

func (mock *submissionRepoMock) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	if mock.ListFunc == nil {
		panic("submissionRepoMock.ListFunc: method is nil but submissionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.SubmissionFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *submissionRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.SubmissionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
