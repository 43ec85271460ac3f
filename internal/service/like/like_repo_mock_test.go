package like

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ likeRepo = &likeRepoMock{}

type likeRepoMock struct {
	InsertFunc func(ctx context.Context, l *domain.Like) error
	DeleteFunc func(ctx context.Context, itemID uuid.UUID, sessionID string) (bool, error)
	CountFunc  func(ctx context.Context, itemID uuid.UUID) (int, error)

	ItemPublicFunc func(ctx context.Context, itemID uuid.UUID) (bool, error)

	calls struct {
		Insert []struct {
			Ctx context.Context
			L   *domain.Like
		}
		Delete []struct {
			Ctx       context.Context
			ItemID    uuid.UUID
			SessionID string
		}
		Count []struct {
			Ctx    context.Context
			ItemID uuid.UUID
		}
		ItemPublic []struct {
			Ctx    context.Context
			ItemID uuid.UUID
		}
	}
	lockInsert sync.RWMutex
	lockDelete sync.RWMutex
	lockCount  sync.RWMutex

	lockItemPublic sync.RWMutex
}

func (mock *likeRepoMock) Insert(ctx context.Context, l *domain.Like) error {
	if mock.InsertFunc == nil {
		panic("likeRepoMock.InsertFunc: method is nil but likeRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Like
	}{Ctx: ctx, L: l}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, l)
}

func (mock *likeRepoMock) InsertCalls() []struct {
	Ctx context.Context
	L   *domain.Like
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *likeRepoMock) Delete(ctx context.Context, itemID uuid.UUID, sessionID string) (bool, error) {
	if mock.DeleteFunc == nil {
		panic("likeRepoMock.DeleteFunc: method is nil but likeRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ItemID    uuid.UUID
		SessionID string
	}{Ctx: ctx, ItemID: itemID, SessionID: sessionID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, itemID, sessionID)
}

func (mock *likeRepoMock) DeleteCalls() []struct {
	Ctx       context.Context
	ItemID    uuid.UUID
	SessionID string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *likeRepoMock) Count(ctx context.Context, itemID uuid.UUID) (int, error) {
	if mock.CountFunc == nil {
		panic("likeRepoMock.CountFunc: method is nil but likeRepo.Count was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID uuid.UUID
	}{Ctx: ctx, ItemID: itemID}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, itemID)
}

func (mock *likeRepoMock) CountCalls() []struct {
	Ctx    context.Context
	ItemID uuid.UUID
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

func (mock *likeRepoMock) ItemPublic(ctx context.Context, itemID uuid.UUID) (bool, error) {
	if mock.ItemPublicFunc == nil {
		panic("likeRepoMock.ItemPublicFunc: method is nil but likeRepo.ItemPublic was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID uuid.UUID
	}{Ctx: ctx, ItemID: itemID}
	mock.lockItemPublic.Lock()
	mock.calls.ItemPublic = append(mock.calls.ItemPublic, callInfo)
	mock.lockItemPublic.Unlock()
	return mock.ItemPublicFunc(ctx, itemID)
}

func (mock *likeRepoMock) ItemPublicCalls() []struct {
	Ctx    context.Context
	ItemID uuid.UUID
} {
	mock.lockItemPublic.RLock()
	calls := mock.calls.ItemPublic
	mock.lockItemPublic.RUnlock()
	return calls
}
