package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc              func(ctx context.Context, s *domain.RefreshSession) error
	GetByHashFunc           func(ctx context.Context, tokenHash string) (*domain.RefreshSession, error)
	RevokeFunc              func(ctx context.Context, id uuid.UUID, now time.Time) error
	RevokeAllByIdentityFunc func(ctx context.Context, identityID uuid.UUID, now time.Time) (int, error)
	DeleteExpiredFunc       func(ctx context.Context, now time.Time) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.RefreshSession
		}
		GetByHash []struct {
			Ctx       context.Context
			TokenHash string
		}
		Revoke []struct {
			Ctx context.Context
			ID  uuid.UUID
			Now time.Time
		}
		RevokeAllByIdentity []struct {
			Ctx        context.Context
			IdentityID uuid.UUID
			Now        time.Time
		}
		DeleteExpired []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockCreate              sync.RWMutex
	lockGetByHash           sync.RWMutex
	lockRevoke              sync.RWMutex
	lockRevokeAllByIdentity sync.RWMutex
	lockDeleteExpired       sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, s *domain.RefreshSession) error {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.RefreshSession
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sessionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.RefreshSession
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	if mock.GetByHashFunc == nil {
		panic("sessionRepoMock.GetByHashFunc: method is nil but sessionRepo.GetByHash was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TokenHash string
	}{Ctx: ctx, TokenHash: tokenHash}
	mock.lockGetByHash.Lock()
	mock.calls.GetByHash = append(mock.calls.GetByHash, callInfo)
	mock.lockGetByHash.Unlock()
	return mock.GetByHashFunc(ctx, tokenHash)
}

func (mock *sessionRepoMock) GetByHashCalls() []struct {
	Ctx       context.Context
	TokenHash string
} {
	mock.lockGetByHash.RLock()
	calls := mock.calls.GetByHash
	mock.lockGetByHash.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Revoke(ctx context.Context, id uuid.UUID, now time.Time) error {
	if mock.RevokeFunc == nil {
		panic("sessionRepoMock.RevokeFunc: method is nil but sessionRepo.Revoke was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Now time.Time
	}{Ctx: ctx, ID: id, Now: now}
	mock.lockRevoke.Lock()
	mock.calls.Revoke = append(mock.calls.Revoke, callInfo)
	mock.lockRevoke.Unlock()
	return mock.RevokeFunc(ctx, id, now)
}

func (mock *sessionRepoMock) RevokeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Now time.Time
} {
	mock.lockRevoke.RLock()
	calls := mock.calls.Revoke
	mock.lockRevoke.RUnlock()
	return calls
}

func (mock *sessionRepoMock) RevokeAllByIdentity(ctx context.Context, identityID uuid.UUID, now time.Time) (int, error) {
	if mock.RevokeAllByIdentityFunc == nil {
		panic("sessionRepoMock.RevokeAllByIdentityFunc: method is nil but sessionRepo.RevokeAllByIdentity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		IdentityID uuid.UUID
		Now        time.Time
	}{Ctx: ctx, IdentityID: identityID, Now: now}
	mock.lockRevokeAllByIdentity.Lock()
	mock.calls.RevokeAllByIdentity = append(mock.calls.RevokeAllByIdentity, callInfo)
	mock.lockRevokeAllByIdentity.Unlock()
	return mock.RevokeAllByIdentityFunc(ctx, identityID, now)
}

func (mock *sessionRepoMock) RevokeAllByIdentityCalls() []struct {
	Ctx        context.Context
	IdentityID uuid.UUID
	Now        time.Time
} {
	mock.lockRevokeAllByIdentity.RLock()
	calls := mock.calls.RevokeAllByIdentity
	mock.lockRevokeAllByIdentity.RUnlock()
	return calls
}

func (mock *sessionRepoMock) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if mock.DeleteExpiredFunc == nil {
		panic("sessionRepoMock.DeleteExpiredFunc: method is nil but sessionRepo.DeleteExpired was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockDeleteExpired.Lock()
	mock.calls.DeleteExpired = append(mock.calls.DeleteExpired, callInfo)
	mock.lockDeleteExpired.Unlock()
	return mock.DeleteExpiredFunc(ctx, now)
}

func (mock *sessionRepoMock) DeleteExpiredCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockDeleteExpired.RLock()
	calls := mock.calls.DeleteExpired
	mock.lockDeleteExpired.RUnlock()
	return calls
}
