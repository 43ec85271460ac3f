package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ identityRepo = &identityRepoMock{}

type identityRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Identity, error)
	CreateFunc     func(ctx context.Context, ident *domain.Identity) (*domain.Identity, error)
	UpdateRoleFunc func(ctx context.Context, id uuid.UUID, role domain.Role, now time.Time) (*domain.Identity, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		Create []struct {
			Ctx   context.Context
			Ident *domain.Identity
		}
		UpdateRole []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Role domain.Role
			Now  time.Time
		}
	}
	lockGetByID    sync.RWMutex
	lockGetByEmail sync.RWMutex
	lockCreate     sync.RWMutex
	lockUpdateRole sync.RWMutex
}

func (mock *identityRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	if mock.GetByIDFunc == nil {
		panic("identityRepoMock.GetByIDFunc: method is nil but identityRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *identityRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *identityRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	if mock.GetByEmailFunc == nil {
		panic("identityRepoMock.GetByEmailFunc: method is nil but identityRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *identityRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *identityRepoMock) Create(ctx context.Context, ident *domain.Identity) (*domain.Identity, error) {
	if mock.CreateFunc == nil {
		panic("identityRepoMock.CreateFunc: method is nil but identityRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Ident *domain.Identity
	}{Ctx: ctx, Ident: ident}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, ident)
}

func (mock *identityRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Ident *domain.Identity
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *identityRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role, now time.Time) (*domain.Identity, error) {
	if mock.UpdateRoleFunc == nil {
		panic("identityRepoMock.UpdateRoleFunc: method is nil but identityRepo.UpdateRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.Role
		Now  time.Time
	}{Ctx: ctx, ID: id, Role: role, Now: now}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role, now)
}

func (mock *identityRepoMock) UpdateRoleCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Role domain.Role
	Now  time.Time
} {
	mock.lockUpdateRole.RLock()
	calls := mock.calls.UpdateRole
	mock.lockUpdateRole.RUnlock()
	return calls
}
