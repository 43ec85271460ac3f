package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/zine-backend/internal/domain"
	"github.com/heartmarshall/zine-backend/internal/service/publication"
)

var _ publicationService = &publicationServiceMock{}

type publicationServiceMock struct {
	CreateFunc    func(ctx context.Context, input publication.CreateInput) (*domain.Edition, error)
	UpdateFunc    func(ctx context.Context, input publication.UpdateInput) (*domain.Edition, error)
	DeleteFunc    func(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	PublishFunc   func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.Edition, error)
	UnpublishFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.Edition, error)
	GetFunc       func(ctx context.Context, id uuid.UUID) (*domain.Edition, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Edition, error)
	ListFunc      func(ctx context.Context, input publication.ListInput) ([]domain.Edition, int, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input publication.CreateInput
		}
		Update []struct {
			Ctx   context.Context
			Input publication.UpdateInput
		}
		Delete []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Actor uuid.UUID
		}
		Publish []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Actor uuid.UUID
		}
		Unpublish []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Actor uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetBySlug []struct {
			Ctx  context.Context
			Slug string
		}
		List []struct {
			Ctx   context.Context
			Input publication.ListInput
		}
	}
	lockCreate    sync.RWMutex
	lockUpdate    sync.RWMutex
	lockDelete    sync.RWMutex
	lockPublish   sync.RWMutex
	lockUnpublish sync.RWMutex
	lockGet       sync.RWMutex
	lockGetBySlug sync.RWMutex
	lockList      sync.RWMutex
}

func (mock *publicationServiceMock) Create(ctx context.Context, input publication.CreateInput) (*domain.Edition, error) {
	if mock.CreateFunc == nil {
		panic("publicationServiceMock.CreateFunc: method is nil but publicationService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input publication.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *publicationServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input publication.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *publicationServiceMock) Update(ctx context.Context, input publication.UpdateInput) (*domain.Edition, error) {
	if mock.UpdateFunc == nil {
		panic("publicationServiceMock.UpdateFunc: method is nil but publicationService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input publication.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *publicationServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input publication.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *publicationServiceMock) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("publicationServiceMock.DeleteFunc: method is nil but publicationService.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Actor uuid.UUID
	}{Ctx: ctx, ID: id, Actor: actor}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id, actor)
}

func (mock *publicationServiceMock) DeleteCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Actor uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *publicationServiceMock) Publish(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.Edition, error) {
	if mock.PublishFunc == nil {
		panic("publicationServiceMock.PublishFunc: method is nil but publicationService.Publish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Actor uuid.UUID
	}{Ctx: ctx, ID: id, Actor: actor}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, id, actor)
}

func (mock *publicationServiceMock) PublishCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Actor uuid.UUID
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

func (mock *publicationServiceMock) Unpublish(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.Edition, error) {
	if mock.UnpublishFunc == nil {
		panic("publicationServiceMock.UnpublishFunc: method is nil but publicationService.Unpublish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Actor uuid.UUID
	}{Ctx: ctx, ID: id, Actor: actor}
	mock.lockUnpublish.Lock()
	mock.calls.Unpublish = append(mock.calls.Unpublish, callInfo)
	mock.lockUnpublish.Unlock()
	return mock.UnpublishFunc(ctx, id, actor)
}

func (mock *publicationServiceMock) UnpublishCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Actor uuid.UUID
} {
	mock.lockUnpublish.RLock()
	calls := mock.calls.Unpublish
	mock.lockUnpublish.RUnlock()
	return calls
}

func (mock *publicationServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Edition, error) {
	if mock.GetFunc == nil {
		panic("publicationServiceMock.GetFunc: method is nil but publicationService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *publicationServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *publicationServiceMock) GetBySlug(ctx context.Context, slug string) (*domain.Edition, error) {
	if mock.GetBySlugFunc == nil {
		panic("publicationServiceMock.GetBySlugFunc: method is nil but publicationService.GetBySlug was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Slug string
	}{Ctx: ctx, Slug: slug}
	mock.lockGetBySlug.Lock()
	mock.calls.GetBySlug = append(mock.calls.GetBySlug, callInfo)
	mock.lockGetBySlug.Unlock()
	return mock.GetBySlugFunc(ctx, slug)
}

func (mock *publicationServiceMock) GetBySlugCalls() []struct {
	Ctx  context.Context
	Slug string
} {
	mock.lockGetBySlug.RLock()
	calls := mock.calls.GetBySlug
	mock.lockGetBySlug.RUnlock()
	return calls
}

func (mock *publicationServiceMock) List(ctx context.Context, input publication.ListInput) ([]domain.Edition, int, error) {
	if mock.ListFunc == nil {
		panic("publicationServiceMock.ListFunc: method is nil but publicationService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input publication.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *publicationServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input publication.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
