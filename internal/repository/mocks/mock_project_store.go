package mocks

import (
	"context"

	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectStore) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	if f, ok := args.Get(0).(func(context.Context, *model.Project) *model.Project); ok {
		return f(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) IncrementViews(ctx context.Context, slug string) (*model.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) Update(ctx context.Context, slug string, patch model.ProjectPatch) (*model.Project, error) {
	args := m.Called(ctx, slug, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
