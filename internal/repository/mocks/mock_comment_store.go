package mocks

import (
	"context"

	"portfolioapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) ListByPost(ctx context.Context, postSlug string, approvedOnly bool) ([]model.Comment, error) {
	args := m.Called(ctx, postSlug, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentStore) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, c)
	if f, ok := args.Get(0).(func(context.Context, *model.Comment) *model.Comment); ok {
		return f(ctx, c), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentStore) SetApproved(ctx context.Context, id int64, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockCommentStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
