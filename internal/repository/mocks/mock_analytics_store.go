package mocks

import (
	"context"

	"portfolioapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnalyticsStore struct {
	mock.Mock
}

func (m *MockAnalyticsStore) RecordPageView(ctx context.Context, pv *model.PageView) (*model.PageView, error) {
	args := m.Called(ctx, pv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PageView), args.Error(1)
}

func (m *MockAnalyticsStore) PopularPages(ctx context.Context, limit int) ([]model.PageCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PageCount), args.Error(1)
}

func (m *MockAnalyticsStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
