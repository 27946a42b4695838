package mocks

import (
	"context"

	"portfolioapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) RecordPageView(ctx context.Context, path, userAgent, ip string) (*model.PageView, error) {
	args := m.Called(ctx, path, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PageView), args.Error(1)
}

func (m *MockAnalyticsService) PopularPages(ctx context.Context, limit int) ([]model.PageCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PageCount), args.Error(1)
}
