package mocks

import (
	"context"

	"portfolioapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (model.DatabaseHealth, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.DatabaseHealth), args.Error(1)
}
