package application

import (
	"context"
	"time"

	"backendjobs/models"

	"github.com/stretchr/testify/mock"
)

type mockCouponRunner struct {
	mock.Mock
}

func (m *mockCouponRunner) RunForCase(ctx context.Context, caseID string, asOf time.Time) {
	m.Called(ctx, caseID, asOf)
}

type mockRateRoller struct {
	mock.Mock
}

func (m *mockRateRoller) RollForward(ctx context.Context, caseID string, asOf time.Time) error {
	args := m.Called(ctx, caseID, asOf)
	return args.Error(0)
}

type mockCompartmentTransitioner struct {
	mock.Mock
}

func (m *mockCompartmentTransitioner) Issue(ctx context.Context, caseID string) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

func (m *mockCompartmentTransitioner) Mature(ctx context.Context, caseID string) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendForExecution(ctx context.Context, exec *models.CronEventExecution) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Execute(ctx context.Context, exec *models.CronEventExecution) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}
