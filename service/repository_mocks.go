package service

import (
	"context"
	"time"

	"backendjobs/models"

	"github.com/stretchr/testify/mock"
)

// MockCaseRepository is a mock implementation of CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) GetCaseWithIsins(ctx context.Context, caseID string, compartmentStatus int) (*models.Case, error) {
	args := m.Called(ctx, caseID, compartmentStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Case), args.Error(1)
}

func (m *MockCaseRepository) UpdateCompartmentStatus(ctx context.Context, caseID string, status int) (int64, error) {
	args := m.Called(ctx, caseID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockCouponInterestRepository is a mock implementation of CouponInterestRepository
type MockCouponInterestRepository struct {
	mock.Mock
}

func (m *MockCouponInterestRepository) GetByCase(ctx context.Context, caseID string, rateType string, status int) ([]*models.CouponInterest, error) {
	args := m.Called(ctx, caseID, rateType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CouponInterest), args.Error(1)
}

func (m *MockCouponInterestRepository) UpdateStatus(ctx context.Context, id string, status int) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCouponInterestRepository) Create(ctx context.Context, interest *models.CouponInterest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) GetTradeHistoryByDays(ctx context.Context, isinID string) ([]models.TradeHistoryEntry, error) {
	args := m.Called(ctx, isinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TradeHistoryEntry), args.Error(1)
}

func (m *MockTradeRepository) GetAggregatedSubscriptions(ctx context.Context, caseID string) ([]*models.Trade, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

// MockCouponPaymentRepository is a mock implementation of CouponPaymentRepository
type MockCouponPaymentRepository struct {
	mock.Mock
}

func (m *MockCouponPaymentRepository) GetByIsin(ctx context.Context, isinID string) ([]*models.CouponPayment, error) {
	args := m.Called(ctx, isinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CouponPayment), args.Error(1)
}

func (m *MockCouponPaymentRepository) CreateBatch(ctx context.Context, payments []*models.CouponPayment) (int64, error) {
	args := m.Called(ctx, payments)
	return args.Get(0).(int64), args.Error(1)
}

// MockCronRepository is a mock implementation of CronRepository
type MockCronRepository struct {
	mock.Mock
}

func (m *MockCronRepository) GetExecutionsForDate(ctx context.Context, date time.Time) ([]*models.CronEventExecution, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CronEventExecution), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockQueryRunner is a mock implementation of QueryRunner
type MockQueryRunner struct {
	mock.Mock
}

func (m *MockQueryRunner) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	args := m.Called(ctx, query, variables)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockAlertPublisher is a mock implementation of AlertPublisher
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) Publish(ctx context.Context, alert Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

// MockAlerter is a mock implementation of Alerter
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Emit(ctx context.Context, title, message string, details ...AlertDetail) {
	m.Called(ctx, title, message, details)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository getters
// return whatever was configured with SetRepositories.
type MockUnitOfWork struct {
	mock.Mock

	caseRepo           CaseRepository
	couponInterestRepo CouponInterestRepository
	tradeRepo          TradeRepository
	couponPaymentRepo  CouponPaymentRepository
	cronRepo           CronRepository
	notificationRepo   NotificationRepository
}

// MockRepositories groups the repositories handed out by a MockUnitOfWork
type MockRepositories struct {
	Case           CaseRepository
	CouponInterest CouponInterestRepository
	Trade          TradeRepository
	CouponPayment  CouponPaymentRepository
	Cron           CronRepository
	Notification   NotificationRepository
}

func (m *MockUnitOfWork) SetRepositories(repos MockRepositories) {
	m.caseRepo = repos.Case
	m.couponInterestRepo = repos.CouponInterest
	m.tradeRepo = repos.Trade
	m.couponPaymentRepo = repos.CouponPayment
	m.cronRepo = repos.Cron
	m.notificationRepo = repos.Notification
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) CaseRepository() CaseRepository { return m.caseRepo }
func (m *MockUnitOfWork) CouponInterestRepository() CouponInterestRepository {
	return m.couponInterestRepo
}
func (m *MockUnitOfWork) TradeRepository() TradeRepository { return m.tradeRepo }
func (m *MockUnitOfWork) CouponPaymentRepository() CouponPaymentRepository {
	return m.couponPaymentRepo
}
func (m *MockUnitOfWork) CronRepository() CronRepository                 { return m.cronRepo }
func (m *MockUnitOfWork) NotificationRepository() NotificationRepository { return m.notificationRepo }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
