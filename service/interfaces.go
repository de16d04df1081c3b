package service

import (
	"context"
	"time"

	"backendjobs/models"
)

// CaseRepository defines the interface for case data access
type CaseRepository interface {
	// GetCaseWithIsins retrieves a case in the given compartment status together with its ISINs.
	// Returns nil when no such case exists.
	GetCaseWithIsins(ctx context.Context, caseID string, compartmentStatus int) (*models.Case, error)

	// UpdateCompartmentStatus sets the compartment status of a case and returns the affected rows
	UpdateCompartmentStatus(ctx context.Context, caseID string, status int) (int64, error)
}

// CouponInterestRepository defines the interface for coupon interest rate data access
type CouponInterestRepository interface {
	// GetByCase returns the rates of all ISINs of a case with the given type and status
	GetByCase(ctx context.Context, caseID string, rateType string, status int) ([]*models.CouponInterest, error)

	// UpdateStatus changes the lifecycle status of a rate
	UpdateStatus(ctx context.Context, id string, status int) error

	// Create inserts a new rate
	Create(ctx context.Context, interest *models.CouponInterest) error
}

// TradeRepository defines the interface for trade ledger access
type TradeRepository interface {
	// GetTradeHistoryByDays returns the net notional change per value date of an ISIN
	GetTradeHistoryByDays(ctx context.Context, isinID string) ([]models.TradeHistoryEntry, error)

	// GetAggregatedSubscriptions returns subscription buys of a case aggregated into trades
	GetAggregatedSubscriptions(ctx context.Context, caseID string) ([]*models.Trade, error)

	// Create appends a trade to the ledger
	Create(ctx context.Context, trade *models.Trade) error
}

// CouponPaymentRepository defines the interface for accrual period data access
type CouponPaymentRepository interface {
	// GetByIsin returns all accrual periods of an ISIN in no particular order
	GetByIsin(ctx context.Context, isinID string) ([]*models.CouponPayment, error)

	// CreateBatch inserts all periods or none. Failures wrap ErrTransactionFailed.
	CreateBatch(ctx context.Context, payments []*models.CouponPayment) (int64, error)
}

// CronRepository defines the interface for scheduled event lookups
type CronRepository interface {
	// GetExecutionsForDate returns the executions due on a date ordered by execution order
	GetExecutionsForDate(ctx context.Context, date time.Time) ([]*models.CronEventExecution, error)
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// Create stores a notification and its target
	Create(ctx context.Context, notification *models.Notification) error
}

// QueryRunner executes a stored data query for notification templates
type QueryRunner interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// AlertPublisher mirrors alerts to an external channel
type AlertPublisher interface {
	Publish(ctx context.Context, alert Alert) error
}

// Alerter emits operational alerts. Emit is best-effort and never fails the caller.
type Alerter interface {
	Emit(ctx context.Context, title, message string, details ...AlertDetail)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	CaseRepository() CaseRepository
	CouponInterestRepository() CouponInterestRepository
	TradeRepository() TradeRepository
	CouponPaymentRepository() CouponPaymentRepository
	CronRepository() CronRepository
	NotificationRepository() NotificationRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
