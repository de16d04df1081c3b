package application

import (
	"context"
	"time"

	"backendjobs/models"
)

// CouponRunner accrues coupon interest for a case
type CouponRunner interface {
	// RunForCase never fails; problems are reported as alerts
	RunForCase(ctx context.Context, caseID string, asOf time.Time)
}

// RateRoller re-anchors the current floating rates of a case
type RateRoller interface {
	RollForward(ctx context.Context, caseID string, asOf time.Time) error
}

// CompartmentTransitioner moves a case through its compartment lifecycle
type CompartmentTransitioner interface {
	Issue(ctx context.Context, caseID string) error
	Mature(ctx context.Context, caseID string) error
}

// Notifier sends the notification configured on a scheduled execution
type Notifier interface {
	SendForExecution(ctx context.Context, exec *models.CronEventExecution) error
}

// Executor runs the job behind one scheduled execution
type Executor interface {
	Execute(ctx context.Context, exec *models.CronEventExecution) error
}

// JobDispatcher starts the executions due on a date
type JobDispatcher interface {
	Dispatch(ctx context.Context, date time.Time) (int, error)
}
