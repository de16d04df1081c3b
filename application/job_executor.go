package application

import (
	"context"
	"sort"

	"backendjobs/models"

	log "github.com/sirupsen/logrus"
)

// Scheduled event names
const (
	EventUpdateCompartmentStatus          = "UpdateCompartmentStatus"
	EventUpdateCouponInterestRate         = "UpdateCouponInterestRate"
	EventUpdateCompartmentStatus2Maturity = "UpdateCompartmentStatus2Maturity"
	EventCreateCouponPaymentEntry         = "CreateCouponPaymentEntry"
	EventLoanIssuance2Client              = "LoanIssuance2Client"
	EventMaturityPayment                  = "MaturityPayment"
	EventInterestPayment                  = "InterestPayment"
	EventCouponPayment                    = "CouponPayment"
	EventCompartmentPhase2Issue           = "CompartmentPhase2Issue"
	EventCompartmentPhase2Maturity        = "CompartmentPhase2Maturity"
)

// NotificationEvents only send the notification configured on the execution
var NotificationEvents = []string{
	EventLoanIssuance2Client,
	EventMaturityPayment,
	EventInterestPayment,
	EventCouponPayment,
	EventCompartmentPhase2Issue,
	EventCompartmentPhase2Maturity,
}

// Job is the work behind one event name
type Job func(ctx context.Context, exec *models.CronEventExecution) error

// JobExecutor maps scheduled event names to jobs
type JobExecutor struct {
	jobs map[string]Job
}

// NewJobExecutor wires every known event to its job
func NewJobExecutor(
	coupons CouponRunner,
	rates RateRoller,
	compartments CompartmentTransitioner,
	notifier Notifier,
) *JobExecutor {
	jobs := map[string]Job{
		EventUpdateCompartmentStatus: func(ctx context.Context, exec *models.CronEventExecution) error {
			return compartments.Issue(ctx, exec.CaseID)
		},
		EventUpdateCouponInterestRate: func(ctx context.Context, exec *models.CronEventExecution) error {
			return rates.RollForward(ctx, exec.CaseID, exec.ExecutionDate)
		},
		EventUpdateCompartmentStatus2Maturity: func(ctx context.Context, exec *models.CronEventExecution) error {
			return compartments.Mature(ctx, exec.CaseID)
		},
		EventCreateCouponPaymentEntry: func(ctx context.Context, exec *models.CronEventExecution) error {
			coupons.RunForCase(ctx, exec.CaseID, exec.ExecutionDate)
			return nil
		},
	}
	for _, event := range NotificationEvents {
		jobs[event] = notifier.SendForExecution
	}

	return &JobExecutor{jobs: jobs}
}

// Execute runs the job registered for the execution's event. Unknown events
// are logged and skipped.
func (e *JobExecutor) Execute(ctx context.Context, exec *models.CronEventExecution) error {
	job, ok := e.jobs[exec.Event]
	if !ok {
		log.WithFields(log.Fields{
			"executionId": exec.ID,
			"caseId":      exec.CaseID,
			"event":       exec.Event,
		}).Warn("Unknown event")
		return nil
	}
	return job(ctx, exec)
}

// Events returns the registered event names in sorted order
func (e *JobExecutor) Events() []string {
	events := make([]string, 0, len(e.jobs))
	for event := range e.jobs {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}
