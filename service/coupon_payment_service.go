package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backendjobs/config"
	"backendjobs/models"

	log "github.com/sirupsen/logrus"
)

// Alert titles raised by the coupon payment run
const (
	AlertCaseNotFound        = "Automated Process Alert: Case Not Found"
	AlertInterestRateMissing = "Automated Process Alert: Interest Rate Missing"
	AlertPaymentEntryFailed  = "Automated Process Error: Payment Entry Failed"
	AlertPaymentRunFailed    = "Automated Process Error: Payment Processing Failed"
)

// CouponRunSummary describes the outcome of one coupon payment run
type CouponRunSummary struct {
	CaseID         string
	IsinsProcessed int
	IsinsSkipped   int
	IsinsFailed    int
	EntriesSaved   int64
}

// CouponPaymentService accrues coupon interest for the ISINs of issued cases
type CouponPaymentService struct {
	uowFactory UnitOfWorkFactory
	alerter    Alerter
	cfg        config.AccrualConfig
}

// NewCouponPaymentService creates a new coupon payment service
func NewCouponPaymentService(uowFactory UnitOfWorkFactory, alerter Alerter, cfg config.AccrualConfig) *CouponPaymentService {
	return &CouponPaymentService{
		uowFactory: uowFactory,
		alerter:    alerter,
		cfg:        cfg,
	}
}

// RunForCase accrues coupon interest for every ISIN of an issued case up to
// asOf. It never fails: problems are reported through the alerter.
func (s *CouponPaymentService) RunForCase(ctx context.Context, caseID string, asOf time.Time) {
	logger := log.WithFields(log.Fields{
		"caseId":        caseID,
		"executionDate": asOf.Format(models.DateLayout),
	})
	logger.Info("Starting coupon payment entry creation")

	defer func() {
		if r := recover(); r != nil {
			s.reportRunFailure(ctx, caseID, asOf, fmt.Errorf("panic: %v", r))
		}
	}()

	summary, err := s.run(ctx, caseID, asOf)
	if err != nil {
		s.reportRunFailure(ctx, caseID, asOf, err)
		return
	}
	if summary == nil {
		return
	}

	logger.WithFields(log.Fields{
		"isinsProcessed": summary.IsinsProcessed,
		"isinsSkipped":   summary.IsinsSkipped,
		"isinsFailed":    summary.IsinsFailed,
		"entriesSaved":   summary.EntriesSaved,
	}).Info("Completed coupon payment entry creation")
}

func (s *CouponPaymentService) run(ctx context.Context, caseID string, asOf time.Time) (*CouponRunSummary, error) {
	c, rates, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		s.alerter.Emit(ctx, AlertCaseNotFound,
			fmt.Sprintf("The automated coupon payment system was unable to locate case with ID: %s. Please verify the case ID is correct.", caseID))
		return nil, nil
	}

	ratesByIsin := make(map[string]*models.CouponInterest, len(rates))
	for _, rate := range rates {
		if _, exists := ratesByIsin[rate.IsinID]; !exists {
			ratesByIsin[rate.IsinID] = rate
		}
	}

	summary := &CouponRunSummary{CaseID: c.ID}
	for _, isin := range c.Isins {
		rate, ok := ratesByIsin[isin.ID]
		if !ok {
			s.alerter.Emit(ctx, AlertInterestRateMissing,
				fmt.Sprintf("The automated coupon payment system found no active interest rate configuration for ISIN: %s. Please contact support.", isin.IsinNumber),
				Detail("ISIN ID", isin.ID),
				Detail("ISIN Number", isin.IsinNumber),
				Detail("Case ID", c.ID))
			summary.IsinsSkipped++
			continue
		}

		entries, saved, err := s.processIsin(ctx, c, isin, rate, asOf)
		if errors.Is(err, ErrTransactionFailed) {
			s.alerter.Emit(ctx, AlertPaymentEntryFailed,
				fmt.Sprintf("Transaction failed for ISIN %s. All entries have been rolled back.", isin.ID),
				Detail("Error Details", err.Error()),
				Detail("ISIN ID", isin.ID),
				Detail("ISIN Number", isin.IsinNumber),
				Detail("Case ID", c.ID),
				Detail("Number of Entries", entries))
			summary.IsinsFailed++
			continue
		}
		if err != nil {
			return summary, err
		}

		summary.IsinsProcessed++
		summary.EntriesSaved += saved
	}

	return summary, nil
}

// loadCase reads the issued case and the current floating rates of its ISINs
func (s *CouponPaymentService) loadCase(ctx context.Context, caseID string) (*models.Case, []*models.CouponInterest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	c, err := uow.CaseRepository().GetCaseWithIsins(ctx, caseID, s.cfg.IssuedStatus)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get issued case %s: %w", caseID, err)
	}
	if c == nil {
		return nil, nil, nil
	}

	rates, err := uow.CouponInterestRepository().GetByCase(ctx, caseID, s.cfg.FloatingCouponRateType, s.cfg.RateStatusCurrent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active coupon interests for case %s: %w", caseID, err)
	}

	return c, rates, nil
}

// processIsin computes and saves the accrual periods of one ISIN in a single
// transaction. It returns the number of computed entries and saved rows.
// Write failures wrap ErrTransactionFailed; read failures do not.
func (s *CouponPaymentService) processIsin(ctx context.Context, c *models.Case, isin models.CaseIsin, rate *models.CouponInterest, asOf time.Time) (int, int64, error) {
	logger := log.WithFields(log.Fields{
		"caseId":     c.ID,
		"isinId":     isin.ID,
		"isinNumber": isin.IsinNumber,
		"rate":       rate.InterestRate.String(),
	})

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	history, err := uow.TradeRepository().GetTradeHistoryByDays(ctx, isin.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get trade history for ISIN %s: %w", isin.ID, err)
	}

	priorPeriods, err := uow.CouponPaymentRepository().GetByIsin(ctx, isin.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get coupon payments for ISIN %s: %w", isin.ID, err)
	}

	entries := ComputeAccrualPeriods(AccrualInput{
		IsinID:        isin.ID,
		IssueDate:     c.IssueDate,
		AsOf:          asOf,
		Rate:          rate.InterestRate,
		DayCountBasis: s.cfg.DayCountBasis,
		Trades:        history,
		PriorPeriods:  priorPeriods,
	})

	logger.WithFields(log.Fields{
		"trades":       len(history),
		"priorPeriods": len(priorPeriods),
		"entries":      len(entries),
	}).Debug("Computed coupon payment entries")

	if len(entries) == 0 {
		logger.Info("No coupon payment entries to save")
		return 0, 0, nil
	}

	saved, err := uow.CouponPaymentRepository().CreateBatch(ctx, entries)
	if err != nil {
		return len(entries), 0, ensureTransactionFailed(err)
	}
	if err := uow.Commit(); err != nil {
		return len(entries), 0, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	logger.WithField("saved", saved).Info("Saved coupon payment entries")
	return len(entries), saved, nil
}

func (s *CouponPaymentService) reportRunFailure(ctx context.Context, caseID string, asOf time.Time, err error) {
	log.WithFields(log.Fields{
		"caseId":        caseID,
		"executionDate": asOf.Format(models.DateLayout),
		"error":         err,
	}).Error("Coupon payment entry creation failed")

	s.alerter.Emit(ctx, AlertPaymentRunFailed,
		"The automated coupon payment system encountered an unexpected error while processing payments.",
		Detail("Error Details", err.Error()),
		Detail("Case ID", caseID),
		Detail("Execution Date", asOf.Format(models.DateLayout)))
}

func ensureTransactionFailed(err error) error {
	if errors.Is(err, ErrTransactionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
}
