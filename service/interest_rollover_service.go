package service

import (
	"context"
	"fmt"
	"time"

	"backendjobs/config"
	"backendjobs/models"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
)

// InterestRolloverService re-anchors current floating coupon rates. The rate
// value does not change; the new record gives the next accrual run a fresh
// period boundary.
type InterestRolloverService struct {
	uowFactory UnitOfWorkFactory
	cfg        config.AccrualConfig
}

// NewInterestRolloverService creates a new interest rollover service
func NewInterestRolloverService(uowFactory UnitOfWorkFactory, cfg config.AccrualConfig) *InterestRolloverService {
	return &InterestRolloverService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// RollForward marks every current floating rate of a case historical and
// replaces it with a current copy effective asOf. Each rate is rolled in its
// own transaction; failures are collected and returned after all rates were tried.
func (s *InterestRolloverService) RollForward(ctx context.Context, caseID string, asOf time.Time) error {
	logger := log.WithFields(log.Fields{
		"caseId":        caseID,
		"executionDate": asOf.Format(models.DateLayout),
	})

	rates, err := s.currentRates(ctx, caseID)
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		logger.Info("No active floating interest rates found")
		return nil
	}

	var result *multierror.Error
	rolled := 0
	for _, rate := range rates {
		if err := s.rollRate(ctx, rate, asOf); err != nil {
			logger.WithFields(log.Fields{
				"rateId": rate.ID,
				"isinId": rate.IsinID,
				"error":  err,
			}).Error("Failed to roll floating interest rate")
			result = multierror.Append(result, fmt.Errorf("rate %s: %w", rate.ID, err))
			continue
		}
		rolled++
	}

	logger.WithFields(log.Fields{
		"rates":  len(rates),
		"rolled": rolled,
	}).Info("Completed floating interest rate update")

	return result.ErrorOrNil()
}

func (s *InterestRolloverService) currentRates(ctx context.Context, caseID string) ([]*models.CouponInterest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rates, err := uow.CouponInterestRepository().GetByCase(ctx, caseID, s.cfg.FloatingCouponRateType, s.cfg.RateStatusCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get active coupon interests for case %s: %w", caseID, err)
	}
	return rates, nil
}

func (s *InterestRolloverService) rollRate(ctx context.Context, rate *models.CouponInterest, asOf time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.CouponInterestRepository()
	if err := repo.UpdateStatus(ctx, rate.ID, s.cfg.RateStatusHistorical); err != nil {
		return fmt.Errorf("failed to mark rate historical: %w", err)
	}

	next := &models.CouponInterest{
		ID:           uuid.NewString(),
		IsinID:       rate.IsinID,
		InterestRate: rate.InterestRate,
		EventDate:    models.DateOf(asOf),
		Type:         rate.Type,
		Status:       s.cfg.RateStatusCurrent,
	}
	if err := repo.Create(ctx, next); err != nil {
		return fmt.Errorf("failed to create next floating rate: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit rate rollover: %w", err)
	}

	log.WithFields(log.Fields{
		"previousRateId": rate.ID,
		"rateId":         next.ID,
		"isinId":         next.IsinID,
		"rate":           next.InterestRate.String(),
	}).Info("Rolled floating interest rate")
	return nil
}
