package service

import (
	"context"
	"fmt"

	"backendjobs/config"
	"backendjobs/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CompartmentService moves cases through their compartment lifecycle
type CompartmentService struct {
	uowFactory UnitOfWorkFactory
	cfg        config.AccrualConfig
}

// NewCompartmentService creates a new compartment service
func NewCompartmentService(uowFactory UnitOfWorkFactory, cfg config.AccrualConfig) *CompartmentService {
	return &CompartmentService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// Issue consolidates the case's subscriptions into trades and marks the
// compartment issued, all in one transaction
func (s *CompartmentService) Issue(ctx context.Context, caseID string) error {
	logger := log.WithField("caseId", caseID)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	trades, err := uow.TradeRepository().GetAggregatedSubscriptions(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to get aggregated subscriptions for case %s: %w", caseID, err)
	}

	for _, trade := range trades {
		trade.ID = uuid.NewString()
		trade.PriceDirty = decimal.Zero
		trade.TranStatus = models.TradeStatusActive
		if err := uow.TradeRepository().Create(ctx, trade); err != nil {
			return fmt.Errorf("failed to save consolidated trade for ISIN %s: %w", trade.IsinID, err)
		}
	}
	logger.WithField("trades", len(trades)).Info("Consolidated subscriptions to trades")

	affected, err := uow.CaseRepository().UpdateCompartmentStatus(ctx, caseID, s.cfg.IssuedStatus)
	if err != nil {
		return fmt.Errorf("failed to issue compartment %s: %w", caseID, err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit compartment issue: %w", err)
	}

	s.logStatusChange(logger, affected, s.cfg.IssuedStatus)
	return nil
}

// Mature marks the compartment matured
func (s *CompartmentService) Mature(ctx context.Context, caseID string) error {
	logger := log.WithField("caseId", caseID)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	affected, err := uow.CaseRepository().UpdateCompartmentStatus(ctx, caseID, s.cfg.MaturedStatus)
	if err != nil {
		return fmt.Errorf("failed to mature compartment %s: %w", caseID, err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit compartment maturity: %w", err)
	}

	s.logStatusChange(logger, affected, s.cfg.MaturedStatus)
	return nil
}

func (s *CompartmentService) logStatusChange(logger *log.Entry, affected int64, status int) {
	logger = logger.WithFields(log.Fields{
		"status":       status,
		"affectedRows": affected,
	})
	if affected == 0 {
		logger.Warn("No rows were affected by compartment status update")
		return
	}
	logger.Info("Updated compartment status")
}
