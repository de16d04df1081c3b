package repository

import (
	"context"
	"errors"
	"fmt"

	"backendjobs/database"
	"backendjobs/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                 *database.DB
	tx                 pgx.Tx
	ctx                context.Context
	caseRepo           service.CaseRepository
	couponInterestRepo service.CouponInterestRepository
	tradeRepo          service.TradeRepository
	couponPaymentRepo  service.CouponPaymentRepository
	cronRepo           service.CronRepository
	notificationRepo   service.NotificationRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

type unitOfWorkFactory struct {
	db *database.DB
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.caseRepo = newCaseRepositoryWithTx(tx)
	u.couponInterestRepo = newCouponInterestRepositoryWithTx(tx)
	u.tradeRepo = newTradeRepositoryWithTx(tx)
	u.couponPaymentRepo = newCouponPaymentRepositoryWithTx(tx)
	u.cronRepo = newCronRepositoryWithTx(tx)
	u.notificationRepo = newNotificationRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// CaseRepository returns the case repository for this unit of work
func (u *unitOfWork) CaseRepository() service.CaseRepository {
	if u.caseRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.caseRepo
}

// CouponInterestRepository returns the coupon interest repository for this unit of work
func (u *unitOfWork) CouponInterestRepository() service.CouponInterestRepository {
	if u.couponInterestRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.couponInterestRepo
}

// TradeRepository returns the trade repository for this unit of work
func (u *unitOfWork) TradeRepository() service.TradeRepository {
	if u.tradeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tradeRepo
}

// CouponPaymentRepository returns the coupon payment repository for this unit of work
func (u *unitOfWork) CouponPaymentRepository() service.CouponPaymentRepository {
	if u.couponPaymentRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.couponPaymentRepo
}

// CronRepository returns the cron repository for this unit of work
func (u *unitOfWork) CronRepository() service.CronRepository {
	if u.cronRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.cronRepo
}

// NotificationRepository returns the notification repository for this unit of work
func (u *unitOfWork) NotificationRepository() service.NotificationRepository {
	if u.notificationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.notificationRepo
}
