package repository

import (
	"context"
	"fmt"
	"strings"

	"backendjobs/database"
	"backendjobs/models"
	"backendjobs/service"
)

// couponPaymentColumns is the number of values bound per inserted period
const couponPaymentColumns = 8

// CouponPaymentRepository implements the CouponPaymentRepository interface
type CouponPaymentRepository struct {
	q queryable
}

// NewCouponPaymentRepository creates a new coupon payment repository
func NewCouponPaymentRepository(db *database.DB) *CouponPaymentRepository {
	return &CouponPaymentRepository{q: db.Pool}
}

func newCouponPaymentRepositoryWithTx(tx queryable) *CouponPaymentRepository {
	return &CouponPaymentRepository{q: tx}
}

// GetByIsin returns all accrual periods of an ISIN
func (r *CouponPaymentRepository) GetByIsin(ctx context.Context, isinID string) ([]*models.CouponPayment, error) {
	query := `
		SELECT id, isin_id, start_date, end_date, days, interest_rate,
		       accrued_amount, paid_interest, created_at
		FROM coupon_payments
		WHERE isin_id = $1
	`

	rows, err := r.q.Query(ctx, query, isinID)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon payments for ISIN %s: %w", isinID, err)
	}
	defer rows.Close()

	var payments []*models.CouponPayment
	for rows.Next() {
		var p models.CouponPayment
		err := rows.Scan(
			&p.ID,
			&p.IsinID,
			&p.StartDate,
			&p.EndDate,
			&p.Days,
			&p.InterestRate,
			&p.AccruedAmount,
			&p.PaidInterest,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon payment: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupon payments: %w", err)
	}

	return payments, nil
}

// CreateBatch inserts all periods with a single statement, so either every
// period is stored or none is
func (r *CouponPaymentRepository) CreateBatch(ctx context.Context, payments []*models.CouponPayment) (int64, error) {
	if len(payments) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO coupon_payments
		(id, isin_id, start_date, end_date, days, interest_rate, accrued_amount, paid_interest)
		VALUES `)

	args := make([]any, 0, len(payments)*couponPaymentColumns)
	for i, p := range payments {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * couponPaymentColumns
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args,
			p.ID,
			p.IsinID,
			models.DateOf(p.StartDate),
			models.DateOf(p.EndDate),
			p.Days,
			p.InterestRate,
			p.AccruedAmount,
			p.PaidInterest,
		)
	}

	result, err := r.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert %d coupon payments: %w", service.ErrTransactionFailed, len(payments), err)
	}

	return result.RowsAffected(), nil
}
