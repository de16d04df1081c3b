package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponPayment is one accrual period of an instrument. Periods of an
// instrument are contiguous: each starts at a trade's value date and ends at
// the next trade's value date or at the as-of date of the run that created it.
type CouponPayment struct {
	ID            string          `db:"id"`
	IsinID        string          `db:"isin_id"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	Days          int             `db:"days"`
	InterestRate  decimal.Decimal `db:"interest_rate"`
	AccruedAmount decimal.Decimal `db:"accrued_amount"`
	PaidInterest  decimal.Decimal `db:"paid_interest"`
	CreatedAt     time.Time       `db:"created_at"`
}
