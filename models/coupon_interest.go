package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponInterest is the coupon rate applicable to an instrument from its event date
type CouponInterest struct {
	ID           string          `db:"id"`
	IsinID       string          `db:"isin_id"`
	InterestRate decimal.Decimal `db:"interest_rate"` // decimal fraction per year, 0.05 is 5%
	EventDate    time.Time       `db:"event_date"`
	Type         string          `db:"type"`
	Status       int             `db:"status"`
}
