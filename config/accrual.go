package config

// Day-count basis used to annualise coupon interest.
const DayCountBasis = 360

// Coupon interest lifecycle statuses as stored in couponinterest.status.
const (
	RateStatusCurrent    = 1
	RateStatusHistorical = 2
)

// Compartment lifecycle statuses as stored in cases.compartment_status_id.
const (
	CompartmentStatusIssued  = 9
	CompartmentStatusMatured = 11
)

// FloatingCouponRateType identifies floating coupon rates in the rate-type reference table.
const FloatingCouponRateType = "54c954ed-35a9-42d4-87af-40cb546a02f5"

// AccrualConfig carries the accrual constants into the services that need them,
// so tests can vary them without touching globals.
type AccrualConfig struct {
	DayCountBasis          int
	RateStatusCurrent      int
	RateStatusHistorical   int
	FloatingCouponRateType string
	IssuedStatus           int
	MaturedStatus          int
}

// DefaultAccrualConfig returns the production accrual constants
func DefaultAccrualConfig() AccrualConfig {
	return AccrualConfig{
		DayCountBasis:          DayCountBasis,
		RateStatusCurrent:      RateStatusCurrent,
		RateStatusHistorical:   RateStatusHistorical,
		FloatingCouponRateType: FloatingCouponRateType,
		IssuedStatus:           CompartmentStatusIssued,
		MaturedStatus:          CompartmentStatusMatured,
	}
}
