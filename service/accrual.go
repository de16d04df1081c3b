package service

import (
	"sort"
	"time"

	"backendjobs/config"
	"backendjobs/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccrualInput is everything needed to accrue coupon interest for one ISIN
type AccrualInput struct {
	IsinID        string
	IssueDate     time.Time
	AsOf          time.Time
	Rate          decimal.Decimal
	DayCountBasis int
	Trades        []models.TradeHistoryEntry
	PriorPeriods  []*models.CouponPayment
}

// LatestPeriodEnd returns the maximum end date among periods. Storage does
// not return periods sorted, so every period is inspected.
func LatestPeriodEnd(periods []*models.CouponPayment) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, p := range periods {
		end := models.DateOf(p.EndDate)
		if !found || end.After(latest) {
			latest = end
			found = true
		}
	}
	return latest, found
}

// ComputeAccrualPeriods walks the trade history of an ISIN and returns the
// accrual periods between the resume point and the as-of date. The resume
// point is the latest persisted period end, or the issue date on a first run.
// Every trade in the window opens a period that runs until the next trade or
// the as-of date, accruing on the cumulative notional including that trade.
// A window without trades yields no periods, even when notional is outstanding.
func ComputeAccrualPeriods(in AccrualInput) []*models.CouponPayment {
	windowStart := models.DateOf(in.IssueDate)
	windowEnd := models.DateOf(in.AsOf)

	resumeFrom, resuming := LatestPeriodEnd(in.PriorPeriods)
	if resuming {
		windowStart = resumeFrom
	}

	anchored := make(map[int]bool)
	var anchors []models.TradeHistoryEntry
	for i, trade := range in.Trades {
		valueDate := models.DateOf(trade.ValueDate)
		if !valueDate.Before(windowStart) && !valueDate.After(windowEnd) {
			anchored[i] = true
			anchors = append(anchors, trade)
		}
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].ValueDate.Before(anchors[j].ValueDate)
	})

	cumulative := decimal.Zero
	if resuming {
		// Notional moved after the last paid period seeds the base; trades that
		// open a period below are added there, never twice.
		for i, trade := range in.Trades {
			valueDate := models.DateOf(trade.ValueDate)
			if valueDate.After(resumeFrom) && !valueDate.After(windowEnd) && !anchored[i] {
				cumulative = cumulative.Add(trade.NetNotional)
			}
		}
	}

	if len(anchors) == 0 {
		return nil
	}

	dayCountBasis := in.DayCountBasis
	if dayCountBasis <= 0 {
		dayCountBasis = config.DayCountBasis
	}
	basis := decimal.NewFromInt(int64(dayCountBasis))
	periods := make([]*models.CouponPayment, 0, len(anchors))
	for i, trade := range anchors {
		start := models.DateOf(trade.ValueDate)
		end := windowEnd
		if i+1 < len(anchors) {
			end = models.DateOf(anchors[i+1].ValueDate)
		}
		days := models.DaysBetween(start, end)

		cumulative = cumulative.Add(trade.NetNotional)
		accrued := cumulative.Mul(in.Rate).Mul(decimal.NewFromInt(int64(days))).Div(basis)

		periods = append(periods, &models.CouponPayment{
			ID:            uuid.NewString(),
			IsinID:        in.IsinID,
			StartDate:     start,
			EndDate:       end,
			Days:          days,
			InterestRate:  in.Rate,
			AccruedAmount: accrued,
			PaidInterest:  decimal.Zero,
		})
	}

	return periods
}
