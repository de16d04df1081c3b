package testutil

import (
	"context"
	"testing"
	"time"

	"backendjobs/database"
	"backendjobs/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Date returns a UTC calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestTrade creates an active buy trade with default values
func CreateTestTrade(isinID string, valueDate time.Time, notional string) *models.Trade {
	return &models.Trade{
		ID:           uuid.NewString(),
		IsinID:       isinID,
		TradeDate:    valueDate,
		ValueDate:    valueDate,
		Notional:     decimal.RequireFromString(notional),
		TranFee:      decimal.Zero,
		PriceDirty:   decimal.NewFromInt(100),
		Counterparty: "Test Counterparty",
		Reference:    "REF-" + valueDate.Format("20060102"),
		BankInvestor: "Test Bank",
		TradeType:    models.TradeTypeBuy,
		TranStatus:   models.TradeStatusActive,
	}
}

// CreateTestCouponPayment creates an accrual period with default values
func CreateTestCouponPayment(isinID string, start, end time.Time) *models.CouponPayment {
	return &models.CouponPayment{
		ID:            uuid.NewString(),
		IsinID:        isinID,
		StartDate:     start,
		EndDate:       end,
		Days:          models.DaysBetween(start, end),
		InterestRate:  decimal.RequireFromString("0.05"),
		AccruedAmount: decimal.RequireFromString("1250.5"),
		PaidInterest:  decimal.Zero,
	}
}

// CreateTestCouponInterest creates a rate with default values
func CreateTestCouponInterest(isinID, rateType string, status int) *models.CouponInterest {
	return &models.CouponInterest{
		ID:           uuid.NewString(),
		IsinID:       isinID,
		InterestRate: decimal.RequireFromString("0.0425"),
		EventDate:    Date(2024, 1, 1),
		Type:         rateType,
		Status:       status,
	}
}

// CreateTestNotification creates a global notification
func CreateTestNotification(title string) *models.Notification {
	return &models.Notification{
		ID:         uuid.NewString(),
		Title:      title,
		Message:    "<p>" + title + "</p>",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		CreatedBy:  "system",
		TargetType: models.NotificationTargetGlobal,
		Target:     models.NotificationTargetAll,
		Status:     1,
	}
}

// InsertCase stores a case with one ISIN per isin number and returns it
func InsertCase(t *testing.T, db *database.DB, issueDate time.Time, status int, isinNumbers ...string) *models.Case {
	t.Helper()
	ctx := context.Background()

	c := &models.Case{
		ID:           uuid.NewString(),
		IssueDate:    issueDate,
		MaturityDate: issueDate.AddDate(5, 0, 0),
	}
	_, err := db.Exec(ctx, `
		INSERT INTO cases (id, issue_date, maturity_date, compartment_status_id)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.IssueDate, c.MaturityDate, status)
	require.NoError(t, err)

	for _, number := range isinNumbers {
		isin := models.CaseIsin{ID: uuid.NewString(), IsinNumber: number}
		_, err := db.Exec(ctx, `
			INSERT INTO case_isins (id, case_id, isin_number)
			VALUES ($1, $2, $3)
		`, isin.ID, c.ID, isin.IsinNumber)
		require.NoError(t, err)
		c.Isins = append(c.Isins, isin)
	}

	return c
}

// InsertSubscription stores a subscription for a case ISIN
func InsertSubscription(t *testing.T, db *database.DB, caseID, isinID string, valueDate time.Time, notional string, tradeType models.TradeType) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO subscriptions
		(id, case_id, isin_id, trade_date, value_date, notional, tran_fee, counterparty, reference, bank_investor, trade_type)
		VALUES ($1, $2, $3, $4, $4, $5, 0, 'Test Counterparty', 'SUB', 'Test Bank', $6)
	`, uuid.NewString(), caseID, isinID, valueDate, decimal.RequireFromString(notional), tradeType)
	require.NoError(t, err)
}

// InsertCronExecution stores a scheduled execution and returns its id
func InsertCronExecution(t *testing.T, db *database.DB, caseID, event string, executionDate time.Time, order string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO cron_event_executions (case_id, event, execution_date, execution_order, title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, caseID, event, executionDate, decimal.RequireFromString(order), event+" title").Scan(&id)
	require.NoError(t, err)
	return id
}
