package service_test

import (
	"context"
	"testing"

	"backendjobs/config"
	"backendjobs/models"
	"backendjobs/repository"
	"backendjobs/repository/testutil"
	"backendjobs/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponPaymentRun_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	cfg := config.DefaultAccrualConfig()

	factory := repository.NewUnitOfWorkFactory(testDB.DB)
	alerts := service.NewAlertService(factory, nil)
	coupons := service.NewCouponPaymentService(factory, alerts, cfg)
	rollover := service.NewInterestRolloverService(factory, cfg)

	c := testutil.InsertCase(t, testDB.DB, testutil.Date(2024, 1, 1), config.CompartmentStatusIssued, "XS0000000001", "XS0000000002")
	rated, unrated := c.Isins[0], c.Isins[1]

	interests := repository.NewCouponInterestRepository(testDB.DB)
	rate := testutil.CreateTestCouponInterest(rated.ID, config.FloatingCouponRateType, config.RateStatusCurrent)
	rate.InterestRate = decimal.RequireFromString("0.05")
	require.NoError(t, interests.Create(ctx, rate))

	trades := repository.NewTradeRepository(testDB.DB)
	require.NoError(t, trades.Create(ctx, testutil.CreateTestTrade(rated.ID, testutil.Date(2024, 1, 1), "1000000")))
	require.NoError(t, trades.Create(ctx, testutil.CreateTestTrade(unrated.ID, testutil.Date(2024, 1, 1), "1000000")))

	payments := repository.NewCouponPaymentRepository(testDB.DB)

	// First run accrues from the issue date
	coupons.RunForCase(ctx, c.ID, testutil.Date(2024, 4, 1))

	periods, err := payments.GetByIsin(ctx, rated.ID)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, testutil.Date(2024, 1, 1), periods[0].StartDate)
	assert.Equal(t, testutil.Date(2024, 4, 1), periods[0].EndDate)
	assert.Equal(t, 91, periods[0].Days)
	assert.Equal(t, "12638.8888888889", periods[0].AccruedAmount.StringFixed(10))

	unratedPeriods, err := payments.GetByIsin(ctx, unrated.ID)
	require.NoError(t, err)
	assert.Empty(t, unratedPeriods)

	var alertCount int
	err = testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE title = $1`, service.AlertInterestRateMissing).Scan(&alertCount)
	require.NoError(t, err)
	assert.Equal(t, 1, alertCount)

	// Roll the rate and resume with a new trade after the last period
	require.NoError(t, rollover.RollForward(ctx, c.ID, testutil.Date(2024, 4, 1)))
	require.NoError(t, trades.Create(ctx, testutil.CreateTestTrade(rated.ID, testutil.Date(2024, 5, 1), "500000")))

	coupons.RunForCase(ctx, c.ID, testutil.Date(2024, 7, 1))

	periods, err = payments.GetByIsin(ctx, rated.ID)
	require.NoError(t, err)
	require.Len(t, periods, 2)

	var resumed *models.CouponPayment
	for _, p := range periods {
		if p.StartDate.Equal(testutil.Date(2024, 5, 1)) {
			resumed = p
		}
	}
	require.NotNil(t, resumed)
	assert.Equal(t, testutil.Date(2024, 7, 1), resumed.EndDate)
	assert.Equal(t, 61, resumed.Days)
	expected := decimal.NewFromInt(500000).Mul(decimal.RequireFromString("0.05")).Mul(decimal.NewFromInt(61)).Div(decimal.NewFromInt(360))
	assert.Equal(t, expected.StringFixed(10), resumed.AccruedAmount.StringFixed(10))

	current, err := interests.GetByCase(ctx, c.ID, config.FloatingCouponRateType, config.RateStatusCurrent)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.NotEqual(t, rate.ID, current[0].ID)
	assert.Equal(t, testutil.Date(2024, 4, 1), current[0].EventDate)
}
