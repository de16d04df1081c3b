package repository

import (
	"context"
	"testing"

	"backendjobs/config"
	"backendjobs/models"
	"backendjobs/repository/testutil"
	"backendjobs/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponPaymentRepository_CreateBatch(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCouponPaymentRepository(testDB.DB)
	ctx := context.Background()

	c := testutil.InsertCase(t, testDB.DB, testutil.Date(2024, 1, 1), config.CompartmentStatusIssued, "XS0000000001", "XS0000000002")
	isinID := c.Isins[0].ID

	t.Run("saves every period", func(t *testing.T) {
		batch := []*models.CouponPayment{
			testutil.CreateTestCouponPayment(isinID, testutil.Date(2024, 1, 1), testutil.Date(2024, 2, 1)),
			testutil.CreateTestCouponPayment(isinID, testutil.Date(2024, 2, 1), testutil.Date(2024, 3, 1)),
		}

		saved, err := repo.CreateBatch(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, int64(2), saved)

		payments, err := repo.GetByIsin(ctx, isinID)
		require.NoError(t, err)
		require.Len(t, payments, 2)

		byID := make(map[string]*models.CouponPayment)
		for _, p := range payments {
			byID[p.ID] = p
		}
		for _, expected := range batch {
			actual := byID[expected.ID]
			require.NotNil(t, actual)
			assert.Equal(t, expected.StartDate, actual.StartDate)
			assert.Equal(t, expected.EndDate, actual.EndDate)
			assert.Equal(t, expected.Days, actual.Days)
			assert.True(t, expected.InterestRate.Equal(actual.InterestRate))
			assert.True(t, expected.AccruedAmount.Equal(actual.AccruedAmount))
			assert.True(t, actual.PaidInterest.IsZero())
			assert.False(t, actual.CreatedAt.IsZero())
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		saved, err := repo.CreateBatch(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), saved)
	})

	t.Run("failed batch stores nothing", func(t *testing.T) {
		otherIsin := c.Isins[1].ID
		good := testutil.CreateTestCouponPayment(otherIsin, testutil.Date(2024, 1, 1), testutil.Date(2024, 2, 1))
		bad := testutil.CreateTestCouponPayment(otherIsin, testutil.Date(2024, 2, 1), testutil.Date(2024, 3, 1))
		bad.Days = -1

		saved, err := repo.CreateBatch(ctx, []*models.CouponPayment{good, bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrTransactionFailed)
		assert.Equal(t, int64(0), saved)

		payments, err := repo.GetByIsin(ctx, otherIsin)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}
