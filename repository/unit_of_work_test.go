package repository

import (
	"context"
	"testing"

	"backendjobs/config"
	"backendjobs/models"
	"backendjobs/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	c := testutil.InsertCase(t, testDB.DB, testutil.Date(2024, 1, 1), config.CompartmentStatusIssued, "XS0000000001")
	factory := NewUnitOfWorkFactory(testDB.DB)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	payment := testutil.CreateTestCouponPayment(c.Isins[0].ID, testutil.Date(2024, 1, 1), testutil.Date(2024, 2, 1))
	_, err := uow.CouponPaymentRepository().CreateBatch(ctx, []*models.CouponPayment{payment})
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	payments, err := NewCouponPaymentRepository(testDB.DB).GetByIsin(ctx, c.Isins[0].ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	c := testutil.InsertCase(t, testDB.DB, testutil.Date(2024, 1, 1), 8, "XS0000000001")
	factory := NewUnitOfWorkFactory(testDB.DB)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	affected, err := uow.CaseRepository().UpdateCompartmentStatus(ctx, c.ID, config.CompartmentStatusIssued)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, uow.Rollback())

	issued, err := NewCaseRepository(testDB.DB).GetCaseWithIsins(ctx, c.ID, config.CompartmentStatusIssued)
	require.NoError(t, err)
	assert.Nil(t, issued)

	// Rolling back twice is a no-op
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_Lifecycle(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	uow := NewUnitOfWorkFactory(testDB.DB).Create()

	assert.Panics(t, func() { uow.TradeRepository() })
	assert.Error(t, uow.Commit())

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	assert.NotNil(t, uow.CronRepository())
	assert.NotNil(t, uow.NotificationRepository())
	assert.NotNil(t, uow.CouponInterestRepository())
	require.NoError(t, uow.Rollback())
}
