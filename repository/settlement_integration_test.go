package repository

import (
	"context"
	"testing"

	"liga/domain/entities"
	"liga/domain/events"
	"liga/domain/interfaces"
	"liga/domain/services"
	"liga/domain/testhelpers"
	"liga/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settleInUnitOfWork(t *testing.T, uow interfaces.UnitOfWork, matchID string) *entities.SettlementResult {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback() }()

	service := services.NewSettlementService(
		uow.MatchRepository(),
		uow.PredictionRepository(),
		uow.PayoutConfigRepository(),
		uow.WalletRepository(),
		uow.AuditLogRepository(),
		uow.EventBus(),
	)

	result, err := service.SettleMatch(ctx, matchID, nil)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())
	return result
}

func TestSettlement_PoolModeIsIdempotent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	testutil.SeedPayoutConfig(t, testDB.DB, &entities.PayoutConfig{
		ModeKind:        entities.PayoutModeKindPool,
		PointsForResult: 3,
		PointsForExact:  5,
		FeePercent:      10,
	})

	zone := testutil.SeedZone(t, testDB.DB, "league-1", "cat-1", "Zona A", "Atlas", "Boca")
	match := testutil.SeedMatch(t, testDB.DB, zone, "Atlas", "Boca", testutil.IntPtr(2), testutil.IntPtr(0))
	testutil.SeedPrediction(t, testDB.DB, match.ID, "u1", entities.OutcomeHome, 10, nil, nil)
	testutil.SeedPrediction(t, testDB.DB, match.ID, "u2", entities.OutcomeHome, 30, nil, nil)
	testutil.SeedPrediction(t, testDB.DB, match.ID, "u3", entities.OutcomeAway, 60, nil, nil)

	publisher := testhelpers.NewRecordingPublisher()
	first := settleInUnitOfWork(t, CreateTestUnitOfWork(testDB.DB, publisher), match.ID)
	assert.Equal(t, 3, first.Settled)
	assert.Equal(t, 2, first.Credited)
	assert.Equal(t, 90.0, first.TotalPaid)

	second := settleInUnitOfWork(t, CreateTestUnitOfWork(testDB.DB, publisher), match.ID)
	assert.Equal(t, 0, second.Settled)
	assert.Equal(t, 0, second.Credited)

	wallets := NewWalletRepository(testDB.DB)
	u1, err := wallets.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 22.50, u1.Balance)
	u2, err := wallets.GetByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 67.50, u2.Balance)
	u3, err := wallets.GetByUser(ctx, "u3")
	require.NoError(t, err)
	assert.Nil(t, u3)

	assert.Len(t, publisher.PublishedOfType(events.EventTypeWalletCredited), 2)
	assert.Len(t, publisher.PublishedOfType(events.EventTypeMatchSettled), 1)
	assert.Empty(t, publisher.Pending())

	var auditEntries int
	require.NoError(t, testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log WHERE action = 'settle'`).Scan(&auditEntries))
	assert.Equal(t, 1, auditEntries)
}

func TestSettlement_PointsModeCreditsNothing(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	testutil.SeedPayoutConfig(t, testDB.DB, &entities.PayoutConfig{
		ModeKind:        entities.PayoutModeKindPoints,
		PointsForResult: 3,
		PointsForExact:  5,
	})

	zone := testutil.SeedZone(t, testDB.DB, "league-1", "cat-1", "Zona A", "Atlas", "Boca")
	match := testutil.SeedMatch(t, testDB.DB, zone, "Atlas", "Boca", testutil.IntPtr(1), testutil.IntPtr(1))
	exact := testutil.SeedPrediction(t, testDB.DB, match.ID, "u1", entities.OutcomeDraw, 0, testutil.IntPtr(1), testutil.IntPtr(1))
	wrong := testutil.SeedPrediction(t, testDB.DB, match.ID, "u2", entities.OutcomeHome, 0, nil, nil)

	publisher := testhelpers.NewRecordingPublisher()
	result := settleInUnitOfWork(t, CreateTestUnitOfWork(testDB.DB, publisher), match.ID)
	assert.Equal(t, entities.PayoutModeKindPoints, result.Mode)
	assert.Equal(t, 2, result.Settled)
	assert.Equal(t, 0, result.Credited)

	predictions, err := NewPredictionRepository(testDB.DB).GetByMatch(context.Background(), match.ID)
	require.NoError(t, err)
	points := map[string]int{}
	for _, p := range predictions {
		points[p.ID] = p.PointsAwarded
	}
	assert.Equal(t, 8, points[exact.ID])
	assert.Equal(t, 0, points[wrong.ID])
	assert.Empty(t, publisher.PublishedOfType(events.EventTypeWalletCredited))
}

func TestUnitOfWork_RollbackDiscardsEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := testhelpers.NewRecordingPublisher()
	uow := CreateTestUnitOfWork(testDB.DB, publisher)
	require.NoError(t, uow.Begin(ctx))

	applied, err := uow.WalletRepository().Credit(ctx, &entities.WalletTransaction{
		UserID:         "u-rollback",
		Amount:         5,
		Reason:         entities.WalletReasonPayout,
		IdempotencyKey: "payout:rollback",
	})
	require.NoError(t, err)
	require.True(t, applied)
	require.NoError(t, uow.EventBus().Publish(events.WalletCreditedEvent{UserID: "u-rollback", Amount: 5}))

	require.NoError(t, uow.Rollback())
	assert.Empty(t, publisher.Pending())
	assert.Empty(t, publisher.Published())

	wallet, err := NewWalletRepository(testDB.DB).GetByUser(ctx, "u-rollback")
	require.NoError(t, err)
	assert.Nil(t, wallet)
}

func TestUnitOfWork_GettersPanicBeforeBegin(t *testing.T) {
	uow := NewUnitOfWorkFactory(nil).CreateWithPublisher(testhelpers.NewRecordingPublisher())
	assert.Panics(t, func() { uow.MatchRepository() })
	assert.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())
}
