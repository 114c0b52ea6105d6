package services

import (
	"fmt"
	"math/rand"
	"testing"

	"liga/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSettlement_PoolMode(t *testing.T) {
	calc := NewSettlementCalculator()
	match := playedMatch(TestMatchID, 2, 1)

	batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 10}, []*entities.Prediction{
		prediction("a", TestUserA, entities.OutcomeHome, 100),
		prediction("b", TestUserB, entities.OutcomeAway, 50),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.OutcomeHome, batch.RealOutcome)
	assert.Equal(t, 150.0, batch.PoolTotal)
	assert.Equal(t, 100.0, batch.WinnersTotal)
	assert.Equal(t, 15.0, batch.Fee)
	assert.Equal(t, 135.0, batch.Distributable)

	rows := rowByPrediction(batch)
	assert.Equal(t, 135.0, rows["a"].PayoutAmount)
	assert.Equal(t, 0, rows["a"].PointsAwarded)
	assert.True(t, rows["a"].Correct)
	assert.Equal(t, 0.0, rows["b"].PayoutAmount)
	assert.False(t, rows["b"].Correct)
}

func TestCalculateSettlement_PointsMode(t *testing.T) {
	calc := NewSettlementCalculator()
	match := playedMatch(TestMatchID, 2, 1)

	batch, err := calc.CalculateSettlement(match, entities.PointsMode{PointsForResult: 3, PointsForExact: 5}, []*entities.Prediction{
		withScore(prediction("a", TestUserA, entities.OutcomeHome, 100), 2, 1),
		prediction("b", TestUserB, entities.OutcomeAway, 50),
		withScore(prediction("c", TestUserC, entities.OutcomeHome, 0), 3, 0),
	})
	require.NoError(t, err)

	rows := rowByPrediction(batch)
	assert.Equal(t, 8, rows["a"].PointsAwarded)
	assert.True(t, rows["a"].Exact)
	assert.Equal(t, 0, rows["b"].PointsAwarded)
	assert.Equal(t, 3, rows["c"].PointsAwarded)

	for _, row := range batch.Rows {
		assert.Equal(t, 0.0, row.PayoutAmount)
	}

	// Pool accounting is still reported in points mode
	assert.Equal(t, 150.0, batch.PoolTotal)
	assert.Equal(t, 100.0, batch.WinnersTotal)
	assert.Equal(t, 0.0, batch.Fee)
}

func TestCalculateSettlement_PointsStackIndependently(t *testing.T) {
	calc := NewSettlementCalculator()
	mode := entities.PointsMode{PointsForResult: 3, PointsForExact: 5}

	// Stored outcome contradicts the predicted score: only the exact bonus applies
	match := playedMatch(TestMatchID, 1, 1)
	batch, err := calc.CalculateSettlement(match, mode, []*entities.Prediction{
		withScore(prediction("inconsistent", TestUserA, entities.OutcomeHome, 0), 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, batch.Rows[0].PointsAwarded)
}

func TestCalculateSettlement_PoolEdgeCases(t *testing.T) {
	calc := NewSettlementCalculator()
	match := playedMatch(TestMatchID, 0, 0)

	t.Run("zero stake winner gets nothing", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 10}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeDraw, 0),
			prediction("b", TestUserB, entities.OutcomeDraw, 40),
			prediction("c", TestUserC, entities.OutcomeHome, 60),
		})
		require.NoError(t, err)

		rows := rowByPrediction(batch)
		assert.Equal(t, 0.0, rows["a"].PayoutAmount)
		assert.Equal(t, 90.0, rows["b"].PayoutAmount)
		assert.Len(t, batch.Credits(), 1)
	})

	t.Run("no winners pays nobody", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 10}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeHome, 10),
			prediction("b", TestUserB, entities.OutcomeAway, 20),
		})
		require.NoError(t, err)

		assert.Equal(t, 0.0, batch.WinnersTotal)
		assert.Equal(t, 27.0, batch.Distributable)
		assert.Empty(t, batch.Credits())
	})

	t.Run("fee above one hundred percent floors distributable at zero", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 150}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeDraw, 10),
		})
		require.NoError(t, err)

		assert.Equal(t, 0.0, batch.Distributable)
		assert.Equal(t, 0.0, batch.Rows[0].PayoutAmount)
	})

	t.Run("uneven split rounds each payout independently", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 0}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeDraw, 10),
			prediction("b", TestUserB, entities.OutcomeDraw, 10),
			prediction("c", TestUserC, entities.OutcomeDraw, 10),
			prediction("d", "user-d", entities.OutcomeHome, 70),
		})
		require.NoError(t, err)

		for _, row := range batch.Credits() {
			assert.Equal(t, 33.33, row.PayoutAmount)
		}
		assert.InDelta(t, 99.99, batch.TotalPayout(), 1e-9)
	})

	t.Run("payout rounds down to the cent", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 0}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeDraw, 10),
			prediction("b", TestUserB, entities.OutcomeDraw, 20),
			prediction("c", TestUserC, entities.OutcomeHome, 70),
		})
		require.NoError(t, err)

		credits := batch.Credits()
		require.Len(t, credits, 2)
		assert.Equal(t, 33.33, credits[0].PayoutAmount)
		assert.Equal(t, 66.66, credits[1].PayoutAmount)
	})

	t.Run("no predictions", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 10}, nil)
		require.NoError(t, err)
		assert.Empty(t, batch.Rows)
		assert.Equal(t, 0.0, batch.PoolTotal)
	})
}

func TestCalculateSettlement_MissingPredictedScoreNeverExact(t *testing.T) {
	calc := NewSettlementCalculator()
	match := playedMatch(TestMatchID, 0, 0)

	p := prediction("a", TestUserA, entities.OutcomeDraw, 0)
	p.PredictedHomeScore = intPtr(0)

	batch, err := calc.CalculateSettlement(match, entities.PointsMode{PointsForResult: 3, PointsForExact: 5}, []*entities.Prediction{p})
	require.NoError(t, err)

	assert.False(t, batch.Rows[0].Exact)
	assert.Equal(t, 3, batch.Rows[0].PointsAwarded)
}

func TestCalculateSettlement_MatchWithoutResult(t *testing.T) {
	calc := NewSettlementCalculator()
	match := &entities.Match{ID: TestMatchID, Played: true, HomeScore: intPtr(1)}

	_, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 10}, nil)
	assert.ErrorIs(t, err, entities.ErrMatchWithoutResult)
}

func TestCalculateSettlement_PayoutsNeverExceedPool(t *testing.T) {
	calc := NewSettlementCalculator()
	match := playedMatch(TestMatchID, 1, 1)

	tests := []struct {
		name       string
		loserStake float64
		feePercent float64
	}{
		{"small losing stake without fee", 0.02, 0},
		{"small losing stake with fee", 0.05, 10},
		{"no losing stake", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictions := []*entities.Prediction{
				prediction("a", TestUserA, entities.OutcomeDraw, 1),
				prediction("b", TestUserB, entities.OutcomeDraw, 1),
				prediction("c", TestUserC, entities.OutcomeDraw, 1),
			}
			if tt.loserStake > 0 {
				predictions = append(predictions, prediction("d", "user-d", entities.OutcomeHome, tt.loserStake))
			}

			batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: tt.feePercent}, predictions)
			require.NoError(t, err)

			require.Len(t, batch.Credits(), 3)
			assert.LessOrEqual(t, batch.TotalPayout(), batch.Distributable+1e-9)
			assert.LessOrEqual(t, batch.TotalPayout(), batch.PoolTotal+1e-9)
		})
	}

	t.Run("shares round down", func(t *testing.T) {
		batch, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: 0}, []*entities.Prediction{
			prediction("a", TestUserA, entities.OutcomeDraw, 1),
			prediction("b", TestUserB, entities.OutcomeDraw, 1),
			prediction("c", TestUserC, entities.OutcomeDraw, 1),
			prediction("d", "user-d", entities.OutcomeHome, 0.02),
		})
		require.NoError(t, err)

		for _, row := range batch.Credits() {
			assert.Equal(t, 1.0, row.PayoutAmount)
		}
		assert.InDelta(t, 3.0, batch.TotalPayout(), 1e-9)
	})
}

func TestCalculateSettlement_Invariants(t *testing.T) {
	calc := NewSettlementCalculator()
	rng := rand.New(rand.NewSource(42))
	outcomes := []entities.Outcome{entities.OutcomeHome, entities.OutcomeDraw, entities.OutcomeAway}

	for run := 0; run < 200; run++ {
		match := playedMatch(TestMatchID, rng.Intn(4), rng.Intn(4))
		predictions := make([]*entities.Prediction, 0, 12)
		for i := 0; i < 1+rng.Intn(12); i++ {
			p := prediction(fmt.Sprintf("p%d", i), fmt.Sprintf("u%d", i), outcomes[rng.Intn(3)], float64(rng.Intn(50000))/100)
			if rng.Intn(2) == 0 {
				withScore(p, rng.Intn(4), rng.Intn(4))
			}
			predictions = append(predictions, p)
		}

		pool, err := calc.CalculateSettlement(match, entities.PoolMode{FeePercent: float64(rng.Intn(30))}, predictions)
		require.NoError(t, err)
		assert.LessOrEqual(t, pool.TotalPayout(), pool.Distributable+1e-9, "run %d", run)
		assert.LessOrEqual(t, pool.TotalPayout(), pool.PoolTotal+1e-9, "run %d", run)

		points, err := calc.CalculateSettlement(match, entities.PointsMode{PointsForResult: 3, PointsForExact: 5}, predictions)
		require.NoError(t, err)
		for _, row := range points.Rows {
			assert.Contains(t, []int{0, 3, 5, 8}, row.PointsAwarded, "run %d", run)
		}
	}
}
