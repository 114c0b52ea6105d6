package services

import (
	"fmt"

	"liga/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SettlementCalculator contains the pure settlement math for a single match
type SettlementCalculator struct{}

// NewSettlementCalculator creates a new SettlementCalculator
func NewSettlementCalculator() *SettlementCalculator {
	return &SettlementCalculator{}
}

// CalculateSettlement computes the settlement of every given prediction against the match result.
// Pool accounting is always filled in, even in points mode.
func (c *SettlementCalculator) CalculateSettlement(
	match *entities.Match,
	mode entities.PayoutMode,
	predictions []*entities.Prediction,
) (*entities.SettlementBatch, error) {
	realOutcome, err := match.Outcome()
	if err != nil {
		return nil, err
	}

	batch := &entities.SettlementBatch{
		MatchID:     match.ID,
		Mode:        mode,
		RealOutcome: realOutcome,
		Rows:        make([]*entities.PredictionSettlement, 0, len(predictions)),
	}

	poolTotal := decimal.Zero
	winnersTotal := decimal.Zero
	for _, p := range predictions {
		stake := decimal.NewFromFloat(p.Stake)
		poolTotal = poolTotal.Add(stake)
		if p.IsCorrect(realOutcome) {
			winnersTotal = winnersTotal.Add(stake)
		}
	}

	feePercent := decimal.Zero
	if pool, ok := mode.(entities.PoolMode); ok {
		feePercent = decimal.NewFromFloat(pool.FeePercent)
	}
	fee := poolTotal.Mul(feePercent).Div(hundred)
	distributable := decimal.Max(decimal.Zero, poolTotal.Sub(fee))

	batch.PoolTotal = poolTotal.InexactFloat64()
	batch.WinnersTotal = winnersTotal.InexactFloat64()
	batch.Fee = fee.InexactFloat64()
	batch.Distributable = distributable.InexactFloat64()

	homeScore, awayScore := *match.HomeScore, *match.AwayScore
	for _, p := range predictions {
		row := &entities.PredictionSettlement{
			PredictionID: p.ID,
			UserID:       p.UserID,
			Stake:        p.Stake,
			Correct:      p.IsCorrect(realOutcome),
			Exact:        p.IsExact(homeScore, awayScore),
		}

		switch m := mode.(type) {
		case entities.PointsMode:
			if row.Correct {
				row.PointsAwarded += m.PointsForResult
			}
			if row.Exact {
				row.PointsAwarded += m.PointsForExact
			}
		case entities.PoolMode:
			if row.Correct && winnersTotal.IsPositive() {
				row.PayoutAmount = poolShare(distributable, decimal.NewFromFloat(p.Stake), winnersTotal)
			}
		default:
			return nil, fmt.Errorf("%w: %T", entities.ErrUnknownPayoutMode, mode)
		}

		batch.Rows = append(batch.Rows, row)
	}

	return batch, nil
}

// poolShare returns distributable * stake / winnersTotal rounded down to the cent.
// Rounding down keeps the sum of shares within distributable.
func poolShare(distributable, stake, winnersTotal decimal.Decimal) float64 {
	return distributable.Mul(stake).Div(winnersTotal).RoundDown(2).InexactFloat64()
}
