package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"liga/database"
	"liga/domain/entities"
	"liga/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const predictionColumns = `
	id, user_id, match_id, predicted_outcome, predicted_home_score, predicted_away_score,
	stake, settled, points_awarded, payout_amount, created_at, settled_at`

// PredictionRepository implements prediction data access
type PredictionRepository struct {
	q Queryable
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *database.DB) *PredictionRepository {
	return &PredictionRepository{q: db.Pool}
}

// newPredictionRepository creates a new prediction repository with a transaction
func newPredictionRepository(tx Queryable) interfaces.PredictionRepository {
	return &PredictionRepository{q: tx}
}

// LockUnsettledByMatch returns the unsettled predictions of a match, locking them until the
// transaction ends. Rows already locked by a concurrent settlement are skipped.
func (r *PredictionRepository) LockUnsettledByMatch(ctx context.Context, matchID string) ([]*entities.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE match_id = $1 AND settled = FALSE
		ORDER BY created_at, id
		FOR UPDATE SKIP LOCKED
	`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled predictions for match %s: %w", matchID, err)
	}
	defer rows.Close()

	return collectPredictions(rows)
}

// ApplySettlementBatch marks every row of the batch settled in a single round trip.
// A row is only written while it is still unsettled, so the returned IDs never include
// a prediction that another settlement already processed.
func (r *PredictionRepository) ApplySettlementBatch(ctx context.Context, batch *entities.SettlementBatch, settledAt time.Time) ([]string, error) {
	if len(batch.Rows) == 0 {
		return nil, nil
	}

	query := `
		UPDATE predictions
		SET settled = TRUE, points_awarded = $2, payout_amount = $3, settled_at = $4
		WHERE id = $1 AND match_id = $5 AND settled = FALSE
		RETURNING id
	`

	b := &pgx.Batch{}
	for _, row := range batch.Rows {
		b.Queue(query, row.PredictionID, row.PointsAwarded, row.PayoutAmount, settledAt, batch.MatchID)
	}

	results := r.q.SendBatch(ctx, b)
	defer results.Close()

	settled := make([]string, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		var id string
		err := results.QueryRow().Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to settle prediction %s: %w", row.PredictionID, err)
		}
		settled = append(settled, id)
	}

	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close settlement batch: %w", err)
	}

	return settled, nil
}

// GetByMatch returns all predictions of a match.
// Test support: settlement reads go through LockUnsettledByMatch.
func (r *PredictionRepository) GetByMatch(ctx context.Context, matchID string) ([]*entities.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE match_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for match %s: %w", matchID, err)
	}
	defer rows.Close()

	return collectPredictions(rows)
}

func collectPredictions(rows pgx.Rows) ([]*entities.Prediction, error) {
	var predictions []*entities.Prediction
	for rows.Next() {
		var p entities.Prediction
		var outcome string
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.MatchID,
			&outcome,
			&p.PredictedHomeScore,
			&p.PredictedAwayScore,
			&p.Stake,
			&p.Settled,
			&p.PointsAwarded,
			&p.PayoutAmount,
			&p.CreatedAt,
			&p.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}

		p.PredictedOutcome, err = entities.ParseOutcome(outcome)
		if err != nil {
			return nil, fmt.Errorf("prediction %s: %w", p.ID, err)
		}

		predictions = append(predictions, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating predictions: %w", err)
	}

	return predictions, nil
}
