package repository

import (
	"context"
	"errors"
	"fmt"

	"liga/database"
	"liga/domain/entities"
	"liga/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// PayoutConfigRepository implements payout configuration access
type PayoutConfigRepository struct {
	q Queryable
}

// NewPayoutConfigRepository creates a new payout config repository
func NewPayoutConfigRepository(db *database.DB) interfaces.PayoutConfigRepository {
	return &PayoutConfigRepository{q: db.Pool}
}

// newPayoutConfigRepository creates a new payout config repository with a transaction
func newPayoutConfigRepository(tx Queryable) interfaces.PayoutConfigRepository {
	return &PayoutConfigRepository{q: tx}
}

// GetActive returns the most recently updated active configuration
func (r *PayoutConfigRepository) GetActive(ctx context.Context) (*entities.PayoutConfig, error) {
	query := `
		SELECT id, mode, points_for_result, points_for_exact, fee_percent, active, updated_at
		FROM payout_config
		WHERE active
		ORDER BY updated_at DESC, id
		LIMIT 1
	`

	var cfg entities.PayoutConfig
	var mode string
	err := r.q.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&mode,
		&cfg.PointsForResult,
		&cfg.PointsForExact,
		&cfg.FeePercent,
		&cfg.Active,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active payout config: %w", err)
	}

	cfg.ModeKind = entities.PayoutModeKind(mode)
	return &cfg, nil
}
