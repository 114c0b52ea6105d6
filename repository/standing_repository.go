package repository

import (
	"context"
	"fmt"

	"liga/database"
	"liga/domain/entities"
	"liga/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// StandingRepository implements stored zone tables and their manual overrides
type StandingRepository struct {
	q Queryable
}

// NewStandingRepository creates a new standing repository
func NewStandingRepository(db *database.DB) interfaces.StandingRepository {
	return &StandingRepository{q: db.Pool}
}

// newStandingRepository creates a new standing repository with a transaction
func newStandingRepository(tx Queryable) interfaces.StandingRepository {
	return &StandingRepository{q: tx}
}

// ReplaceForZone deletes every standing of the zone and inserts the new set.
// Must run inside a transaction so readers never see a partial table.
func (r *StandingRepository) ReplaceForZone(ctx context.Context, zoneID string, standings []*entities.Standing) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM standings WHERE zone_id = $1`, zoneID); err != nil {
		return fmt.Errorf("failed to delete standings for zone %s: %w", zoneID, err)
	}

	if len(standings) == 0 {
		return nil
	}

	query := `
		INSERT INTO standings (
			league_id, category_id, zone_id, team_id, team_name,
			played, won, drawn, lost, goals_for, goals_against, points, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	b := &pgx.Batch{}
	for _, s := range standings {
		if s.ZoneID != zoneID {
			return fmt.Errorf("standing for team %s belongs to zone %s, not %s", s.TeamID, s.ZoneID, zoneID)
		}
		b.Queue(query,
			s.LeagueID, s.CategoryID, s.ZoneID, s.TeamID, s.TeamName,
			s.Played, s.Won, s.Drawn, s.Lost, s.GoalsFor, s.GoalsAgainst, s.Points, s.UpdatedAt,
		)
	}

	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("failed to insert standings for zone %s: %w", zoneID, err)
	}

	return nil
}

// GetByZone returns the stored standings of a zone
func (r *StandingRepository) GetByZone(ctx context.Context, zoneID string) ([]*entities.Standing, error) {
	query := `
		SELECT league_id, category_id, zone_id, team_id, team_name,
			played, won, drawn, lost, goals_for, goals_against, points, updated_at
		FROM standings
		WHERE zone_id = $1
		ORDER BY team_name, team_id
	`

	rows, err := r.q.Query(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for zone %s: %w", zoneID, err)
	}
	defer rows.Close()

	var standings []*entities.Standing
	for rows.Next() {
		var s entities.Standing
		err := rows.Scan(
			&s.LeagueID,
			&s.CategoryID,
			&s.ZoneID,
			&s.TeamID,
			&s.TeamName,
			&s.Played,
			&s.Won,
			&s.Drawn,
			&s.Lost,
			&s.GoalsFor,
			&s.GoalsAgainst,
			&s.Points,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}

	return standings, nil
}

// GetOverrides returns the manual order overrides of a zone
func (r *StandingRepository) GetOverrides(ctx context.Context, zoneID string) ([]*entities.StandingOverride, error) {
	query := `
		SELECT zone_id, category_id, team_id, manual_order, updated_at
		FROM standing_overrides
		WHERE zone_id = $1
		ORDER BY manual_order, team_id
	`

	rows, err := r.q.Query(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standing overrides for zone %s: %w", zoneID, err)
	}
	defer rows.Close()

	var overrides []*entities.StandingOverride
	for rows.Next() {
		var o entities.StandingOverride
		if err := rows.Scan(&o.ZoneID, &o.CategoryID, &o.TeamID, &o.ManualOrder, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan standing override: %w", err)
		}
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standing overrides: %w", err)
	}

	return overrides, nil
}

// SetOverride stores a manual order. An order of zero removes the override.
func (r *StandingRepository) SetOverride(ctx context.Context, override *entities.StandingOverride) error {
	if override.ManualOrder == 0 {
		_, err := r.q.Exec(ctx, `
			DELETE FROM standing_overrides
			WHERE zone_id = $1 AND category_id = $2 AND team_id = $3
		`, override.ZoneID, override.CategoryID, override.TeamID)
		if err != nil {
			return fmt.Errorf("failed to clear standing override: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO standing_overrides (zone_id, category_id, team_id, manual_order, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (zone_id, category_id, team_id)
		DO UPDATE SET manual_order = EXCLUDED.manual_order, updated_at = NOW()
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		override.ZoneID,
		override.CategoryID,
		override.TeamID,
		override.ManualOrder,
	).Scan(&override.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to set standing override: %w", err)
	}

	return nil
}
