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

// ZoneRepository implements zone and roster access
type ZoneRepository struct {
	q Queryable
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *database.DB) interfaces.ZoneRepository {
	return &ZoneRepository{q: db.Pool}
}

// newZoneRepository creates a new zone repository with a transaction
func newZoneRepository(tx Queryable) interfaces.ZoneRepository {
	return &ZoneRepository{q: tx}
}

// GetByID retrieves a zone by its ID
func (r *ZoneRepository) GetByID(ctx context.Context, id string) (*entities.Zone, error) {
	query := `
		SELECT id, league_id, category_id, name
		FROM zones
		WHERE id = $1
	`

	var zone entities.Zone
	err := r.q.QueryRow(ctx, query, id).Scan(&zone.ID, &zone.LeagueID, &zone.CategoryID, &zone.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone %s: %w", id, err)
	}

	return &zone, nil
}

// GetTeams returns the teams belonging to a zone
func (r *ZoneRepository) GetTeams(ctx context.Context, zoneID string) ([]*entities.Team, error) {
	query := `
		SELECT id, name, zone_id
		FROM teams
		WHERE zone_id = $1
		ORDER BY name, id
	`

	rows, err := r.q.Query(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for zone %s: %w", zoneID, err)
	}
	defer rows.Close()

	var teams []*entities.Team
	for rows.Next() {
		var team entities.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.ZoneID); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}
