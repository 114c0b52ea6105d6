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

const matchColumns = `
	m.id, m.fixture_id, f.zone_id, m.home_team_id, m.away_team_id,
	m.home_score, m.away_score, m.played, m.updated_at`

// MatchRepository implements match data access
type MatchRepository struct {
	q Queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) interfaces.MatchRepository {
	return &MatchRepository{q: db.Pool}
}

// newMatchRepository creates a new match repository with a transaction
func newMatchRepository(tx Queryable) interfaces.MatchRepository {
	return &MatchRepository{q: tx}
}

// GetByID retrieves a match by its ID
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*entities.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches m
		JOIN fixtures f ON f.id = m.fixture_id
		WHERE m.id = $1
	`

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}

	return match, nil
}

// GetByZone returns every match of the zone's fixtures
func (r *MatchRepository) GetByZone(ctx context.Context, zoneID string) ([]*entities.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches m
		JOIN fixtures f ON f.id = m.fixture_id
		WHERE f.zone_id = $1
		ORDER BY f.round, m.id
	`

	rows, err := r.q.Query(ctx, query, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for zone %s: %w", zoneID, err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// UpdateResult persists the scores and played flag of a match
func (r *MatchRepository) UpdateResult(ctx context.Context, match *entities.Match) error {
	query := `
		UPDATE matches
		SET home_score = $2, away_score = $3, played = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, match.ID, match.HomeScore, match.AwayScore, match.Played).Scan(&match.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", entities.ErrMatchNotFound, match.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}

	return nil
}

// ListWithUnsettledPredictions returns played matches that still have unsettled predictions, oldest result first
func (r *MatchRepository) ListWithUnsettledPredictions(ctx context.Context, limit int) ([]*entities.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches m
		JOIN fixtures f ON f.id = m.fixture_id
		WHERE m.played
			AND m.home_score IS NOT NULL
			AND m.away_score IS NOT NULL
			AND EXISTS (
				SELECT 1 FROM predictions p
				WHERE p.match_id = m.id AND p.settled = FALSE
			)
		ORDER BY m.updated_at, m.id
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches with unsettled predictions: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func scanMatch(row pgx.Row) (*entities.Match, error) {
	var match entities.Match
	err := row.Scan(
		&match.ID,
		&match.FixtureID,
		&match.ZoneID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.HomeScore,
		&match.AwayScore,
		&match.Played,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func collectMatches(rows pgx.Rows) ([]*entities.Match, error) {
	var matches []*entities.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}
