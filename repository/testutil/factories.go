package testutil

import (
	"context"
	"testing"

	"liga/database"
	"liga/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// SeededZone is a zone with its teams and a single fixture to hang matches on
type SeededZone struct {
	Zone      *entities.Zone
	Teams     []*entities.Team
	FixtureID string
}

// SeedZone creates a zone with the named teams
func SeedZone(t *testing.T, db *database.DB, leagueID, categoryID, name string, teamNames ...string) *SeededZone {
	t.Helper()
	ctx := context.Background()

	seeded := &SeededZone{
		Zone: &entities.Zone{LeagueID: leagueID, CategoryID: categoryID, Name: name},
	}

	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO zones (league_id, category_id, name) VALUES ($1, $2, $3) RETURNING id
		`, leagueID, categoryID, name).Scan(&seeded.Zone.ID)
		if err != nil {
			return err
		}

		for _, teamName := range teamNames {
			team := &entities.Team{Name: teamName, ZoneID: seeded.Zone.ID}
			err := tx.QueryRow(ctx, `
				INSERT INTO teams (zone_id, name) VALUES ($1, $2) RETURNING id
			`, seeded.Zone.ID, teamName).Scan(&team.ID)
			if err != nil {
				return err
			}
			seeded.Teams = append(seeded.Teams, team)
		}

		return tx.QueryRow(ctx, `
			INSERT INTO fixtures (zone_id, round) VALUES ($1, 1) RETURNING id
		`, seeded.Zone.ID).Scan(&seeded.FixtureID)
	})
	require.NoError(t, err)

	return seeded
}

// Team returns the seeded team with the given name
func (s *SeededZone) Team(t *testing.T, name string) *entities.Team {
	t.Helper()
	for _, team := range s.Teams {
		if team.Name == name {
			return team
		}
	}
	require.Failf(t, "team not seeded", "no team named %q", name)
	return nil
}

// SeedMatch creates a match between two seeded teams, unplayed when the scores are nil
func SeedMatch(t *testing.T, db *database.DB, zone *SeededZone, home, away string, homeScore, awayScore *int) *entities.Match {
	t.Helper()
	ctx := context.Background()

	match := &entities.Match{
		FixtureID:  zone.FixtureID,
		ZoneID:     zone.Zone.ID,
		HomeTeamID: zone.Team(t, home).ID,
		AwayTeamID: zone.Team(t, away).ID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Played:     homeScore != nil && awayScore != nil,
	}

	err := db.QueryRow(ctx, `
		INSERT INTO matches (fixture_id, home_team_id, away_team_id, home_score, away_score, played)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at
	`, match.FixtureID, match.HomeTeamID, match.AwayTeamID, homeScore, awayScore, match.Played).
		Scan(&match.ID, &match.UpdatedAt)
	require.NoError(t, err)

	return match
}

// SeedPrediction creates an unsettled prediction
func SeedPrediction(t *testing.T, db *database.DB, matchID, userID string, outcome entities.Outcome, stake float64, homeScore, awayScore *int) *entities.Prediction {
	t.Helper()
	ctx := context.Background()

	prediction := &entities.Prediction{
		UserID:             userID,
		MatchID:            matchID,
		PredictedOutcome:   outcome,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
		Stake:              stake,
	}

	err := db.QueryRow(ctx, `
		INSERT INTO predictions (user_id, match_id, predicted_outcome, predicted_home_score, predicted_away_score, stake)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, userID, matchID, string(outcome), homeScore, awayScore, stake).
		Scan(&prediction.ID, &prediction.CreatedAt)
	require.NoError(t, err)

	return prediction
}

// SeedPayoutConfig stores the active payout configuration
func SeedPayoutConfig(t *testing.T, db *database.DB, cfg *entities.PayoutConfig) {
	t.Helper()
	ctx := context.Background()

	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE payout_config SET active = FALSE`); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO payout_config (mode, points_for_result, points_for_exact, fee_percent, active)
			VALUES ($1, $2, $3, $4, TRUE)
			RETURNING id, updated_at
		`, string(cfg.ModeKind), cfg.PointsForResult, cfg.PointsForExact, cfg.FeePercent).
			Scan(&cfg.ID, &cfg.UpdatedAt)
	})
	require.NoError(t, err)
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
