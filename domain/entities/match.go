package entities

import (
	"time"
)

// Match represents a fixture between two teams of a zone
type Match struct {
	ID         string    `db:"id"`
	FixtureID  string    `db:"fixture_id"`
	ZoneID     string    `db:"zone_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	Played     bool      `db:"played"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// HasResult reports whether the match is played and both scores are recorded
func (m *Match) HasResult() bool {
	return m.Played && m.HomeScore != nil && m.AwayScore != nil
}

// Outcome returns the real outcome of a match with a recorded result
func (m *Match) Outcome() (Outcome, error) {
	if !m.HasResult() {
		return "", ErrMatchWithoutResult
	}
	return OutcomeFromScores(*m.HomeScore, *m.AwayScore), nil
}

// RecordResult sets the final score and marks the match as played
func (m *Match) RecordResult(homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return ErrInvalidScore
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Played = true
	return nil
}
