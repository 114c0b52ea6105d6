package entities

import (
	"time"
)

// Points awarded per match result
const (
	PointsForWin  = 3
	PointsForDraw = 1
	PointsForLoss = 0
)

// Zone groups the teams of one category of a league
type Zone struct {
	ID         string `db:"id"`
	LeagueID   string `db:"league_id"`
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
}

// Team is a member of exactly one zone
type Team struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	ZoneID string `db:"zone_id"`
}

// Standing is a team's aggregated record within a zone
type Standing struct {
	LeagueID     string    `db:"league_id"`
	CategoryID   string    `db:"category_id"`
	ZoneID       string    `db:"zone_id"`
	TeamID       string    `db:"team_id"`
	TeamName     string    `db:"team_name"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Drawn        int       `db:"drawn"`
	Lost         int       `db:"lost"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	Points       int       `db:"points"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewStanding returns a zeroed standing for a team of the zone
func NewStanding(zone *Zone, team *Team) *Standing {
	return &Standing{
		LeagueID:   zone.LeagueID,
		CategoryID: zone.CategoryID,
		ZoneID:     zone.ID,
		TeamID:     team.ID,
		TeamName:   team.Name,
	}
}

// GoalDifference returns goals scored minus goals conceded
func (s *Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// RecordMatch adds a single match result seen from this team's side
func (s *Standing) RecordMatch(goalsFor, goalsAgainst int) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		s.Won++
		s.Points += PointsForWin
	case goalsFor < goalsAgainst:
		s.Lost++
		s.Points += PointsForLoss
	default:
		s.Drawn++
		s.Points += PointsForDraw
	}
}

// StandingOverride pins a team to a manual position in its zone table
type StandingOverride struct {
	ZoneID      string    `db:"zone_id"`
	CategoryID  string    `db:"category_id"`
	TeamID      string    `db:"team_id"`
	ManualOrder int       `db:"manual_order"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// RankedStanding is a standing with its display position
type RankedStanding struct {
	Position int
	*Standing
	ManualOrder int
}
