package services

import (
	"sort"
	"strings"

	"liga/domain/entities"
)

// StandingsCalculator contains the pure aggregation and ranking of zone tables
type StandingsCalculator struct{}

// NewStandingsCalculator creates a new StandingsCalculator
func NewStandingsCalculator() *StandingsCalculator {
	return &StandingsCalculator{}
}

// AggregateStandings builds a zone table from scratch. Every team of the roster gets a row;
// matches without a result or against a team outside the roster are ignored.
func (c *StandingsCalculator) AggregateStandings(
	zone *entities.Zone,
	teams []*entities.Team,
	matches []*entities.Match,
) []*entities.Standing {
	standings := make([]*entities.Standing, 0, len(teams))
	byTeam := make(map[string]*entities.Standing, len(teams))
	for _, team := range teams {
		s := entities.NewStanding(zone, team)
		standings = append(standings, s)
		byTeam[team.ID] = s
	}

	for _, match := range matches {
		if !match.HasResult() {
			continue
		}
		home, away := byTeam[match.HomeTeamID], byTeam[match.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		home.RecordMatch(*match.HomeScore, *match.AwayScore)
		away.RecordMatch(*match.AwayScore, *match.HomeScore)
	}

	return standings
}

// RankStandings orders a zone table for display. When any override carries a positive
// manual order the whole table follows the manual order, otherwise the computed comparator.
func (c *StandingsCalculator) RankStandings(
	standings []*entities.Standing,
	overrides []*entities.StandingOverride,
) []*entities.RankedStanding {
	manual := make(map[string]int, len(overrides))
	useManual := false
	for _, o := range overrides {
		if o.ManualOrder > 0 {
			manual[o.TeamID] = o.ManualOrder
			useManual = true
		}
	}

	ranked := make([]*entities.RankedStanding, 0, len(standings))
	for _, s := range standings {
		ranked = append(ranked, &entities.RankedStanding{Standing: s, ManualOrder: manual[s.TeamID]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if useManual {
			a, b := ranked[i].ManualOrder, ranked[j].ManualOrder
			switch {
			case a > 0 && b > 0 && a != b:
				return a < b
			case a > 0 && b <= 0:
				return true
			case a <= 0 && b > 0:
				return false
			}
		}
		return ranksAbove(ranked[i].Standing, ranked[j].Standing)
	})

	for i, r := range ranked {
		r.Position = i + 1
	}
	return ranked
}

// ranksAbove is the computed comparator: points, goal difference, goals for,
// fewer games played, then team name
func ranksAbove(a, b *entities.Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	if a.Played != b.Played {
		return a.Played < b.Played
	}
	return strings.ToLower(a.TeamName) < strings.ToLower(b.TeamName)
}
