package application_test

import (
	"context"
	"errors"
	"testing"

	"liga/application"
	"liga/domain/entities"
	"liga/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testZone = &entities.Zone{ID: "zone-1", LeagueID: "league-1", CategoryID: "cat-1", Name: "Zona A"}

func testTeams() []*entities.Team {
	return []*entities.Team{
		{ID: "team-home", Name: "Atlas", ZoneID: "zone-1"},
		{ID: "team-away", Name: "Boca", ZoneID: "zone-1"},
	}
}

func TestStandingsHandler_RecordMatchResult(t *testing.T) {
	ctx := context.Background()
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)

	unplayed := &entities.Match{ID: "match-1", ZoneID: "zone-1", HomeTeamID: "team-home", AwayTeamID: "team-away"}
	uow.Matches.On("GetByID", mock.Anything, "match-1").Return(unplayed, nil)
	uow.Matches.On("UpdateResult", mock.Anything, mock.MatchedBy(func(m *entities.Match) bool {
		return m.Played && *m.HomeScore == 3 && *m.AwayScore == 1
	})).Return(nil)
	uow.Matches.On("GetByZone", mock.Anything, "zone-1").Return([]*entities.Match{playedMatch("match-1", 3, 1)}, nil)
	uow.Zones.On("GetByID", mock.Anything, "zone-1").Return(testZone, nil)
	uow.Zones.On("GetTeams", mock.Anything, "zone-1").Return(testTeams(), nil)
	uow.Standings.On("ReplaceForZone", mock.Anything, "zone-1", mock.MatchedBy(func(rows []*entities.Standing) bool {
		return len(rows) == 2
	})).Return(nil)
	uow.Events.On("Publish", mock.AnythingOfType("events.MatchResultRecordedEvent")).Return(nil).Once()
	uow.Events.On("Publish", mock.AnythingOfType("events.StandingsRecomputedEvent")).Return(nil).Once()

	handler := application.NewStandingsHandler(testhelpers.NewMockUnitOfWorkFactory(uow))
	match, standings, err := handler.RecordMatchResult(ctx, "match-1", 3, 1)
	require.NoError(t, err)

	assert.True(t, match.HasResult())
	require.Len(t, standings, 2)
	points := map[string]int{}
	for _, s := range standings {
		points[s.TeamID] = s.Points
	}
	assert.Equal(t, 3, points["team-home"])
	assert.Equal(t, 0, points["team-away"])
	uow.AssertAllExpectations(t)
}

func TestStandingsHandler_RecordMatchResultRejectsNegativeScore(t *testing.T) {
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Matches.On("GetByID", mock.Anything, "match-1").Return(&entities.Match{ID: "match-1", ZoneID: "zone-1"}, nil)

	handler := application.NewStandingsHandler(testhelpers.NewMockUnitOfWorkFactory(uow))
	_, _, err := handler.RecordMatchResult(context.Background(), "match-1", -1, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrInvalidScore))
	uow.AssertNotCalled(t, "Commit")
	uow.Matches.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything)
}

func TestStandingsHandler_RecomputeZoneNotFound(t *testing.T) {
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Zones.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	handler := application.NewStandingsHandler(testhelpers.NewMockUnitOfWorkFactory(uow))
	_, err := handler.RecomputeZone(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrZoneNotFound))
	uow.AssertNotCalled(t, "Commit")
}

func TestStandingsHandler_GetZoneTable(t *testing.T) {
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Zones.On("GetByID", mock.Anything, "zone-1").Return(testZone, nil)
	uow.Standings.On("GetByZone", mock.Anything, "zone-1").Return([]*entities.Standing{
		{ZoneID: "zone-1", TeamID: "team-away", TeamName: "Boca", Played: 1, Lost: 1, GoalsAgainst: 2},
		{ZoneID: "zone-1", TeamID: "team-home", TeamName: "Atlas", Played: 1, Won: 1, GoalsFor: 2, Points: 3},
	}, nil)
	uow.Standings.On("GetOverrides", mock.Anything, "zone-1").Return(nil, nil)

	handler := application.NewStandingsHandler(testhelpers.NewMockUnitOfWorkFactory(uow))
	table, err := handler.GetZoneTable(context.Background(), "zone-1")
	require.NoError(t, err)

	require.Len(t, table, 2)
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, "team-home", table[0].TeamID)
	assert.Equal(t, "team-away", table[1].TeamID)
	uow.AssertNotCalled(t, "Commit")
	uow.AssertAllExpectations(t)
}

func TestStandingsHandler_SetManualOrder(t *testing.T) {
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Zones.On("GetByID", mock.Anything, "zone-1").Return(testZone, nil)
	uow.Zones.On("GetTeams", mock.Anything, "zone-1").Return(testTeams(), nil)
	uow.Standings.On("SetOverride", mock.Anything, mock.MatchedBy(func(o *entities.StandingOverride) bool {
		return o.ZoneID == "zone-1" && o.CategoryID == "cat-1" && o.TeamID == "team-away" && o.ManualOrder == 1
	})).Return(nil)

	handler := application.NewStandingsHandler(testhelpers.NewMockUnitOfWorkFactory(uow))
	require.NoError(t, handler.SetManualOrder(context.Background(), "zone-1", "", "team-away", 1))
	uow.AssertAllExpectations(t)
}
