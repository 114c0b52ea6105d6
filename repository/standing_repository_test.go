package repository

import (
	"context"
	"testing"
	"time"

	"liga/domain/entities"
	"liga/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingRepository_ReplaceForZone(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	zone := testutil.SeedZone(t, testDB.DB, "league-1", "cat-1", "Zona A", "Atlas", "Boca")
	repo := NewStandingRepository(testDB.DB)

	atlas := entities.NewStanding(zone.Zone, zone.Team(t, "Atlas"))
	atlas.RecordMatch(2, 1)
	atlas.UpdatedAt = time.Now().UTC()
	boca := entities.NewStanding(zone.Zone, zone.Team(t, "Boca"))
	boca.RecordMatch(1, 2)
	boca.UpdatedAt = atlas.UpdatedAt

	require.NoError(t, repo.ReplaceForZone(ctx, zone.Zone.ID, []*entities.Standing{atlas, boca}))

	stored, err := repo.GetByZone(ctx, zone.Zone.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Atlas", stored[0].TeamName)
	assert.Equal(t, 3, stored[0].Points)
	assert.Equal(t, 1, stored[1].Lost)

	// Replacing with a single row removes the other
	atlas.RecordMatch(0, 0)
	require.NoError(t, repo.ReplaceForZone(ctx, zone.Zone.ID, []*entities.Standing{atlas}))

	stored, err = repo.GetByZone(ctx, zone.Zone.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 4, stored[0].Points)
	assert.Equal(t, 2, stored[0].Played)
}

func TestStandingRepository_Overrides(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	zone := testutil.SeedZone(t, testDB.DB, "league-1", "cat-1", "Zona A", "Atlas", "Boca")
	repo := NewStandingRepository(testDB.DB)

	override := &entities.StandingOverride{
		ZoneID:      zone.Zone.ID,
		CategoryID:  "cat-1",
		TeamID:      zone.Team(t, "Boca").ID,
		ManualOrder: 1,
	}
	require.NoError(t, repo.SetOverride(ctx, override))
	assert.False(t, override.UpdatedAt.IsZero())

	override.ManualOrder = 2
	require.NoError(t, repo.SetOverride(ctx, override))

	overrides, err := repo.GetOverrides(ctx, zone.Zone.ID)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, 2, overrides[0].ManualOrder)

	override.ManualOrder = 0
	require.NoError(t, repo.SetOverride(ctx, override))

	overrides, err = repo.GetOverrides(ctx, zone.Zone.ID)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
