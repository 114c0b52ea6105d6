package interfaces

import (
	"context"

	"liga/domain/entities"
)

// SettlementService defines the interface for settling predictions
type SettlementService interface {
	// SettleMatch settles every unsettled prediction of a played match
	SettleMatch(ctx context.Context, matchID string, actorUserID *string) (*entities.SettlementResult, error)
}

// StandingsService defines the interface for zone tables
type StandingsService interface {
	// RecomputeZone rebuilds and stores the zone table from its matches
	RecomputeZone(ctx context.Context, zoneID string) ([]*entities.Standing, error)

	// GetZoneTable returns the stored zone table in display order
	GetZoneTable(ctx context.Context, zoneID string) ([]*entities.RankedStanding, error)

	// SetManualOrder pins a team to a position in its zone table, zero clears it
	SetManualOrder(ctx context.Context, zoneID, categoryID, teamID string, order int) error
}

// MatchService defines the interface for match result administration
type MatchService interface {
	// RecordResult stores the final score of a match
	RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (*entities.Match, error)
}
