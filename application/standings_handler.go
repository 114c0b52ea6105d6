package application

import (
	"context"
	"fmt"

	"liga/domain/entities"
	"liga/domain/interfaces"
	"liga/domain/services"
	"liga/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StandingsHandler serves zone tables and match results, one unit of work per call
type StandingsHandler struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(uowFactory interfaces.UnitOfWorkFactory) *StandingsHandler {
	return &StandingsHandler{
		uowFactory: uowFactory,
	}
}

func (h *StandingsHandler) newStandingsService(uow interfaces.UnitOfWork) interfaces.StandingsService {
	return services.NewStandingsService(
		uow.ZoneRepository(),
		uow.MatchRepository(),
		uow.StandingRepository(),
		uow.EventBus(),
	)
}

// RecomputeZone replaces the stored table of a zone
func (h *StandingsHandler) RecomputeZone(ctx context.Context, zoneID string) ([]*entities.Standing, error) {
	ctx, span := observability.Tracer().Start(ctx, "standings.recompute_zone",
		trace.WithAttributes(attribute.String("zone.id", zoneID)))
	defer span.End()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	standings, err := h.newStandingsService(uow).RecomputeZone(ctx, zoneID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit standings: %w", err)
	}

	return standings, nil
}

// GetZoneTable returns the ranked table of a zone
func (h *StandingsHandler) GetZoneTable(ctx context.Context, zoneID string) ([]*entities.RankedStanding, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Read-only
	defer uow.Rollback()

	return h.newStandingsService(uow).GetZoneTable(ctx, zoneID)
}

// SetManualOrder pins a team in its zone table, zero clears the pin
func (h *StandingsHandler) SetManualOrder(ctx context.Context, zoneID, categoryID, teamID string, order int) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := h.newStandingsService(uow).SetManualOrder(ctx, zoneID, categoryID, teamID, order); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit manual order: %w", err)
	}
	return nil
}

// RecordMatchResult stores a final score and recomputes the match's zone in the same transaction.
// Settlement is left to an explicit admin call or the sweeper.
func (h *StandingsHandler) RecordMatchResult(ctx context.Context, matchID string, homeScore, awayScore int) (*entities.Match, []*entities.Standing, error) {
	ctx, span := observability.Tracer().Start(ctx, "matches.record_result",
		trace.WithAttributes(attribute.String("match.id", matchID)))
	defer span.End()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	matchService := services.NewMatchService(uow.MatchRepository(), uow.EventBus())
	match, err := matchService.RecordResult(ctx, matchID, homeScore, awayScore)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	standings, err := h.newStandingsService(uow).RecomputeZone(ctx, match.ZoneID)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit match result: %w", err)
	}

	return match, standings, nil
}
