package services

import (
	"context"
	"fmt"
	"time"

	"liga/domain/entities"
	"liga/domain/events"
	"liga/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type standingsService struct {
	zoneRepo       interfaces.ZoneRepository
	matchRepo      interfaces.MatchRepository
	standingRepo   interfaces.StandingRepository
	eventPublisher interfaces.EventPublisher
	calculator     *StandingsCalculator
	now            func() time.Time
}

// NewStandingsService creates a new standings service
func NewStandingsService(
	zoneRepo interfaces.ZoneRepository,
	matchRepo interfaces.MatchRepository,
	standingRepo interfaces.StandingRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.StandingsService {
	return &standingsService{
		zoneRepo:       zoneRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		eventPublisher: eventPublisher,
		calculator:     NewStandingsCalculator(),
		now:            time.Now,
	}
}

// RecomputeZone rebuilds the zone table from every match of the zone and replaces the stored rows
func (s *standingsService) RecomputeZone(ctx context.Context, zoneID string) ([]*entities.Standing, error) {
	zone, err := s.getZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	teams, err := s.zoneRepo.GetTeams(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	matches, err := s.matchRepo.GetByZone(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	standings := s.calculator.AggregateStandings(zone, teams, matches)
	updatedAt := s.now().UTC()
	for _, standing := range standings {
		standing.UpdatedAt = updatedAt
	}

	if err := s.standingRepo.ReplaceForZone(ctx, zoneID, standings); err != nil {
		return nil, fmt.Errorf("failed to replace standings: %w", err)
	}

	if err := s.eventPublisher.Publish(events.StandingsRecomputedEvent{
		ZoneID:     zone.ID,
		LeagueID:   zone.LeagueID,
		CategoryID: zone.CategoryID,
		Teams:      len(standings),
	}); err != nil {
		log.WithError(err).Error("Failed to publish standings recomputed event")
	}

	log.WithFields(log.Fields{
		"zoneID":  zoneID,
		"teams":   len(teams),
		"matches": len(matches),
	}).Info("Recomputed zone standings")

	return standings, nil
}

// GetZoneTable returns the stored zone table in display order
func (s *standingsService) GetZoneTable(ctx context.Context, zoneID string) ([]*entities.RankedStanding, error) {
	zone, err := s.getZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	standings, err := s.standingRepo.GetByZone(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	overrides, err := s.standingRepo.GetOverrides(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get standing overrides: %w", err)
	}

	zoneOverrides := make([]*entities.StandingOverride, 0, len(overrides))
	for _, o := range overrides {
		if o.CategoryID == zone.CategoryID {
			zoneOverrides = append(zoneOverrides, o)
		}
	}

	return s.calculator.RankStandings(standings, zoneOverrides), nil
}

// SetManualOrder pins a team to a position in its zone table, zero clears it.
// An empty category defaults to the zone's category, any other category is rejected.
func (s *standingsService) SetManualOrder(ctx context.Context, zoneID, categoryID, teamID string, order int) error {
	if order < 0 {
		return entities.ErrInvalidManualOrder
	}

	zone, err := s.getZone(ctx, zoneID)
	if err != nil {
		return err
	}
	if categoryID == "" {
		categoryID = zone.CategoryID
	}
	if categoryID != zone.CategoryID {
		return fmt.Errorf("%w: category %s, zone %s", entities.ErrCategoryMismatch, categoryID, zoneID)
	}

	teams, err := s.zoneRepo.GetTeams(ctx, zoneID)
	if err != nil {
		return fmt.Errorf("failed to get teams: %w", err)
	}
	found := false
	for _, team := range teams {
		if team.ID == teamID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: team %s, zone %s", entities.ErrTeamNotInZone, teamID, zoneID)
	}

	override := &entities.StandingOverride{
		ZoneID:      zoneID,
		CategoryID:  categoryID,
		TeamID:      teamID,
		ManualOrder: order,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.standingRepo.SetOverride(ctx, override); err != nil {
		return fmt.Errorf("failed to set standing override: %w", err)
	}

	log.WithFields(log.Fields{
		"zoneID":      zoneID,
		"teamID":      teamID,
		"manualOrder": order,
	}).Info("Updated manual standing order")
	return nil
}

func (s *standingsService) getZone(ctx context.Context, zoneID string) (*entities.Zone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	if zone == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrZoneNotFound, zoneID)
	}
	return zone, nil
}
