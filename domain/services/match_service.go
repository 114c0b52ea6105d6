package services

import (
	"context"
	"fmt"

	"liga/domain/entities"
	"liga/domain/events"
	"liga/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type matchService struct {
	matchRepo      interfaces.MatchRepository
	eventPublisher interfaces.EventPublisher
}

// NewMatchService creates a new match service
func NewMatchService(matchRepo interfaces.MatchRepository, eventPublisher interfaces.EventPublisher) interfaces.MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		eventPublisher: eventPublisher,
	}
}

// RecordResult stores the final score of a match. Editing an existing result is allowed.
func (s *matchService) RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (*entities.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrMatchNotFound, matchID)
	}

	if err := match.RecordResult(homeScore, awayScore); err != nil {
		return nil, err
	}

	if err := s.matchRepo.UpdateResult(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match result: %w", err)
	}

	if err := s.eventPublisher.Publish(events.MatchResultRecordedEvent{
		MatchID:   match.ID,
		ZoneID:    match.ZoneID,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}); err != nil {
		log.WithError(err).Error("Failed to publish match result recorded event")
	}

	log.WithFields(log.Fields{
		"matchID":   match.ID,
		"zoneID":    match.ZoneID,
		"homeScore": homeScore,
		"awayScore": awayScore,
	}).Info("Recorded match result")

	return match, nil
}
