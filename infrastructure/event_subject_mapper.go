package infrastructure

import (
	"fmt"

	"liga/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeMatchSettled:
		return "settlement.match_settled"
	case events.EventTypeWalletCredited:
		return "wallets.credited"
	case events.EventTypeStandingsRecomputed:
		return "standings.recomputed"
	case events.EventTypeMatchResultRecorded:
		return "matches.result_recorded"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "settlement.match_settled":
		return events.EventTypeMatchSettled
	case "wallets.credited":
		return events.EventTypeWalletCredited
	case "standings.recomputed":
		return events.EventTypeStandingsRecomputed
	case "matches.result_recorded":
		return events.EventTypeMatchResultRecorded
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"settlement.match_settled",
		"wallets.credited",
		"standings.recomputed",
		"matches.result_recorded",
	}
}
