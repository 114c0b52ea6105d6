package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeMatchSettled        EventType = "match_settled"
	EventTypeWalletCredited      EventType = "wallet_credited"
	EventTypeStandingsRecomputed EventType = "standings_recomputed"
	EventTypeMatchResultRecorded EventType = "match_result_recorded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// MatchSettledEvent is published once a settlement run for a match commits
type MatchSettledEvent struct {
	MatchID     string  `json:"match_id"`
	Mode        string  `json:"mode"`
	Settled     int     `json:"settled"`
	Credited    int     `json:"credited"`
	TotalPaid   float64 `json:"total_paid"`
	ActorUserID *string `json:"actor_user_id,omitempty"`
}

func (e MatchSettledEvent) Type() EventType {
	return EventTypeMatchSettled
}

// WalletCreditedEvent represents a payout credited to a user's wallet
type WalletCreditedEvent struct {
	UserID       string  `json:"user_id"`
	MatchID      string  `json:"match_id"`
	PredictionID string  `json:"prediction_id"`
	Amount       float64 `json:"amount"`
	BalanceAfter float64 `json:"balance_after"`
}

func (e WalletCreditedEvent) Type() EventType {
	return EventTypeWalletCredited
}

// StandingsRecomputedEvent represents a full replace of a zone table
type StandingsRecomputedEvent struct {
	ZoneID     string `json:"zone_id"`
	LeagueID   string `json:"league_id"`
	CategoryID string `json:"category_id"`
	Teams      int    `json:"teams"`
}

func (e StandingsRecomputedEvent) Type() EventType {
	return EventTypeStandingsRecomputed
}

// MatchResultRecordedEvent represents a match result being set or edited
type MatchResultRecordedEvent struct {
	MatchID   string `json:"match_id"`
	ZoneID    string `json:"zone_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

func (e MatchResultRecordedEvent) Type() EventType {
	return EventTypeMatchResultRecorded
}
