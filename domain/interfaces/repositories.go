package interfaces

import (
	"context"
	"time"

	"liga/domain/entities"
	"liga/domain/events"
)

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// GetByID retrieves a match by its ID, nil when it does not exist
	GetByID(ctx context.Context, id string) (*entities.Match, error)

	// GetByZone returns every match of the zone's fixtures
	GetByZone(ctx context.Context, zoneID string) ([]*entities.Match, error)

	// UpdateResult persists the scores and played flag of a match
	UpdateResult(ctx context.Context, match *entities.Match) error

	// ListWithUnsettledPredictions returns played matches that still have unsettled predictions
	ListWithUnsettledPredictions(ctx context.Context, limit int) ([]*entities.Match, error)
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	// LockUnsettledByMatch returns the unsettled predictions of a match and locks them
	// for the rest of the transaction. Rows locked by another settlement are skipped.
	LockUnsettledByMatch(ctx context.Context, matchID string) ([]*entities.Prediction, error)

	// ApplySettlementBatch marks every row of the batch settled with its computed fields.
	// Rows settled concurrently are left untouched; the returned IDs are the rows this call settled.
	ApplySettlementBatch(ctx context.Context, batch *entities.SettlementBatch, settledAt time.Time) ([]string, error)
}

// PayoutConfigRepository defines the interface for payout configuration access
type PayoutConfigRepository interface {
	// GetActive returns the most recently updated active configuration, nil when none exists
	GetActive(ctx context.Context) (*entities.PayoutConfig, error)
}

// WalletRepository defines the interface for wallet balances and their ledger
type WalletRepository interface {
	// Credit appends the transaction and increments the balance atomically.
	// It returns false without changing anything when the idempotency key was already used.
	Credit(ctx context.Context, tx *entities.WalletTransaction) (bool, error)
}

// AuditLogRepository defines the interface for the append-only audit log
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entities.AuditLogEntry) error
}

// ZoneRepository defines the interface for zone and roster access
type ZoneRepository interface {
	// GetByID retrieves a zone, nil when it does not exist
	GetByID(ctx context.Context, id string) (*entities.Zone, error)

	// GetTeams returns the teams belonging to a zone
	GetTeams(ctx context.Context, zoneID string) ([]*entities.Team, error)
}

// StandingRepository defines the interface for stored zone tables
type StandingRepository interface {
	// ReplaceForZone discards every standing of the zone and inserts the given set
	ReplaceForZone(ctx context.Context, zoneID string, standings []*entities.Standing) error

	// GetByZone returns the stored standings of a zone
	GetByZone(ctx context.Context, zoneID string) ([]*entities.Standing, error)

	// GetOverrides returns the manual order overrides of a zone
	GetOverrides(ctx context.Context, zoneID string) ([]*entities.StandingOverride, error)

	// SetOverride stores a manual order, an order of zero removes it
	SetOverride(ctx context.Context, override *entities.StandingOverride) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding transaction ends
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}

// UnitOfWork groups the repositories that share one database transaction
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	MatchRepository() MatchRepository
	PredictionRepository() PredictionRepository
	PayoutConfigRepository() PayoutConfigRepository
	WalletRepository() WalletRepository
	AuditLogRepository() AuditLogRepository
	ZoneRepository() ZoneRepository
	StandingRepository() StandingRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
