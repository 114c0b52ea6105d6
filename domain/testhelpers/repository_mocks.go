package testhelpers

import (
	"context"
	"time"

	"liga/domain/entities"
	"liga/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id string) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByZone(ctx context.Context, zoneID string) ([]*entities.Match, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) UpdateResult(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) ListWithUnsettledPredictions(ctx context.Context, limit int) ([]*entities.Match, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) LockUnsettledByMatch(ctx context.Context, matchID string) ([]*entities.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ApplySettlementBatch(ctx context.Context, batch *entities.SettlementBatch, settledAt time.Time) ([]string, error) {
	args := m.Called(ctx, batch, settledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPayoutConfigRepository is a mock implementation of PayoutConfigRepository
type MockPayoutConfigRepository struct {
	mock.Mock
}

func (m *MockPayoutConfigRepository) GetActive(ctx context.Context) (*entities.PayoutConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PayoutConfig), args.Error(1)
}

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Credit(ctx context.Context, tx *entities.WalletTransaction) (bool, error) {
	args := m.Called(ctx, tx)
	return args.Bool(0), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *entities.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockZoneRepository is a mock implementation of ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) GetByID(ctx context.Context, id string) (*entities.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetTeams(ctx context.Context, zoneID string) ([]*entities.Team, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

// MockStandingRepository is a mock implementation of StandingRepository
type MockStandingRepository struct {
	mock.Mock
}

func (m *MockStandingRepository) ReplaceForZone(ctx context.Context, zoneID string, standings []*entities.Standing) error {
	args := m.Called(ctx, zoneID, standings)
	return args.Error(0)
}

func (m *MockStandingRepository) GetByZone(ctx context.Context, zoneID string) ([]*entities.Standing, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Standing), args.Error(1)
}

func (m *MockStandingRepository) GetOverrides(ctx context.Context, zoneID string) ([]*entities.StandingOverride, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StandingOverride), args.Error(1)
}

func (m *MockStandingRepository) SetOverride(ctx context.Context, override *entities.StandingOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
