package testhelpers

import (
	"context"

	"liga/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a unit of work whose repositories are mocks.
// Begin, Commit and Rollback are recorded so tests can assert the transaction outcome.
type MockUnitOfWork struct {
	mock.Mock

	Matches       *MockMatchRepository
	Predictions   *MockPredictionRepository
	PayoutConfigs *MockPayoutConfigRepository
	Wallets       *MockWalletRepository
	AuditLog      *MockAuditLogRepository
	Zones         *MockZoneRepository
	Standings     *MockStandingRepository
	Events        *MockEventPublisher
}

// NewMockUnitOfWork creates a MockUnitOfWork with fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Matches:       new(MockMatchRepository),
		Predictions:   new(MockPredictionRepository),
		PayoutConfigs: new(MockPayoutConfigRepository),
		Wallets:       new(MockWalletRepository),
		AuditLog:      new(MockAuditLogRepository),
		Zones:         new(MockZoneRepository),
		Standings:     new(MockStandingRepository),
		Events:        new(MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) MatchRepository() interfaces.MatchRepository { return m.Matches }

func (m *MockUnitOfWork) PredictionRepository() interfaces.PredictionRepository {
	return m.Predictions
}

func (m *MockUnitOfWork) PayoutConfigRepository() interfaces.PayoutConfigRepository {
	return m.PayoutConfigs
}

func (m *MockUnitOfWork) WalletRepository() interfaces.WalletRepository { return m.Wallets }

func (m *MockUnitOfWork) AuditLogRepository() interfaces.AuditLogRepository { return m.AuditLog }

func (m *MockUnitOfWork) ZoneRepository() interfaces.ZoneRepository { return m.Zones }

func (m *MockUnitOfWork) StandingRepository() interfaces.StandingRepository { return m.Standings }

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher { return m.Events }

// AssertAllExpectations asserts the expectations of the unit of work and every repository mock
func (m *MockUnitOfWork) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.Matches.AssertExpectations(t)
	m.Predictions.AssertExpectations(t)
	m.PayoutConfigs.AssertExpectations(t)
	m.Wallets.AssertExpectations(t)
	m.AuditLog.AssertExpectations(t)
	m.Zones.AssertExpectations(t)
	m.Standings.AssertExpectations(t)
	m.Events.AssertExpectations(t)
}

// MockUnitOfWorkFactory hands out the queued units of work in order
type MockUnitOfWorkFactory struct {
	Units []*MockUnitOfWork
	next  int
}

// NewMockUnitOfWorkFactory creates a factory returning the given units of work
func NewMockUnitOfWorkFactory(units ...*MockUnitOfWork) *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{Units: units}
}

func (f *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	if f.next >= len(f.Units) {
		panic("MockUnitOfWorkFactory: no unit of work left")
	}
	uow := f.Units[f.next]
	f.next++
	return uow
}
