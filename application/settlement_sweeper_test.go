package application_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"liga/application"
	"liga/domain/entities"
	"liga/domain/interfaces"
	"liga/domain/testhelpers"
	"liga/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// idleUnitOfWorkFactory returns units of work that never find pending matches
type idleUnitOfWorkFactory struct {
	created atomic.Int32
}

func (f *idleUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	f.created.Add(1)
	uow := testhelpers.NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Matches.On("ListWithUnsettledPredictions", mock.Anything, 5).Return([]*entities.Match{}, nil)
	return uow
}

func TestSettlementSweeper_SweepsUntilStopped(t *testing.T) {
	factory := &idleUnitOfWorkFactory{}
	handler := application.NewSettlementHandler(factory, observability.NewMetrics())
	sweeper := application.NewSettlementSweeper(handler, 5*time.Millisecond, 5)

	stop := sweeper.Start(context.Background())
	assert.Eventually(t, func() bool {
		return factory.created.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	stop()
	stopped := factory.created.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, factory.created.Load())

	// Stopping twice is harmless
	stop()
}

func TestSettlementSweeper_StopsOnContextCancel(t *testing.T) {
	factory := &idleUnitOfWorkFactory{}
	handler := application.NewSettlementHandler(factory, observability.NewMetrics())
	sweeper := application.NewSettlementSweeper(handler, time.Hour, 5)

	ctx, cancel := context.WithCancel(context.Background())
	stop := sweeper.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
	assert.Equal(t, int32(0), factory.created.Load())
}
