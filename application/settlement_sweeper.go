package application

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// SettlementSweeper periodically settles matches whose predictions are still pending
type SettlementSweeper struct {
	handler  *SettlementHandler
	interval time.Duration
	limit    int
}

// NewSettlementSweeper creates a new settlement sweeper
func NewSettlementSweeper(handler *SettlementHandler, interval time.Duration, limit int) *SettlementSweeper {
	return &SettlementSweeper{
		handler:  handler,
		interval: interval,
		limit:    limit,
	}
}

// Start runs the sweeper until the context ends or the returned stop function is called
func (s *SettlementSweeper) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		log.WithFields(log.Fields{
			"interval": s.interval,
			"limit":    s.limit,
		}).Info("Settlement sweeper started")

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Settlement sweeper shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Settlement sweeper shutting down (stop requested)...")
				return
			case <-ticker.C:
				if _, err := s.handler.SettleUnsettledMatches(ctx, s.limit); err != nil {
					log.WithError(err).Error("Settlement sweep failed")
				}
			}
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() { close(stopChan) })
		<-done
	}
}
