package infrastructure

import (
	"context"

	"liga/domain/events"
	"liga/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// LocalEventHandler reacts in-process to an event once its transaction committed
type LocalEventHandler func(ctx context.Context, event events.Event) error

// NATSTransactionalPublisher holds events until flush, then runs local handlers and
// publishes to NATS. Events are only ever seen after the database commit.
type NATSTransactionalPublisher struct {
	realPublisher interfaces.EventPublisher
	pending       []events.Event
	localHandlers map[events.EventType][]LocalEventHandler
}

// NewNATSTransactionalPublisher creates a new transactional publisher
func NewNATSTransactionalPublisher(realPublisher interfaces.EventPublisher) *NATSTransactionalPublisher {
	return &NATSTransactionalPublisher{
		realPublisher: realPublisher,
		pending:       make([]events.Event, 0),
		localHandlers: make(map[events.EventType][]LocalEventHandler),
	}
}

// RegisterLocalHandler registers a handler invoked during Flush for the event type
func (p *NATSTransactionalPublisher) RegisterLocalHandler(eventType events.EventType, handler LocalEventHandler) {
	p.localHandlers[eventType] = append(p.localHandlers[eventType], handler)
}

// Publish stores an event in the pending queue without immediately publishing
func (p *NATSTransactionalPublisher) Publish(event events.Event) error {
	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"pendingCount": len(p.pending),
	}).Debug("Adding event to transactional publisher pending queue")

	p.pending = append(p.pending, event)
	return nil
}

// Flush publishes all pending events.
// Called after a successful commit; a failing event does not block the rest.
func (p *NATSTransactionalPublisher) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(p.pending)).Debug("Flushing pending events")

	for _, event := range p.pending {
		for _, handler := range p.localHandlers[event.Type()] {
			if err := handler(ctx, event); err != nil {
				log.WithFields(log.Fields{
					"eventType": event.Type(),
					"error":     err,
				}).Error("Local event handler failed")
			}
		}

		if err := p.realPublisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish event during flush")
		}
	}

	p.pending = p.pending[:0]
	return nil
}

// Discard clears all pending events without publishing them.
// Called on rollback.
func (p *NATSTransactionalPublisher) Discard() {
	log.WithField("discardedEventCount", len(p.pending)).Debug("Discarding pending events")
	p.pending = p.pending[:0]
}
