package testhelpers

import (
	"context"
	"sync"

	"liga/domain/events"
)

// RecordingPublisher is an in-memory TransactionalEventPublisher.
// Published events stay pending until Flush and are dropped by Discard.
type RecordingPublisher struct {
	mu        sync.Mutex
	pending   []events.Event
	published []events.Event
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, event)
	return nil
}

func (p *RecordingPublisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, p.pending...)
	p.pending = nil
	return nil
}

func (p *RecordingPublisher) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
}

// Published returns the flushed events in publish order
func (p *RecordingPublisher) Published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.published...)
}

// Pending returns the events waiting for a flush
func (p *RecordingPublisher) Pending() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.pending...)
}

// PublishedOfType filters the flushed events by type
func (p *RecordingPublisher) PublishedOfType(eventType events.EventType) []events.Event {
	var matching []events.Event
	for _, e := range p.Published() {
		if e.Type() == eventType {
			matching = append(matching, e)
		}
	}
	return matching
}
