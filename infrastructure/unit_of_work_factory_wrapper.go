package infrastructure

import (
	"liga/database"
	"liga/domain/events"
	"liga/domain/interfaces"
	"liga/repository"
)

// UnitOfWorkFactoryWrapper gives every unit of work its own transactional publisher
type UnitOfWorkFactoryWrapper struct {
	repoFactory interface {
		CreateWithPublisher(transactionalPublisher interfaces.TransactionalEventPublisher) interfaces.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
	localHandlers  map[events.EventType][]LocalEventHandler
}

// NewUnitOfWorkFactoryWrapper creates a new wrapper that implements interfaces.UnitOfWorkFactory
func NewUnitOfWorkFactoryWrapper(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactoryWrapper {
	return &UnitOfWorkFactoryWrapper{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
		localHandlers:  make(map[events.EventType][]LocalEventHandler),
	}
}

// RegisterLocalHandler registers a handler copied into every unit of work created afterwards
func (w *UnitOfWorkFactoryWrapper) RegisterLocalHandler(eventType events.EventType, handler LocalEventHandler) {
	w.localHandlers[eventType] = append(w.localHandlers[eventType], handler)
}

// Create creates a new UnitOfWork with a transactional event publisher
func (w *UnitOfWorkFactoryWrapper) Create() interfaces.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(w.eventPublisher)
	for eventType, handlers := range w.localHandlers {
		for _, handler := range handlers {
			transactionalPublisher.RegisterLocalHandler(eventType, handler)
		}
	}
	return w.repoFactory.CreateWithPublisher(transactionalPublisher)
}
