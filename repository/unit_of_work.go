package repository

import (
	"context"
	"errors"
	"fmt"

	"liga/database"
	"liga/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher
	matchRepo              interfaces.MatchRepository
	predictionRepo         interfaces.PredictionRepository
	payoutConfigRepo       interfaces.PayoutConfigRepository
	walletRepo             interfaces.WalletRepository
	auditLogRepo           interfaces.AuditLogRepository
	zoneRepo               interfaces.ZoneRepository
	standingRepo           interfaces.StandingRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db: db,
	}
}

// UnitOfWorkFactory builds transaction-scoped units of work over one pool
type UnitOfWorkFactory struct {
	db *database.DB
}

// CreateWithPublisher creates a new UnitOfWork that stages events on the given publisher
func (f *UnitOfWorkFactory) CreateWithPublisher(transactionalPublisher interfaces.TransactionalEventPublisher) interfaces.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: transactionalPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.matchRepo = newMatchRepository(tx)
	u.predictionRepo = newPredictionRepository(tx)
	u.payoutConfigRepo = newPayoutConfigRepository(tx)
	u.walletRepo = newWalletRepository(tx)
	u.auditLogRepo = newAuditLogRepository(tx)
	u.zoneRepo = newZoneRepository(tx)
	u.standingRepo = newStandingRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		if err := u.transactionalPublisher.Flush(u.ctx); err != nil {
			log.WithError(err).Error("Failed to flush events after commit")
		}
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// MatchRepository returns the match repository for this unit of work
func (u *unitOfWork) MatchRepository() interfaces.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

// PredictionRepository returns the prediction repository for this unit of work
func (u *unitOfWork) PredictionRepository() interfaces.PredictionRepository {
	if u.predictionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.predictionRepo
}

// PayoutConfigRepository returns the payout config repository for this unit of work
func (u *unitOfWork) PayoutConfigRepository() interfaces.PayoutConfigRepository {
	if u.payoutConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.payoutConfigRepo
}

// WalletRepository returns the wallet repository for this unit of work
func (u *unitOfWork) WalletRepository() interfaces.WalletRepository {
	if u.walletRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.walletRepo
}

// AuditLogRepository returns the audit log repository for this unit of work
func (u *unitOfWork) AuditLogRepository() interfaces.AuditLogRepository {
	if u.auditLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.auditLogRepo
}

// ZoneRepository returns the zone repository for this unit of work
func (u *unitOfWork) ZoneRepository() interfaces.ZoneRepository {
	if u.zoneRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.zoneRepo
}

// StandingRepository returns the standing repository for this unit of work
func (u *unitOfWork) StandingRepository() interfaces.StandingRepository {
	if u.standingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.standingRepo
}

// EventBus returns the transactional publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}
