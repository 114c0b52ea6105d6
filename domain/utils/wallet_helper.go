package utils

import (
	"context"
	"fmt"

	"liga/domain/entities"
	"liga/domain/events"
	"liga/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// CreditWallet records a wallet credit and emits the matching event.
// This is the single entry point for all balance changes in the system.
// It returns false when the idempotency key was already used, in which case nothing changes.
func CreditWallet(
	ctx context.Context,
	walletRepo interfaces.WalletRepository,
	eventPublisher interfaces.EventPublisher,
	tx *entities.WalletTransaction,
) (bool, error) {
	if tx.Amount <= 0 {
		return false, fmt.Errorf("credit amount must be positive, got %.2f", tx.Amount)
	}

	applied, err := walletRepo.Credit(ctx, tx)
	if err != nil {
		return false, fmt.Errorf("failed to credit wallet: %w", err)
	}
	if !applied {
		log.WithFields(log.Fields{
			"userID":         tx.UserID,
			"idempotencyKey": tx.IdempotencyKey,
			"amount":         tx.Amount,
		}).Warn("Wallet credit already applied, skipping")
		return false, nil
	}

	event := events.WalletCreditedEvent{
		UserID:       tx.UserID,
		Amount:       tx.Amount,
		BalanceAfter: tx.BalanceAfter,
	}
	if matchID, ok := tx.Metadata["match_id"].(string); ok {
		event.MatchID = matchID
	}
	if predictionID, ok := tx.Metadata["prediction_id"].(string); ok {
		event.PredictionID = predictionID
	}

	log.WithFields(log.Fields{
		"userID":       event.UserID,
		"matchID":      event.MatchID,
		"predictionID": event.PredictionID,
		"amount":       event.Amount,
		"balanceAfter": event.BalanceAfter,
	}).Debug("Publishing WalletCreditedEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish wallet credited event")
	}

	return true, nil
}
