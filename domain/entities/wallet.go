package entities

import (
	"fmt"
	"time"
)

// WalletTransactionReason categorizes a wallet ledger entry
type WalletTransactionReason string

const (
	WalletReasonPayout WalletTransactionReason = "payout"
)

// Wallet holds a user's balance
type Wallet struct {
	UserID    string    `db:"user_id"`
	Balance   float64   `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}

// WalletTransaction is an immutable ledger entry for a wallet credit
type WalletTransaction struct {
	ID             int64                   `db:"id"`
	UserID         string                  `db:"user_id"`
	Amount         float64                 `db:"amount"`
	Reason         WalletTransactionReason `db:"reason"`
	IdempotencyKey string                  `db:"idempotency_key"`
	BalanceAfter   float64                 `db:"balance_after"`
	Metadata       map[string]any          `db:"metadata"`
	CreatedAt      time.Time               `db:"created_at"`
}

// PayoutIdempotencyKey identifies the single payout credit allowed for a prediction
func PayoutIdempotencyKey(predictionID string) string {
	return fmt.Sprintf("payout:%s", predictionID)
}
