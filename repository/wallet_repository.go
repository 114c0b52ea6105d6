package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"liga/database"
	"liga/domain/entities"
	"liga/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository implements wallet balance and ledger access
type WalletRepository struct {
	q Queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// newWalletRepository creates a new wallet repository with a transaction
func newWalletRepository(tx Queryable) interfaces.WalletRepository {
	return &WalletRepository{q: tx}
}

// Credit appends a ledger entry and increments the wallet balance.
// The wallet row is locked first so balance_after is exact under concurrent credits.
// A reused idempotency key leaves both the ledger and the balance untouched.
// Must run inside a transaction.
func (r *WalletRepository) Credit(ctx context.Context, tx *entities.WalletTransaction) (bool, error) {
	metadataJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		return false, fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	if _, err := r.q.Exec(ctx, `
		INSERT INTO wallets (user_id, balance) VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, tx.UserID); err != nil {
		return false, fmt.Errorf("failed to ensure wallet for user %s: %w", tx.UserID, err)
	}

	var balance float64
	if err := r.q.QueryRow(ctx, `
		SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE
	`, tx.UserID).Scan(&balance); err != nil {
		return false, fmt.Errorf("failed to lock wallet for user %s: %w", tx.UserID, err)
	}

	balanceAfter := decimal.NewFromFloat(balance).Add(decimal.NewFromFloat(tx.Amount)).Round(2).InexactFloat64()

	query := `
		INSERT INTO wallet_transactions (user_id, amount, reason, idempotency_key, balance_after, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id, created_at
	`
	err = r.q.QueryRow(ctx, query,
		tx.UserID,
		tx.Amount,
		string(tx.Reason),
		tx.IdempotencyKey,
		balanceAfter,
		metadataJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to record wallet transaction: %w", err)
	}

	if _, err := r.q.Exec(ctx, `
		UPDATE wallets SET balance = $2, updated_at = NOW() WHERE user_id = $1
	`, tx.UserID, balanceAfter); err != nil {
		return false, fmt.Errorf("failed to update wallet balance: %w", err)
	}

	tx.BalanceAfter = balanceAfter
	return true, nil
}

// GetByUser returns the wallet of a user, nil when it does not exist.
// Test support for asserting balances; not part of WalletRepository.
func (r *WalletRepository) GetByUser(ctx context.Context, userID string) (*entities.Wallet, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet entities.Wallet
	err := r.q.QueryRow(ctx, query, userID).Scan(&wallet.UserID, &wallet.Balance, &wallet.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %s: %w", userID, err)
	}

	return &wallet, nil
}

// GetTransactionsByUser returns the most recent ledger entries of a user.
// Test support for asserting ledger contents; not part of WalletRepository.
func (r *WalletRepository) GetTransactionsByUser(ctx context.Context, userID string, limit int) ([]*entities.WalletTransaction, error) {
	query := `
		SELECT id, user_id, amount, reason, idempotency_key, balance_after, metadata, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entities.WalletTransaction
	for rows.Next() {
		var tx entities.WalletTransaction
		var reason string
		var metadataJSON []byte
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&reason,
			&tx.IdempotencyKey,
			&tx.BalanceAfter,
			&metadataJSON,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}

		tx.Reason = entities.WalletTransactionReason(reason)
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet transactions: %w", err)
	}

	return transactions, nil
}
