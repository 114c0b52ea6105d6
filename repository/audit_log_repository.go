package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"liga/database"
	"liga/domain/entities"
	"liga/domain/interfaces"
)

// AuditLogRepository implements the append-only audit log
type AuditLogRepository struct {
	q Queryable
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *database.DB) interfaces.AuditLogRepository {
	return &AuditLogRepository{q: db.Pool}
}

// newAuditLogRepository creates a new audit log repository with a transaction
func newAuditLogRepository(tx Queryable) interfaces.AuditLogRepository {
	return &AuditLogRepository{q: tx}
}

// Append inserts an audit log entry
func (r *AuditLogRepository) Append(ctx context.Context, entry *entities.AuditLogEntry) error {
	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	query := `
		INSERT INTO audit_log (actor_user_id, action, details)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query, entry.ActorUserID, string(entry.Action), detailsJSON).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit log entry: %w", err)
	}

	return nil
}
