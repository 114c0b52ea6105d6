package entities

import (
	"time"
)

// AuditAction names an administrative action
type AuditAction string

const (
	AuditActionSettle AuditAction = "settle"
)

// AuditLogEntry is an append-only record of an administrative action
type AuditLogEntry struct {
	ID          int64          `db:"id"`
	ActorUserID *string        `db:"actor_user_id"`
	Action      AuditAction    `db:"action"`
	Details     map[string]any `db:"details"`
	CreatedAt   time.Time      `db:"created_at"`
}
