package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, account_id, action, entity_type, entity_id, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.AccountID,
		log.Action,
		log.EntityType,
		log.EntityID,
		log.Metadata,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*model.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, account_id, action, entity_type, entity_id, metadata, created_at
		FROM audit_logs
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, accountID, limit); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
