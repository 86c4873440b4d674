package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/repository"
)

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log records an audit entry. Metadata is optional; marshal failures
// are swallowed so auditing never blocks the calling operation.
func (s *Service) Log(ctx context.Context, accountID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]interface{}) error {
	var raw json.RawMessage
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			raw = b
		}
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		AccountID:  accountID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   raw,
		CreatedAt:  time.Now(),
	}
	return s.repo.Create(ctx, entry)
}

func (s *Service) ListForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*model.AuditLog, error) {
	return s.repo.ListForAccount(ctx, accountID, limit)
}
