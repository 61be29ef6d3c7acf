package contract

import (
	"context"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/specification"
)

// AuditLogRepository is append-only on purpose: no Update or Delete.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
