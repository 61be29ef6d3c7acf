package contract

import (
	"context"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
}
