package contract

import (
	"context"
	"time"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	// FindOneForUpdate takes a row lock. Only valid inside a transaction;
	// the orchestrator uses it to serialize concurrent processing attempts.
	FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumAmount(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error)
	// CountRecentByPayee counts other payments to the payee created after
	// the cutoff, excluding excludeId. Feeds the velocity fraud rule.
	CountRecentByPayee(ctx context.Context, payee string, after time.Time, excludeId uuid.UUID) (int, error)
}

type FraudAlertRepository interface {
	Create(ctx context.Context, alert *entity.FraudAlert) error
	Update(ctx context.Context, alert *entity.FraudAlert) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FraudAlert, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FraudAlert, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
