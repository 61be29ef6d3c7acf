package contract

import (
	"context"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProcurementRepository interface {
	Create(ctx context.Context, procurement *entity.Procurement) error
	Update(ctx context.Context, procurement *entity.Procurement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Procurement, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Procurement, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PurchaseRequestRepository interface {
	Create(ctx context.Context, request *entity.PurchaseRequest) error
	Update(ctx context.Context, request *entity.PurchaseRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PurchaseRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PurchaseRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type RevenueRepository interface {
	Create(ctx context.Context, revenue *entity.Revenue) error
	Update(ctx context.Context, revenue *entity.Revenue) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revenue, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Revenue, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumAmount(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error)
}
