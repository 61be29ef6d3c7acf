package service

import (
	"context"
	"fmt"
	"time"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IRevenueService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRevenueRequest) (*dto.RevenueResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RevenueResponse, error)
	List(ctx context.Context, category string, limit, offset int) (*dto.RevenueListResponse, error)
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}

type revenueService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	logger     logger.ILogger
}

func NewRevenueService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, log logger.ILogger) IRevenueService {
	return &revenueService{
		uowFactory: uowFactory,
		audit:      audit,
		logger:     log,
	}
}

func (s *revenueService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRevenueRequest) (*dto.RevenueResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	year := time.Now().Year()
	seq, err := uow.SequenceRepository().Next(ctx, "REV", year)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	revenue := &entity.Revenue{
		Id:            uuid.New(),
		RevenueNumber: fmt.Sprintf("REV-%d-%04d", year, seq),
		Source:        req.Source,
		Category:      req.Category,
		Amount:        req.Amount,
		Currency:      currency,
		Description:   req.Description,
		ReceivedDate:  req.ReceivedDate,
		RecordedBy:    userId,
	}
	if err := uow.RevenueRepository().Create(ctx, revenue); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionCreate, "revenue", &revenue.Id, map[string]interface{}{
		"revenue_number": revenue.RevenueNumber,
		"amount":         revenue.Amount.String(),
	})
	return toRevenueResponse(revenue), nil
}

func (s *revenueService) Get(ctx context.Context, id uuid.UUID) (*dto.RevenueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	revenue, err := uow.RevenueRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if revenue == nil {
		return nil, apperr.ErrNotFound
	}
	return toRevenueResponse(revenue), nil
}

func (s *revenueService) List(ctx context.Context, category string, limit, offset int) (*dto.RevenueListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if category != "" {
		specs = append(specs, specification.Filter("category", category))
	}

	total, err := uow.RevenueRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "received_date", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	items, err := uow.RevenueRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.RevenueListResponse{
		Revenues: make([]dto.RevenueResponse, len(items)),
		Total:    total,
	}
	for i, r := range items {
		res.Revenues[i] = *toRevenueResponse(r)
	}
	return res, nil
}

func (s *revenueService) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	revenue, err := uow.RevenueRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if revenue == nil {
		return apperr.ErrNotFound
	}

	if err := uow.RevenueRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionDelete, "revenue", &id, map[string]interface{}{
		"revenue_number": revenue.RevenueNumber,
	})
	return nil
}

func toRevenueResponse(r *entity.Revenue) *dto.RevenueResponse {
	return &dto.RevenueResponse{
		Id:            r.Id,
		RevenueNumber: r.RevenueNumber,
		Source:        r.Source,
		Category:      r.Category,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
		ReceivedDate:  r.ReceivedDate,
		RecordedBy:    r.RecordedBy,
		CreatedAt:     r.CreatedAt,
	}
}
