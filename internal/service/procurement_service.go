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

type IProcurementService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateProcurementRequest) (*dto.ProcurementResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProcurementResponse, error)
	List(ctx context.Context, status string, limit, offset int) (*dto.ProcurementListResponse, error)
	Update(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.UpdateProcurementRequest) (*dto.ProcurementResponse, error)
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}

type procurementService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	logger     logger.ILogger
}

func NewProcurementService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, log logger.ILogger) IProcurementService {
	return &procurementService{
		uowFactory: uowFactory,
		audit:      audit,
		logger:     log,
	}
}

// validTransitions maps each procurement status to the set it may move to.
var validTransitions = map[entity.ProcurementStatus][]entity.ProcurementStatus{
	entity.ProcurementStatusDraft:     {entity.ProcurementStatusTendering, entity.ProcurementStatusCancelled},
	entity.ProcurementStatusTendering: {entity.ProcurementStatusAwarded, entity.ProcurementStatusCancelled},
	entity.ProcurementStatusAwarded:   {entity.ProcurementStatusCompleted, entity.ProcurementStatusCancelled},
}

func canTransition(from, to entity.ProcurementStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *procurementService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateProcurementRequest) (*dto.ProcurementResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	year := time.Now().Year()
	seq, err := uow.SequenceRepository().Next(ctx, "TN", year)
	if err != nil {
		return nil, err
	}

	procurement := &entity.Procurement{
		Id:           uuid.New(),
		TenderNumber: fmt.Sprintf("TN-%d-%04d", year, seq),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Vendor:       req.Vendor,
		Amount:       req.Amount,
		Status:       entity.ProcurementStatusDraft,
		CreatedBy:    userId,
	}
	if err := uow.ProcurementRepository().Create(ctx, procurement); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionCreate, "procurement", &procurement.Id, map[string]interface{}{
		"tender_number": procurement.TenderNumber,
		"title":         procurement.Title,
	})
	return toProcurementResponse(procurement), nil
}

func (s *procurementService) Get(ctx context.Context, id uuid.UUID) (*dto.ProcurementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	procurement, err := uow.ProcurementRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if procurement == nil {
		return nil, apperr.ErrNotFound
	}
	return toProcurementResponse(procurement), nil
}

func (s *procurementService) List(ctx context.Context, status string, limit, offset int) (*dto.ProcurementListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	total, err := uow.ProcurementRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	items, err := uow.ProcurementRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ProcurementListResponse{
		Procurements: make([]dto.ProcurementResponse, len(items)),
		Total:        total,
	}
	for i, p := range items {
		res.Procurements[i] = *toProcurementResponse(p)
	}
	return res, nil
}

func (s *procurementService) Update(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.UpdateProcurementRequest) (*dto.ProcurementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	procurement, err := uow.ProcurementRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if procurement == nil {
		return nil, apperr.ErrNotFound
	}

	changes := map[string]interface{}{}
	if req.Title != nil {
		procurement.Title = *req.Title
	}
	if req.Description != nil {
		procurement.Description = *req.Description
	}
	if req.Category != nil {
		procurement.Category = *req.Category
	}
	if req.Vendor != nil {
		procurement.Vendor = *req.Vendor
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
		}
		changes["amount"] = map[string]interface{}{"from": procurement.Amount.String(), "to": req.Amount.String()}
		procurement.Amount = *req.Amount
	}
	if req.Status != nil {
		to := entity.ProcurementStatus(*req.Status)
		if to != procurement.Status {
			if !canTransition(procurement.Status, to) {
				return nil, fmt.Errorf("%w: cannot move from %s to %s", apperr.ErrInvalidState, procurement.Status, to)
			}
			changes["status"] = map[string]interface{}{"from": string(procurement.Status), "to": *req.Status}
			procurement.Status = to
		}
	}

	if err := uow.ProcurementRepository().Update(ctx, procurement); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionUpdate, "procurement", &procurement.Id, changes)
	return toProcurementResponse(procurement), nil
}

func (s *procurementService) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	procurement, err := uow.ProcurementRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if procurement == nil {
		return apperr.ErrNotFound
	}
	if procurement.Status != entity.ProcurementStatusDraft {
		return fmt.Errorf("%w: only draft procurements can be deleted", apperr.ErrInvalidState)
	}

	if err := uow.ProcurementRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionDelete, "procurement", &id, map[string]interface{}{
		"tender_number": procurement.TenderNumber,
	})
	return nil
}

func toProcurementResponse(p *entity.Procurement) *dto.ProcurementResponse {
	return &dto.ProcurementResponse{
		Id:           p.Id,
		TenderNumber: p.TenderNumber,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Vendor:       p.Vendor,
		Amount:       p.Amount,
		Status:       string(p.Status),
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
	}
}
