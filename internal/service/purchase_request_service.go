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
	"procureflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IPurchaseRequestService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseRequestResponse, error)
	List(ctx context.Context, status string, limit, offset int) (*dto.PurchaseRequestListResponse, error)
	Submit(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PurchaseRequestResponse, error)
	Decide(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.DecidePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error)
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}

type purchaseRequestService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	publisher  IEventPublisher
	logger     logger.ILogger
}

func NewPurchaseRequestService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, publisher IEventPublisher, log logger.ILogger) IPurchaseRequestService {
	return &purchaseRequestService{
		uowFactory: uowFactory,
		audit:      audit,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *purchaseRequestService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	year := time.Now().Year()
	seq, err := uow.SequenceRepository().Next(ctx, "PR", year)
	if err != nil {
		return nil, err
	}

	request := &entity.PurchaseRequest{
		Id:            uuid.New(),
		RequestNumber: fmt.Sprintf("PR-%d-%04d", year, seq),
		Title:         req.Title,
		Description:   req.Description,
		Justification: req.Justification,
		Amount:        req.Amount,
		Status:        entity.PurchaseRequestStatusDraft,
		RequestedBy:   userId,
	}
	if err := uow.PurchaseRequestRepository().Create(ctx, request); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionCreate, "purchase_request", &request.Id, map[string]interface{}{
		"request_number": request.RequestNumber,
		"title":          request.Title,
	})
	return toPurchaseRequestResponse(request), nil
}

func (s *purchaseRequestService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	request, err := uow.PurchaseRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperr.ErrNotFound
	}
	return toPurchaseRequestResponse(request), nil
}

func (s *purchaseRequestService) List(ctx context.Context, status string, limit, offset int) (*dto.PurchaseRequestListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	total, err := uow.PurchaseRequestRepository().Count(ctx, specs...)
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

	items, err := uow.PurchaseRequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.PurchaseRequestListResponse{
		Requests: make([]dto.PurchaseRequestResponse, len(items)),
		Total:    total,
	}
	for i, r := range items {
		res.Requests[i] = *toPurchaseRequestResponse(r)
	}
	return res, nil
}

func (s *purchaseRequestService) Submit(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PurchaseRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.PurchaseRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperr.ErrNotFound
	}
	// Only the requester may submit their own draft.
	if request.RequestedBy != userId {
		return nil, apperr.PermissionDenied("purchase_requests", "update")
	}
	if request.Status != entity.PurchaseRequestStatusDraft {
		return nil, fmt.Errorf("%w: request is %s", apperr.ErrInvalidState, request.Status)
	}

	request.Status = entity.PurchaseRequestStatusPending
	if err := uow.PurchaseRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionUpdate, "purchase_request", &request.Id, map[string]interface{}{
		"status": map[string]interface{}{"from": "draft", "to": "pending"},
	})
	s.publishEvent(ctx, events.TypePurchaseSubmitted, request, userId)

	return toPurchaseRequestResponse(request), nil
}

func (s *purchaseRequestService) Decide(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.DecidePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.PurchaseRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperr.ErrNotFound
	}
	if request.Status != entity.PurchaseRequestStatusPending {
		return nil, fmt.Errorf("%w: request is %s", apperr.ErrInvalidState, request.Status)
	}
	// Requesters cannot decide their own requests.
	if request.RequestedBy == userId {
		return nil, apperr.PermissionDenied("purchase_requests", "approve")
	}

	now := time.Now()
	action := entity.AuditActionApprove
	request.Status = entity.PurchaseRequestStatusApproved
	if !req.Approve {
		action = entity.AuditActionReject
		request.Status = entity.PurchaseRequestStatusRejected
	}
	request.DecidedBy = &userId
	request.DecidedAt = &now
	request.DecisionNote = req.Note

	if err := uow.PurchaseRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &userId, action, "purchase_request", &request.Id, map[string]interface{}{
		"status": string(request.Status),
		"note":   req.Note,
	})
	s.publishEvent(ctx, events.TypePurchaseDecided, request, userId)

	return toPurchaseRequestResponse(request), nil
}

func (s *purchaseRequestService) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.PurchaseRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperr.ErrNotFound
	}
	if request.Status != entity.PurchaseRequestStatusDraft {
		return fmt.Errorf("%w: only drafts can be deleted", apperr.ErrInvalidState)
	}

	if err := uow.PurchaseRequestRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionDelete, "purchase_request", &id, nil)
	return nil
}

func (s *purchaseRequestService) publishEvent(ctx context.Context, eventType string, request *entity.PurchaseRequest, actorId uuid.UUID) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.NewEvent(eventType, map[string]interface{}{
		"user_id":        request.RequestedBy.String(),
		"actor_id":       actorId.String(),
		"request_id":     request.Id.String(),
		"request_number": request.RequestNumber,
		"title":          request.Title,
		"status":         string(request.Status),
	}))
	if err != nil {
		s.logger.Error("PurchaseRequest", "Failed to publish event", map[string]interface{}{
			"error": err,
			"type":  eventType,
		})
	}
}

func toPurchaseRequestResponse(r *entity.PurchaseRequest) *dto.PurchaseRequestResponse {
	return &dto.PurchaseRequestResponse{
		Id:            r.Id,
		RequestNumber: r.RequestNumber,
		Title:         r.Title,
		Description:   r.Description,
		Justification: r.Justification,
		Amount:        r.Amount,
		Status:        string(r.Status),
		RequestedBy:   r.RequestedBy,
		DecidedBy:     r.DecidedBy,
		DecidedAt:     r.DecidedAt,
		DecisionNote:  r.DecisionNote,
		CreatedAt:     r.CreatedAt,
	}
}
