package service

import (
	"context"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAuditService interface {
	// Record appends an audit row outside any caller transaction. Services
	// that need the row to commit atomically with their mutation write
	// through their own unit of work instead.
	Record(ctx context.Context, userId *uuid.UUID, action, resourceType string, resourceId *uuid.UUID, changes map[string]interface{})
	List(ctx context.Context, query *dto.ListAuditLogsQuery) (*dto.AuditLogListResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *auditService) Record(ctx context.Context, userId *uuid.UUID, action, resourceType string, resourceId *uuid.UUID, changes map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := &entity.AuditLog{
		Id:           uuid.New(),
		UserId:       userId,
		Action:       action,
		ResourceType: resourceType,
		ResourceId:   resourceId,
		Changes:      changes,
	}
	if err := uow.AuditLogRepository().Create(ctx, log); err != nil {
		// Audit failures must not fail the business operation; log and move on.
		s.logger.Error("Audit", "Failed to record audit log", map[string]interface{}{
			"error":    err,
			"action":   action,
			"resource": resourceType,
		})
	}
}

func (s *auditService) List(ctx context.Context, query *dto.ListAuditLogsQuery) (*dto.AuditLogListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if query.Action != "" {
		specs = append(specs, specification.Filter("action", query.Action))
	}
	if query.ResourceType != "" {
		specs = append(specs, specification.Filter("resource_type", query.ResourceType))
	}

	total, err := uow.AuditLogRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	)

	logs, err := uow.AuditLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.AuditLogListResponse{
		Logs:  make([]dto.AuditLogResponse, len(logs)),
		Total: total,
	}
	for i, l := range logs {
		res.Logs[i] = dto.AuditLogResponse{
			Id:           l.Id,
			UserId:       l.UserId,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceId:   l.ResourceId,
			Changes:      l.Changes,
			IpAddress:    l.IpAddress,
			CreatedAt:    l.CreatedAt,
		}
	}
	return res, nil
}
