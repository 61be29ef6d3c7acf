package service

import (
	"context"
	"fmt"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRoleService interface {
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RoleResponse, error)
	List(ctx context.Context) ([]dto.RoleResponse, error)
	Update(ctx context.Context, id uuid.UUID, actorId uuid.UUID, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorId uuid.UUID) error
	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
}

type roleService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	logger     logger.ILogger
}

func NewRoleService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, log logger.ILogger) IRoleService {
	return &roleService{
		uowFactory: uowFactory,
		audit:      audit,
		logger:     log,
	}
}

func (s *roleService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.RoleRepository().FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrAlreadyExists
	}

	role := &entity.Role{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := uow.RoleRepository().Create(ctx, role); err != nil {
		return nil, err
	}
	if len(req.PermissionIds) > 0 {
		if err := uow.RoleRepository().ReplacePermissions(ctx, role.Id, req.PermissionIds); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionCreate, "role", &role.Id, map[string]interface{}{
		"name": role.Name,
	})
	return s.Get(ctx, role.Id)
}

func (s *roleService) Get(ctx context.Context, id uuid.UUID) (*dto.RoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.ErrNotFound
	}
	return toRoleResponse(role), nil
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	roles, err := uow.RoleRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}
	res := make([]dto.RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = *toRoleResponse(r)
	}
	return res, nil
}

func (s *roleService) Update(ctx context.Context, id uuid.UUID, actorId uuid.UUID, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.ErrNotFound
	}

	changes := map[string]interface{}{}
	if req.Name != nil && *req.Name != role.Name {
		other, err := uow.RoleRepository().FindByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apperr.ErrAlreadyExists
		}
		changes["name"] = map[string]interface{}{"from": role.Name, "to": *req.Name}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if err := uow.RoleRepository().Update(ctx, role); err != nil {
		return nil, err
	}

	if req.PermissionIds != nil {
		changes["permissions"] = len(*req.PermissionIds)
		if err := uow.RoleRepository().ReplacePermissions(ctx, role.Id, *req.PermissionIds); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionUpdate, "role", &role.Id, changes)
	return s.Get(ctx, role.Id)
}

func (s *roleService) Delete(ctx context.Context, id uuid.UUID, actorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if role == nil {
		return apperr.ErrNotFound
	}

	// A role still held by users cannot be removed.
	users, err := uow.RoleRepository().CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return fmt.Errorf("%w: role is assigned to %d user(s)", apperr.ErrInvalidState, users)
	}

	if err := uow.RoleRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionDelete, "role", &id, map[string]interface{}{
		"name": role.Name,
	})
	return nil
}

func (s *roleService) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	perms, err := uow.PermissionRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}
	res := make([]dto.PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = dto.PermissionResponse{
			Id:          p.Id,
			Name:        p.Name,
			Resource:    p.Resource,
			Action:      p.Action,
			Description: p.Description,
		}
	}
	return res, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	perms := make([]dto.PermissionResponse, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = dto.PermissionResponse{
			Id:          p.Id,
			Name:        p.Name,
			Resource:    p.Resource,
			Action:      p.Action,
			Description: p.Description,
		}
	}
	return &dto.RoleResponse{
		Id:          r.Id,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
	}
}
