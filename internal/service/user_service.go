package service

import (
	"context"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, query *dto.ListUsersQuery) (*dto.UserListResponse, error)
	Update(ctx context.Context, id uuid.UUID, actorId uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorId uuid.UUID) error
	AssignRole(ctx context.Context, id uuid.UUID, actorId uuid.UUID, roleId uuid.UUID) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		audit:      audit,
		logger:     log,
	}
}

func (s *userService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrAlreadyExists
	}

	if req.RoleId != nil {
		role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: *req.RoleId})
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperr.ErrNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		IsActive:     true,
		RoleId:       req.RoleId,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionCreate, "user", &user.Id, map[string]interface{}{
		"email": user.Email,
	})
	return toUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOneWithRole(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, query *dto.ListUsersQuery) (*dto.UserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if query.Search != "" {
		specs = append(specs, specification.Search{Field: "email", Query: query.Search})
	}

	total, err := uow.UserRepository().Count(ctx, specs...)
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

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.UserListResponse{
		Users: make([]dto.UserResponse, len(users)),
		Total: total,
	}
	for i, u := range users {
		res.Users[i] = *toUserResponse(u)
	}
	return res, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, actorId uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}

	changes := map[string]interface{}{}
	if req.FullName != nil {
		changes["full_name"] = map[string]interface{}{"from": user.FullName, "to": *req.FullName}
		user.FullName = *req.FullName
	}
	if req.RoleId != nil {
		role, err := uow.RoleRepository().FindOne(ctx, specification.ByID{ID: *req.RoleId})
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperr.ErrNotFound
		}
		changes["role_id"] = req.RoleId.String()
		user.RoleId = req.RoleId
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
		user.IsActive = *req.IsActive
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionUpdate, "user", &user.Id, changes)
	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID, actorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrNotFound
	}

	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &actorId, entity.AuditActionDelete, "user", &id, map[string]interface{}{
		"email": user.Email,
	})
	return nil
}

func (s *userService) AssignRole(ctx context.Context, id uuid.UUID, actorId uuid.UUID, roleId uuid.UUID) (*dto.UserResponse, error) {
	ra := roleId
	return s.Update(ctx, id, actorId, &dto.UpdateUserRequest{RoleId: &ra})
}
