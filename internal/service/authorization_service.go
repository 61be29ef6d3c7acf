package service

import (
	"context"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IAuthorizationService answers "may this user perform resource:action".
// It satisfies serverutils.PermissionChecker so controllers can mount it as
// route middleware.
type IAuthorizationService interface {
	Check(ctx context.Context, userID uuid.UUID, resource, action string) error
	ListPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type authorizationService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuthorizationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuthorizationService {
	return &authorizationService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *authorizationService) Check(ctx context.Context, userID uuid.UUID, resource, action string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOneWithRole(ctx, specification.ByID{ID: userID})
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrNotFound
	}

	if err := decide(user, resource, action); err != nil {
		s.logger.Warn("Authorization", "Permission denied", map[string]interface{}{
			"user_id":  userID.String(),
			"resource": resource,
			"action":   action,
		})
		return err
	}
	return nil
}

func (s *authorizationService) ListPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOneWithRole(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}

	if user.IsSuperuser {
		perms, err := uow.PermissionRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
		if err != nil {
			return nil, err
		}
		names := make([]string, len(perms))
		for i, p := range perms {
			names[i] = p.Name
		}
		return names, nil
	}

	if user.Role == nil {
		return []string{}, nil
	}
	names := make([]string, len(user.Role.Permissions))
	for i, p := range user.Role.Permissions {
		names[i] = p.Name
	}
	return names, nil
}

// decide is the pure core of the permission check. Superusers bypass
// everything, including the active flag; everyone else needs an active
// account and a role granting resource:action.
func decide(user *entity.User, resource, action string) error {
	if user.IsSuperuser {
		return nil
	}
	if !user.IsActive {
		return apperr.PermissionDenied(resource, action)
	}
	if user.Role == nil {
		return apperr.ErrRoleNotFound
	}
	if !user.Role.HasPermission(resource, action) {
		return apperr.PermissionDenied(resource, action)
	}
	return nil
}
