package contract

import (
	"context"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Role, error)
	// FindByName loads a role with its permission set.
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Role, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// ReplacePermissions swaps the role's permission set atomically.
	ReplacePermissions(ctx context.Context, roleId uuid.UUID, permissionIds []uuid.UUID) error
	// CountUsers returns how many users currently hold the role.
	CountUsers(ctx context.Context, roleId uuid.UUID) (int64, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *entity.Permission) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Permission, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Permission, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
