package implementation

import (
	"context"
	"errors"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/mapper"
	"procureflow-be/internal/model"
	"procureflow-be/internal/repository/contract"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewRoleRepository(db *gorm.DB) contract.RoleRepository {
	return &RoleRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *RoleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *entity.Role) error {
	modelRole := r.mapper.RoleToModel(role)
	if err := r.db.WithContext(ctx).Create(modelRole).Error; err != nil {
		return err
	}
	*role = *r.mapper.RoleToEntity(modelRole)
	return nil
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *entity.Role) error {
	// Permissions are managed through ReplacePermissions, not Save, so the
	// association is not rewritten on every metadata update.
	return r.db.WithContext(ctx).Model(&model.Role{}).Where("id = ?", role.Id).
		Updates(map[string]interface{}{
			"name":        role.Name,
			"description": role.Description,
		}).Error
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Role{}).Error
}

func (r *RoleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Role, error) {
	var modelRole model.Role
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Permissions"), specs...)

	if err := query.First(&modelRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.RoleToEntity(&modelRole), nil
}

func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.FindOne(ctx, specification.Filter("name", name))
}

func (r *RoleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Role, error) {
	var modelRoles []*model.Role
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Permissions"), specs...)

	if err := query.Find(&modelRoles).Error; err != nil {
		return nil, err
	}

	return r.mapper.RolesToEntities(modelRoles), nil
}

func (r *RoleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Role{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RoleRepositoryImpl) ReplacePermissions(ctx context.Context, roleId uuid.UUID, permissionIds []uuid.UUID) error {
	var perms []model.Permission
	if len(permissionIds) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", permissionIds).Find(&perms).Error; err != nil {
			return err
		}
	}
	role := model.Role{Id: roleId}
	return r.db.WithContext(ctx).Model(&role).Association("Permissions").Replace(perms)
}

func (r *RoleRepositoryImpl) CountUsers(ctx context.Context, roleId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role_id = ?", roleId).Count(&count).Error
	return count, err
}

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewPermissionRepository(db *gorm.DB) contract.PermissionRepository {
	return &PermissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *PermissionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, permission *entity.Permission) error {
	m := r.mapper.PermissionToModel(permission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*permission = *r.mapper.PermissionToEntity(m)
	return nil
}

func (r *PermissionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Permission, error) {
	var m model.Permission
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PermissionToEntity(&m), nil
}

func (r *PermissionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Permission, error) {
	var models []*model.Permission
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.PermissionsToEntities(models), nil
}

func (r *PermissionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Permission{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
