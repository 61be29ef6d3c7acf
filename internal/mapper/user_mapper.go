package mapper

import (
	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		RoleId:       u.RoleId,
		Role:         m.RoleToEntity(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		RoleId:       u.RoleId,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) RoleToEntity(r *model.Role) *entity.Role {
	if r == nil {
		return nil
	}
	perms := make([]entity.Permission, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = *m.PermissionToEntity(&p)
	}
	return &entity.Role{
		Id:          r.Id,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *UserMapper) RoleToModel(r *entity.Role) *model.Role {
	if r == nil {
		return nil
	}
	perms := make([]model.Permission, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = *m.PermissionToModel(&p)
	}
	return &model.Role{
		Id:          r.Id,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *UserMapper) RolesToEntities(roles []*model.Role) []*entity.Role {
	entities := make([]*entity.Role, len(roles))
	for i, r := range roles {
		entities[i] = m.RoleToEntity(r)
	}
	return entities
}

func (m *UserMapper) PermissionToEntity(p *model.Permission) *entity.Permission {
	if p == nil {
		return nil
	}
	return &entity.Permission{
		Id:          p.Id,
		Name:        p.Name,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *UserMapper) PermissionToModel(p *entity.Permission) *model.Permission {
	if p == nil {
		return nil
	}
	return &model.Permission{
		Id:          p.Id,
		Name:        p.Name,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *UserMapper) PermissionsToEntities(perms []*model.Permission) []*entity.Permission {
	entities := make([]*entity.Permission, len(perms))
	for i, p := range perms {
		entities[i] = m.PermissionToEntity(p)
	}
	return entities
}
