package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoleRequest struct {
	Name          string      `json:"name" validate:"required,min=2,max=100"`
	Description   string      `json:"description"`
	PermissionIds []uuid.UUID `json:"permission_ids"`
}

type UpdateRoleRequest struct {
	Name          *string      `json:"name" validate:"omitempty,min=2,max=100"`
	Description   *string      `json:"description"`
	PermissionIds *[]uuid.UUID `json:"permission_ids"`
}

type RoleResponse struct {
	Id          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
}

type PermissionResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
}

type AssignRoleRequest struct {
	RoleId uuid.UUID `json:"role_id" validate:"required"`
}
