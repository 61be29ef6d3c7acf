package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	FullName string     `json:"full_name" validate:"required,min=2,max=255"`
	RoleId   *uuid.UUID `json:"role_id"`
}

type UpdateUserRequest struct {
	FullName *string    `json:"full_name" validate:"omitempty,min=2,max=255"`
	RoleId   *uuid.UUID `json:"role_id"`
	IsActive *bool      `json:"is_active"`
}

type ListUsersQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}
