package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	IsActive     bool
	// IsSuperuser bypasses all permission checks.
	IsSuperuser bool
	RoleId      *uuid.UUID
	Role        *Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Role struct {
	Id          uuid.UUID
	Name        string
	Description string
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission reports whether the role grants resource:action.
func (r *Role) HasPermission(resource, action string) bool {
	for _, p := range r.Permissions {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}

// Permission is a single resource:action grant. Name is the canonical
// "resource:action" string and is unique.
type Permission struct {
	Id          uuid.UUID
	Name        string
	Resource    string
	Action      string
	Description string
	CreatedAt   time.Time
}
