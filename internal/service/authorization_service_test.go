package service

import (
	"errors"
	"testing"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
)

func roleWith(grants ...[2]string) *entity.Role {
	role := &entity.Role{Name: "tester"}
	for _, g := range grants {
		role.Permissions = append(role.Permissions, entity.Permission{
			Name:     g[0] + ":" + g[1],
			Resource: g[0],
			Action:   g[1],
		})
	}
	return role
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		user       *entity.User
		wantOK     bool
		wantDenied bool
		wantErr    error
	}{
		{
			name:   "superuser bypasses everything",
			user:   &entity.User{IsSuperuser: true, IsActive: false},
			wantOK: true,
		},
		{
			name: "role grants the permission",
			user: &entity.User{
				IsActive: true,
				Role:     roleWith([2]string{"payments", "approve"}),
			},
			wantOK: true,
		},
		{
			name:       "inactive user denied even with role",
			user:       &entity.User{IsActive: false, Role: roleWith([2]string{"payments", "approve"})},
			wantDenied: true,
		},
		{
			name:    "active user without role",
			user:    &entity.User{IsActive: true},
			wantErr: apperr.ErrRoleNotFound,
		},
		{
			name: "role missing the permission",
			user: &entity.User{
				IsActive: true,
				Role:     roleWith([2]string{"payments", "read"}),
			},
			wantDenied: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decide(tt.user, "payments", "approve")

			if tt.wantOK {
				if err != nil {
					t.Fatalf("decide() error = %v, want nil", err)
				}
				return
			}
			if tt.wantDenied {
				if _, ok := apperr.IsPermissionDenied(err); !ok {
					t.Fatalf("decide() error = %v, want PermissionDeniedError", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("decide() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecideDeniedErrorNamesPermission(t *testing.T) {
	user := &entity.User{IsActive: true, Role: roleWith()}

	err := decide(user, "fraud_alerts", "review")
	pd, ok := apperr.IsPermissionDenied(err)
	if !ok {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if pd.Resource != "fraud_alerts" || pd.Action != "review" {
		t.Errorf("denial carries %s:%s, want fraud_alerts:review", pd.Resource, pd.Action)
	}
}
