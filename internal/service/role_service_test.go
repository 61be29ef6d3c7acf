package service

import (
	"context"
	"errors"
	"testing"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"

	"github.com/google/uuid"
)

func newRoleFixture() (IRoleService, *fakeUow) {
	uow := newFakeUow()
	svc := NewRoleService(&fakeFactory{uow: uow}, &recordingAudit{}, nopLogger{})
	return svc, uow
}

func seedPermissions(uow *fakeUow, names ...string) []uuid.UUID {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		p := entity.Permission{Id: uuid.New(), Name: name}
		uow.roles.perms[p.Id] = p
		ids[i] = p.Id
	}
	return ids
}

func TestRoleCreateRoundTrip(t *testing.T) {
	svc, uow := newRoleFixture()
	permIds := seedPermissions(uow, "payments:read", "payments:create", "payments:approve")

	created, err := svc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{
		Name:          "finance_officer",
		Description:   "Handles payments",
		PermissionIds: permIds,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.Id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	if len(got.Permissions) != 3 {
		t.Fatalf("permission count = %d, want 3", len(got.Permissions))
	}
	seen := map[uuid.UUID]bool{}
	for _, p := range got.Permissions {
		if seen[p.Id] {
			t.Errorf("duplicate permission %s", p.Id)
		}
		seen[p.Id] = true
	}
	for _, id := range permIds {
		if !seen[id] {
			t.Errorf("permission %s missing from the role", id)
		}
	}
}

func TestRoleCreateDuplicateName(t *testing.T) {
	svc, _ := newRoleFixture()

	if _, err := svc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{Name: "analyst"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{Name: "analyst"})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestRoleUpdateReplacesPermissionSet(t *testing.T) {
	svc, uow := newRoleFixture()
	initial := seedPermissions(uow, "payments:read", "payments:create")
	replacement := seedPermissions(uow, "revenues:read")

	created, err := svc.Create(context.Background(), uuid.New(), &dto.CreateRoleRequest{
		Name:          "clerk",
		PermissionIds: initial,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// The update is a full replacement, not a delta.
	updated, err := svc.Update(context.Background(), created.Id, uuid.New(), &dto.UpdateRoleRequest{
		PermissionIds: &replacement,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(updated.Permissions) != 1 || updated.Permissions[0].Id != replacement[0] {
		t.Errorf("permissions after update = %+v, want only the replacement", updated.Permissions)
	}
}
