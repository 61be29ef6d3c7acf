package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers translate these into
// HTTP statuses in one place (serverutils.ErrorHandlerMiddleware).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotFound       = errors.New("user role not found or invalid")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrValidation         = errors.New("validation failed")
)

// PermissionDeniedError carries the permission that was missing so the
// response can name it. Distinct from ErrRoleNotFound: both map to 403 but
// with different messages.
type PermissionDeniedError struct {
	Resource string
	Action   string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("not enough permissions. Required: %s:%s", e.Resource, e.Action)
}

// PermissionDenied builds a denial for the given resource:action pair.
func PermissionDenied(resource, action string) *PermissionDeniedError {
	return &PermissionDeniedError{Resource: resource, Action: action}
}

// IsPermissionDenied reports whether err is a permission denial and returns it.
func IsPermissionDenied(err error) (*PermissionDeniedError, bool) {
	var pd *PermissionDeniedError
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}
