package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is append-only: rows are created by services and never updated
// or deleted through the API.
type AuditLog struct {
	Id           uuid.UUID
	UserId       *uuid.UUID
	Action       string
	ResourceType string
	ResourceId   *uuid.UUID
	Changes      map[string]interface{}
	IpAddress    string
	CreatedAt    time.Time
}

// Audit action codes.
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
	AuditActionProcess = "process"
	AuditActionLogin   = "login"
)
