package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	Id           uuid.UUID              `json:"id"`
	UserId       *uuid.UUID             `json:"user_id,omitempty"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceId   *uuid.UUID             `json:"resource_id,omitempty"`
	Changes      map[string]interface{} `json:"changes,omitempty"`
	IpAddress    string                 `json:"ip_address,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}

type ListAuditLogsQuery struct {
	Action       string `query:"action"`
	ResourceType string `query:"resource_type"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}
