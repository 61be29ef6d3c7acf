package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       *uuid.UUID     `gorm:"type:uuid;index"`
	Action       string         `gorm:"type:varchar(50);not null;index"`
	ResourceType string         `gorm:"type:varchar(50);not null;index"`
	ResourceId   *uuid.UUID     `gorm:"type:uuid;index"`
	Changes      datatypes.JSON `gorm:"type:jsonb"`
	IpAddress    string         `gorm:"type:varchar(45)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
