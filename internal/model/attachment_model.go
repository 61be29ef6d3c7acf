package model

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName     string    `gorm:"type:varchar(255);not null"`
	StoragePath  string    `gorm:"type:text;not null"`
	ContentType  string    `gorm:"type:varchar(100)"`
	SizeBytes    int64     `gorm:"not null"`
	ResourceType string    `gorm:"type:varchar(50);not null;index:idx_attachments_resource"`
	ResourceId   uuid.UUID `gorm:"type:uuid;not null;index:idx_attachments_resource"`
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
