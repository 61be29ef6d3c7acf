package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment links an uploaded file to any resource by (type, id).
type Attachment struct {
	Id           uuid.UUID
	FileName     string
	StoragePath  string
	ContentType  string
	SizeBytes    int64
	ResourceType string
	ResourceId   uuid.UUID
	UploadedBy   uuid.UUID
	CreatedAt    time.Time
}
