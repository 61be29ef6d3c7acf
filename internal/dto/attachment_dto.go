package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponse struct {
	Id           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	ResourceType string    `json:"resource_type"`
	ResourceId   uuid.UUID `json:"resource_id"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}
