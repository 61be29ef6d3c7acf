package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Message   string
	Type      NotificationType
	Read      bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
