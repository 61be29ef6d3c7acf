package model

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(20);not null;default:'info'"`
	Read      bool      `gorm:"default:false;index"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Notification) TableName() string {
	return "notifications"
}
