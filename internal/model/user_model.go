package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string    `gorm:"type:varchar(255)"`
	FullName     string     `gorm:"type:varchar(255);not null"`
	IsActive     bool       `gorm:"default:true"`
	IsSuperuser  bool       `gorm:"default:false"`
	RoleId       *uuid.UUID `gorm:"type:uuid;index"`
	Role         *Role      `gorm:"foreignKey:RoleId"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	Id          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string       `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string       `gorm:"type:text"`
	Permissions []Permission `gorm:"many2many:role_permissions"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

type Permission struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Resource    string    `gorm:"type:varchar(50);not null;index"`
	Action      string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}
