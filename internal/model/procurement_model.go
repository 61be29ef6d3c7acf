package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Procurement struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenderNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title        string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	Vendor       string          `gorm:"type:varchar(255)"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status       string          `gorm:"type:varchar(50);not null;index;default:'draft'"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (Procurement) TableName() string {
	return "procurements"
}

type PurchaseRequest struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title         string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text"`
	Justification string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(50);not null;index;default:'draft'"`
	RequestedBy   uuid.UUID       `gorm:"type:uuid;not null;index"`
	DecidedBy     *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt     *time.Time
	DecisionNote  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

type Revenue struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevenueNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Source        string          `gorm:"type:varchar(255);not null"`
	Category      string          `gorm:"type:varchar(100);index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Description   string          `gorm:"type:text"`
	ReceivedDate  time.Time       `gorm:"not null;index"`
	RecordedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Revenue) TableName() string {
	return "revenues"
}
