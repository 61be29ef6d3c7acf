package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	PayeeName     string          `gorm:"type:varchar(255);not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Method        string          `gorm:"type:varchar(50);not null"`
	Status        string          `gorm:"type:varchar(50);not null;index;default:'pending_approval'"`
	Description   string          `gorm:"type:text"`
	ScheduledDate *time.Time
	ProcessedAt   *time.Time
	TransactionId *string   `gorm:"type:varchar(100)"`
	FailureReason *string   `gorm:"type:text"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

type FraudAlert struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentId   *uuid.UUID `gorm:"type:uuid;index"`
	Severity    string     `gorm:"type:varchar(20);not null;index"`
	Description string     `gorm:"type:text;not null"`
	Status      string     `gorm:"type:varchar(20);not null;index;default:'open'"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (FraudAlert) TableName() string {
	return "fraud_alerts"
}
