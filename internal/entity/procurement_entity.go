package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProcurementStatus string

const (
	ProcurementStatusDraft     ProcurementStatus = "draft"
	ProcurementStatusTendering ProcurementStatus = "tendering"
	ProcurementStatusAwarded   ProcurementStatus = "awarded"
	ProcurementStatusCompleted ProcurementStatus = "completed"
	ProcurementStatusCancelled ProcurementStatus = "cancelled"
)

type Procurement struct {
	Id           uuid.UUID
	TenderNumber string
	Title        string
	Description  string
	Category     string
	Vendor       string
	Amount       decimal.Decimal
	Status       ProcurementStatus
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PurchaseRequestStatus string

const (
	PurchaseRequestStatusDraft    PurchaseRequestStatus = "draft"
	PurchaseRequestStatusPending  PurchaseRequestStatus = "pending"
	PurchaseRequestStatusApproved PurchaseRequestStatus = "approved"
	PurchaseRequestStatusRejected PurchaseRequestStatus = "rejected"
)

type PurchaseRequest struct {
	Id            uuid.UUID
	RequestNumber string
	Title         string
	Description   string
	Justification string
	Amount        decimal.Decimal
	Status        PurchaseRequestStatus
	RequestedBy   uuid.UUID
	DecidedBy     *uuid.UUID
	DecidedAt     *time.Time
	DecisionNote  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Revenue struct {
	Id            uuid.UUID
	RevenueNumber string
	Source        string
	Category      string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	ReceivedDate  time.Time
	RecordedBy    uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
