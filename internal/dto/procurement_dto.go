package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProcurementRequest struct {
	Title       string          `json:"title" validate:"required,min=2,max=255"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type UpdateProcurementRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft tendering awarded completed cancelled"`
}

type ProcurementResponse struct {
	Id           uuid.UUID       `json:"id"`
	TenderNumber string          `json:"tender_number"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreatedBy    uuid.UUID       `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ProcurementListResponse struct {
	Procurements []ProcurementResponse `json:"procurements"`
	Total        int64                 `json:"total"`
}

type CreatePurchaseRequestRequest struct {
	Title         string          `json:"title" validate:"required,min=2,max=255"`
	Description   string          `json:"description"`
	Justification string          `json:"justification"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
}

type DecidePurchaseRequestRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type PurchaseRequestResponse struct {
	Id            uuid.UUID       `json:"id"`
	RequestNumber string          `json:"request_number"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Justification string          `json:"justification,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	RequestedBy   uuid.UUID       `json:"requested_by"`
	DecidedBy     *uuid.UUID      `json:"decided_by,omitempty"`
	DecidedAt     *time.Time      `json:"decided_at,omitempty"`
	DecisionNote  string          `json:"decision_note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type PurchaseRequestListResponse struct {
	Requests []PurchaseRequestResponse `json:"requests"`
	Total    int64                     `json:"total"`
}

type CreateRevenueRequest struct {
	Source       string          `json:"source" validate:"required,min=2,max=255"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	Description  string          `json:"description"`
	ReceivedDate time.Time       `json:"received_date" validate:"required"`
}

type RevenueResponse struct {
	Id            uuid.UUID       `json:"id"`
	RevenueNumber string          `json:"revenue_number"`
	Source        string          `json:"source"`
	Category      string          `json:"category,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	ReceivedDate  time.Time       `json:"received_date"`
	RecordedBy    uuid.UUID       `json:"recorded_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

type RevenueListResponse struct {
	Revenues []RevenueResponse `json:"revenues"`
	Total    int64             `json:"total"`
}
