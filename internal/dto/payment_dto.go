package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	PayeeName     string          `json:"payee_name" validate:"required,min=2,max=255"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	Method        string          `json:"payment_method" validate:"required,oneof=bank_transfer airtel_money tnm_mobile check"`
	Description   string          `json:"description"`
	ScheduledDate *time.Time      `json:"scheduled_date"`
}

type UpdatePaymentRequest struct {
	PayeeName     *string          `json:"payee_name" validate:"omitempty,min=2,max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   *string          `json:"description"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
}

type PaymentResponse struct {
	Id            uuid.UUID       `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	PayeeName     string          `json:"payee_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	ScheduledDate *time.Time      `json:"scheduled_date,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	TransactionId *string         `json:"transaction_id,omitempty"`
	FailureReason *string         `json:"failure_reason,omitempty"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int64             `json:"total"`
}

type ProcessPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Message string          `json:"message"`
}

type ListPaymentsQuery struct {
	Status string `query:"status"`
	Payee  string `query:"payee"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
