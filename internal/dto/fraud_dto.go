package dto

import (
	"time"

	"github.com/google/uuid"
)

type FraudAlertResponse struct {
	Id          uuid.UUID  `json:"id"`
	PaymentId   *uuid.UUID `json:"payment_id,omitempty"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type FraudAlertListResponse struct {
	Alerts []FraudAlertResponse `json:"alerts"`
	Total  int64                `json:"total"`
}

type ReviewFraudAlertRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed dismissed"`
}

type ListFraudAlertsQuery struct {
	Severity string `query:"severity"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}
