package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPendingApproval PaymentStatus = "pending_approval"
	PaymentStatusScheduled       PaymentStatus = "scheduled"
	PaymentStatusProcessing      PaymentStatus = "processing"
	PaymentStatusCompleted       PaymentStatus = "completed"
	PaymentStatusFailed          PaymentStatus = "failed"
	PaymentStatusCancelled       PaymentStatus = "cancelled"

	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodAirtelMoney  PaymentMethod = "airtel_money"
	PaymentMethodTnmMobile    PaymentMethod = "tnm_mobile"
	PaymentMethodCheck        PaymentMethod = "check"
)

// CanProcess reports whether settlement may start from the current status.
// Approval is optional: operators may settle straight from pending_approval.
func (s PaymentStatus) CanProcess() bool {
	return s == PaymentStatusPendingApproval || s == PaymentStatusScheduled
}

type Payment struct {
	Id            uuid.UUID
	PaymentNumber string
	PayeeName     string
	Amount        decimal.Decimal
	Currency      string
	Method        PaymentMethod
	Status        PaymentStatus
	Description   string
	ScheduledDate *time.Time
	ProcessedAt   *time.Time
	TransactionId *string
	FailureReason *string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type FraudAlertStatus string

const (
	FraudAlertStatusOpen      FraudAlertStatus = "open"
	FraudAlertStatusReviewed  FraudAlertStatus = "reviewed"
	FraudAlertStatusDismissed FraudAlertStatus = "dismissed"
)

// FraudAlert records a fired detection rule. PaymentId is nullable: alerts
// survive the deletion of the payment they were raised for.
type FraudAlert struct {
	Id          uuid.UUID
	PaymentId   *uuid.UUID
	Severity    string
	Description string
	Status      FraudAlertStatus
	ReviewedBy  *uuid.UUID
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}
