package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/pkg/events"
	"procureflow-be/pkg/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// stubAdapter lets tests script the settlement outcome.
type stubAdapter struct {
	result *settlement.Result
	err    error
}

func (a *stubAdapter) Process(ctx context.Context, req settlement.Request) (*settlement.Result, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

func (a *stubAdapter) CheckStatus(ctx context.Context, transactionID string) (*settlement.Status, error) {
	return &settlement.Status{TransactionID: transactionID, Status: "completed"}, nil
}

func (a *stubAdapter) GetBalance(ctx context.Context) (*settlement.Balance, error) {
	return &settlement.Balance{Balance: decimal.NewFromInt(100), Currency: "USD"}, nil
}

func newPaymentFixture(adapter settlement.Adapter) (IPaymentService, *fakeUow, *recordingPublisher) {
	uow := newFakeUow()
	registry := settlement.NewRegistry()
	if adapter != nil {
		registry.Register("bank_transfer", adapter)
	}
	publisher := &recordingPublisher{}
	svc := NewPaymentService(&fakeFactory{uow: uow}, registry, publisher, nil, nopLogger{})
	return svc, uow, publisher
}

func seedPayment(uow *fakeUow, status entity.PaymentStatus) *entity.Payment {
	p := &entity.Payment{
		Id:            uuid.New(),
		PaymentNumber: "PAY-2026-0001",
		PayeeName:     "Acme Supplies",
		Amount:        decimal.RequireFromString("1500.00"),
		Currency:      "USD",
		Method:        entity.PaymentMethodBankTransfer,
		Status:        status,
		CreatedBy:     uuid.New(),
	}
	uow.payments.payments[p.Id] = p
	return p
}

func TestPaymentCreate(t *testing.T) {
	svc, uow, _ := newPaymentFixture(nil)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreatePaymentRequest{
		PayeeName: "Acme Supplies",
		Amount:    decimal.RequireFromString("1500.00"),
		Method:    "bank_transfer",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if !strings.HasPrefix(res.PaymentNumber, "PAY-") || !strings.HasSuffix(res.PaymentNumber, "-0001") {
		t.Errorf("PaymentNumber = %q, want PAY-<year>-0001", res.PaymentNumber)
	}
	if res.Status != "pending_approval" {
		t.Errorf("Status = %q, want pending_approval", res.Status)
	}
	if res.Currency != "USD" {
		t.Errorf("Currency = %q, want USD default", res.Currency)
	}
	if len(uow.audits.logs) != 1 || uow.audits.logs[0].Action != entity.AuditActionCreate {
		t.Errorf("expected one create audit row, got %+v", uow.audits.logs)
	}
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	svc, uow, _ := newPaymentFixture(nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreatePaymentRequest{
		PayeeName: "Acme Supplies",
		Amount:    decimal.Zero,
		Method:    "bank_transfer",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if len(uow.payments.payments) != 0 {
		t.Error("no payment row should be written")
	}
}

func TestPaymentApprove(t *testing.T) {
	svc, uow, publisher := newPaymentFixture(nil)
	p := seedPayment(uow, entity.PaymentStatusPendingApproval)

	res, err := svc.Approve(context.Background(), p.Id, uuid.New())
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if res.Status != "scheduled" {
		t.Errorf("Status = %q, want scheduled", res.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].EventType() != events.TypePaymentApproved {
		t.Errorf("expected one PAYMENT_APPROVED event, got %+v", publisher.published)
	}

	// Second approval must fail: the payment is no longer pending.
	if _, err := svc.Approve(context.Background(), p.Id, uuid.New()); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("second Approve error = %v, want ErrInvalidState", err)
	}
}

func TestPaymentProcessCompleted(t *testing.T) {
	adapter := &stubAdapter{result: &settlement.Result{
		Success:       true,
		TransactionID: "BANK-TEST01",
		Message:       "ok",
	}}
	svc, uow, publisher := newPaymentFixture(adapter)
	p := seedPayment(uow, entity.PaymentStatusScheduled)

	res, err := svc.Process(context.Background(), p.Id, uuid.New())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if res.Payment.Status != "completed" {
		t.Errorf("Status = %q, want completed", res.Payment.Status)
	}
	if res.Payment.TransactionId == nil || *res.Payment.TransactionId != "BANK-TEST01" {
		t.Errorf("TransactionId = %v, want BANK-TEST01", res.Payment.TransactionId)
	}
	if uow.committed != 1 {
		t.Errorf("committed = %d, want 1", uow.committed)
	}
	if len(uow.audits.logs) != 1 || uow.audits.logs[0].Action != entity.AuditActionProcess {
		t.Errorf("expected one process audit row, got %+v", uow.audits.logs)
	}
	if len(publisher.published) != 1 || publisher.published[0].EventType() != events.TypePaymentCompleted {
		t.Errorf("expected PAYMENT_COMPLETED event, got %+v", publisher.published)
	}
}

func TestPaymentProcessFailedSettlement(t *testing.T) {
	adapter := &stubAdapter{result: &settlement.Result{
		Success: false,
		Message: "insufficient funds on settlement account",
	}}
	svc, uow, publisher := newPaymentFixture(adapter)
	p := seedPayment(uow, entity.PaymentStatusScheduled)

	res, err := svc.Process(context.Background(), p.Id, uuid.New())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if res.Payment.Status != "failed" {
		t.Errorf("Status = %q, want failed", res.Payment.Status)
	}
	if res.Payment.FailureReason == nil || *res.Payment.FailureReason != "insufficient funds on settlement account" {
		t.Errorf("FailureReason = %v, want the adapter message", res.Payment.FailureReason)
	}
	if len(publisher.published) != 1 || publisher.published[0].EventType() != events.TypePaymentFailed {
		t.Errorf("expected PAYMENT_FAILED event, got %+v", publisher.published)
	}
}

func TestPaymentProcessUnsupportedMethodLeavesNoTrace(t *testing.T) {
	// Registry is empty: bank_transfer has no adapter.
	svc, uow, publisher := newPaymentFixture(nil)
	p := seedPayment(uow, entity.PaymentStatusScheduled)

	_, err := svc.Process(context.Background(), p.Id, uuid.New())
	if !errors.Is(err, settlement.ErrUnsupportedMethod) {
		t.Fatalf("error = %v, want ErrUnsupportedMethod", err)
	}

	if got := uow.payments.payments[p.Id].Status; got != entity.PaymentStatusScheduled {
		t.Errorf("status = %s, want untouched scheduled", got)
	}
	if uow.payments.updates != 0 {
		t.Errorf("updates = %d, want 0", uow.payments.updates)
	}
	if len(uow.audits.logs) != 0 {
		t.Errorf("audit rows = %d, want 0", len(uow.audits.logs))
	}
	if len(publisher.published) != 0 {
		t.Errorf("events = %d, want 0", len(publisher.published))
	}
}

func TestPaymentProcessWithoutPriorApproval(t *testing.T) {
	// Approval is optional; settlement may start straight from pending_approval.
	adapter := &stubAdapter{result: &settlement.Result{Success: true, TransactionID: "BANK-X"}}
	svc, uow, _ := newPaymentFixture(adapter)
	p := seedPayment(uow, entity.PaymentStatusPendingApproval)

	res, err := svc.Process(context.Background(), p.Id, uuid.New())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if res.Payment.Status != "completed" {
		t.Errorf("Status = %q, want completed", res.Payment.Status)
	}
}

func TestPaymentProcessRejectsTerminalStates(t *testing.T) {
	adapter := &stubAdapter{result: &settlement.Result{Success: true, TransactionID: "BANK-X"}}
	svc, uow, _ := newPaymentFixture(adapter)
	p := seedPayment(uow, entity.PaymentStatusCompleted)

	_, err := svc.Process(context.Background(), p.Id, uuid.New())
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
	if uow.rolledBack == 0 {
		t.Error("transaction should have been rolled back")
	}
}

func TestPaymentCancel(t *testing.T) {
	svc, uow, _ := newPaymentFixture(nil)
	p := seedPayment(uow, entity.PaymentStatusScheduled)

	res, err := svc.Cancel(context.Background(), p.Id, uuid.New())
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if res.Status != "cancelled" {
		t.Errorf("Status = %q, want cancelled", res.Status)
	}

	// Completed payments cannot be cancelled.
	done := seedPayment(uow, entity.PaymentStatusCompleted)
	if _, err := svc.Cancel(context.Background(), done.Id, uuid.New()); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("Cancel(completed) error = %v, want ErrInvalidState", err)
	}
}

func TestPaymentGetMissing(t *testing.T) {
	svc, _, _ := newPaymentFixture(nil)

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
