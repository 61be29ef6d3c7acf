package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type recordingMailer struct {
	alerts []string
}

func (m *recordingMailer) SendFraudAlert(toEmail, severity, description, paymentNumber string) error {
	m.alerts = append(m.alerts, severity)
	return nil
}

func (m *recordingMailer) SendPaymentReceipt(toEmail, paymentNumber, amount, payee string) error {
	return nil
}

func newFraudFixture() (*fraudService, *fakeUow, *recordingPublisher, *recordingMailer) {
	uow := newFakeUow()
	publisher := &recordingPublisher{}
	mail := &recordingMailer{}
	svc := &fraudService{
		uowFactory: &fakeFactory{uow: uow},
		publisher:  publisher,
		mailer:     mail,
		alertEmail: "finance-alerts@example.com",
		logger:     nopLogger{},
	}
	return svc, uow, publisher, mail
}

func settledMessage(t *testing.T, amount string, paymentId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(PaymentSettledMessage{
		PaymentId: paymentId,
		Payee:     "Acme Supplies",
		Amount:    decimal.RequireFromString(amount),
		Status:    "completed",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestHandleSettledRaisesAlerts(t *testing.T) {
	svc, uow, publisher, mail := newFraudFixture()
	paymentId := uuid.New()

	// 15000 trips the high value rule and is a round number.
	if err := svc.handleSettled(settledMessage(t, "15000.00", paymentId)); err != nil {
		t.Fatalf("handleSettled error: %v", err)
	}

	if len(uow.fraudAlerts.rows) != 2 {
		t.Fatalf("stored %d alerts, want 2", len(uow.fraudAlerts.rows))
	}
	for _, a := range uow.fraudAlerts.rows {
		if a.Status != entity.FraudAlertStatusOpen {
			t.Errorf("alert status = %s, want open", a.Status)
		}
		if a.PaymentId == nil || *a.PaymentId != paymentId {
			t.Errorf("alert payment id = %v, want %s", a.PaymentId, paymentId)
		}
	}

	if len(publisher.published) != 2 {
		t.Errorf("published %d events, want 2", len(publisher.published))
	}
	for _, e := range publisher.published {
		if e.EventType() != events.TypeFraudAlertRaised {
			t.Errorf("event type = %s, want FRAUD_ALERT_RAISED", e.EventType())
		}
	}

	// Only the high severity alert mails the finance desk.
	if len(mail.alerts) != 1 || mail.alerts[0] != "high" {
		t.Errorf("mailed severities = %v, want [high]", mail.alerts)
	}
}

func TestHandleSettledCleanPayment(t *testing.T) {
	svc, uow, publisher, mail := newFraudFixture()

	if err := svc.handleSettled(settledMessage(t, "423.17", uuid.New())); err != nil {
		t.Fatalf("handleSettled error: %v", err)
	}

	if len(uow.fraudAlerts.rows) != 0 || len(publisher.published) != 0 || len(mail.alerts) != 0 {
		t.Error("clean payment must not raise alerts")
	}
}

func TestHandleSettledVelocity(t *testing.T) {
	svc, uow, _, _ := newFraudFixture()
	uow.payments.recentSamePayee = 4

	if err := svc.handleSettled(settledMessage(t, "99.99", uuid.New())); err != nil {
		t.Fatalf("handleSettled error: %v", err)
	}

	if len(uow.fraudAlerts.rows) != 1 {
		t.Fatalf("stored %d alerts, want 1", len(uow.fraudAlerts.rows))
	}
	for _, a := range uow.fraudAlerts.rows {
		if a.Severity != "medium" {
			t.Errorf("severity = %s, want medium", a.Severity)
		}
	}
}

func TestHandleSettledMalformedPayloadDropped(t *testing.T) {
	svc, uow, _, _ := newFraudFixture()

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	if err := svc.handleSettled(msg); err != nil {
		t.Fatalf("malformed payload should be dropped, got error: %v", err)
	}
	if len(uow.fraudAlerts.rows) != 0 {
		t.Error("no alerts expected for malformed payload")
	}
}

func TestReviewAlert(t *testing.T) {
	svc, uow, _, _ := newFraudFixture()
	reviewer := uuid.New()

	alert := &entity.FraudAlert{
		Id:          uuid.New(),
		Severity:    "high",
		Description: "High value transaction detected",
		Status:      entity.FraudAlertStatusOpen,
	}
	uow.fraudAlerts.rows[alert.Id] = alert

	res, err := svc.ReviewAlert(context.Background(), alert.Id, reviewer, &dto.ReviewFraudAlertRequest{Status: "dismissed"})
	if err != nil {
		t.Fatalf("ReviewAlert error: %v", err)
	}
	if res.Status != "dismissed" {
		t.Errorf("Status = %q, want dismissed", res.Status)
	}
	if res.ReviewedBy == nil || *res.ReviewedBy != reviewer {
		t.Errorf("ReviewedBy = %v, want the reviewer", res.ReviewedBy)
	}
	if len(uow.audits.logs) != 1 {
		t.Errorf("audit rows = %d, want 1", len(uow.audits.logs))
	}

	// Alerts are reviewed once.
	_, err = svc.ReviewAlert(context.Background(), alert.Id, reviewer, &dto.ReviewFraudAlertRequest{Status: "reviewed"})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("second review error = %v, want ErrInvalidState", err)
	}
}
