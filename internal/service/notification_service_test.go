package service

import (
	"context"
	"strings"
	"testing"

	"procureflow-be/internal/entity"
	"procureflow-be/pkg/events"
	"procureflow-be/pkg/settlement"

	"github.com/google/uuid"
)

type recordingDelivery struct {
	sent      map[uuid.UUID][]entity.Notification
	broadcast []entity.Notification
}

func newRecordingDelivery() *recordingDelivery {
	return &recordingDelivery{sent: make(map[uuid.UUID][]entity.Notification)}
}

func (d *recordingDelivery) Send(userID uuid.UUID, n entity.Notification) {
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *recordingDelivery) Broadcast(n entity.Notification) {
	d.broadcast = append(d.broadcast, n)
}

func newNotificationFixture() (*notificationService, *fakeUow, *recordingDelivery) {
	uow := newFakeUow()
	delivery := newRecordingDelivery()
	svc := &notificationService{
		uowFactory: &fakeFactory{uow: uow},
		delivery:   delivery,
		logger:     nopLogger{},
	}
	return svc, uow, delivery
}

func TestHandleEventPersistsAndPushes(t *testing.T) {
	svc, uow, delivery := newNotificationFixture()
	userId := uuid.New()

	err := svc.handleEvent(context.Background(), events.NewEvent(events.TypePaymentCompleted, map[string]interface{}{
		"user_id":        userId.String(),
		"payment_number": "PAY-2026-0042",
		"payee_name":     "Acme Supplies",
	}))
	if err != nil {
		t.Fatalf("handleEvent error: %v", err)
	}

	if len(uow.notifications.rows) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(uow.notifications.rows))
	}
	stored := uow.notifications.rows[0]
	if stored.UserId != userId {
		t.Errorf("UserId = %s, want recipient from payload", stored.UserId)
	}
	want := "Payment PAY-2026-0042 to Acme Supplies settled successfully."
	if stored.Message != want {
		t.Errorf("Message = %q, want %q", stored.Message, want)
	}
	if stored.Type != entity.NotificationTypeSuccess {
		t.Errorf("Type = %s, want success", stored.Type)
	}

	if len(delivery.sent[userId]) != 1 {
		t.Errorf("pushed %d notifications to user, want 1", len(delivery.sent[userId]))
	}
	if len(delivery.broadcast) != 0 {
		t.Errorf("broadcast %d notifications, want 0", len(delivery.broadcast))
	}
}

func TestHandleEventFraudAlertBroadcastsWithoutRow(t *testing.T) {
	svc, uow, delivery := newNotificationFixture()

	err := svc.handleEvent(context.Background(), events.NewEvent(events.TypeFraudAlertRaised, map[string]interface{}{
		"severity": "high",
		"message":  "High value transaction detected: $15000.00",
	}))
	if err != nil {
		t.Fatalf("handleEvent error: %v", err)
	}

	if len(uow.notifications.rows) != 0 {
		t.Errorf("stored %d notifications, want 0 for broadcast types", len(uow.notifications.rows))
	}
	if len(delivery.broadcast) != 1 {
		t.Fatalf("broadcast %d notifications, want 1", len(delivery.broadcast))
	}
	want := "high severity alert: High value transaction detected: $15000.00"
	if delivery.broadcast[0].Message != want {
		t.Errorf("Message = %q, want %q", delivery.broadcast[0].Message, want)
	}
	if delivery.broadcast[0].Type != entity.NotificationTypeWarning {
		t.Errorf("Type = %s, want warning", delivery.broadcast[0].Type)
	}
}

// Renders the events the payment service actually publishes, so template
// keys and producer payload keys cannot drift apart.
func TestHandleEventRendersPaymentEvents(t *testing.T) {
	tests := []struct {
		name         string
		adapter      *stubAdapter
		wantContains string
	}{
		{
			name:         "settled",
			adapter:      &stubAdapter{result: &settlement.Result{Success: true, TransactionID: "BANK-TEST01", Message: "ok"}},
			wantContains: "to Acme Supplies settled successfully",
		},
		{
			name:         "failed",
			adapter:      &stubAdapter{result: &settlement.Result{Success: false, Message: "insufficient rail balance"}},
			wantContains: "failed: insufficient rail balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paySvc, payUow, publisher := newPaymentFixture(tt.adapter)
			p := seedPayment(payUow, entity.PaymentStatusScheduled)

			if _, err := paySvc.Process(context.Background(), p.Id, uuid.New()); err != nil {
				t.Fatalf("Process error: %v", err)
			}
			if len(publisher.published) != 1 {
				t.Fatalf("published %d events, want 1", len(publisher.published))
			}

			notifSvc, notifUow, _ := newNotificationFixture()
			if err := notifSvc.handleEvent(context.Background(), publisher.published[0]); err != nil {
				t.Fatalf("handleEvent error: %v", err)
			}
			if len(notifUow.notifications.rows) != 1 {
				t.Fatalf("stored %d notifications, want 1", len(notifUow.notifications.rows))
			}

			msg := notifUow.notifications.rows[0].Message
			if strings.ContainsAny(msg, "{}") {
				t.Errorf("Message = %q, contains an unfilled placeholder", msg)
			}
			if !strings.Contains(msg, tt.wantContains) {
				t.Errorf("Message = %q, want it to contain %q", msg, tt.wantContains)
			}
		})
	}
}

func TestHandleEventIgnoresUnknownType(t *testing.T) {
	svc, uow, delivery := newNotificationFixture()

	err := svc.handleEvent(context.Background(), events.NewEvent("SOMETHING_ELSE", map[string]interface{}{
		"user_id": uuid.NewString(),
	}))
	if err != nil {
		t.Fatalf("handleEvent error: %v", err)
	}
	if len(uow.notifications.rows) != 0 || len(delivery.broadcast) != 0 {
		t.Error("unknown event types must be dropped silently")
	}
}

func TestHandleEventMissingRecipient(t *testing.T) {
	svc, uow, _ := newNotificationFixture()

	// Acked, not retried: a malformed payload never resolves on redelivery.
	err := svc.handleEvent(context.Background(), events.NewEvent(events.TypePaymentCompleted, map[string]interface{}{
		"payment_number": "PAY-2026-0042",
	}))
	if err != nil {
		t.Fatalf("handleEvent error: %v", err)
	}
	if len(uow.notifications.rows) != 0 {
		t.Error("no row should be written without a recipient")
	}
}
