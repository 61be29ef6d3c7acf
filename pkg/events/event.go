package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PAYMENT_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and the
// NATS subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the domain services. Subscribers filter on
// the subject "events.<code>".
const (
	TypePaymentCompleted  = "PAYMENT_COMPLETED"
	TypePaymentFailed     = "PAYMENT_FAILED"
	TypePaymentApproved   = "PAYMENT_APPROVED"
	TypeFraudAlertRaised  = "FRAUD_ALERT_RAISED"
	TypePurchaseSubmitted = "PURCHASE_REQUEST_SUBMITTED"
	TypePurchaseDecided   = "PURCHASE_REQUEST_DECIDED"
)

// NewEvent builds a BaseEvent stamped with the current time.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
