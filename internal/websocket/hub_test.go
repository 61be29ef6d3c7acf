package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"procureflow-be/internal/entity"

	"github.com/google/uuid"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error { return nil }

func newTestHub() *Hub {
	// nil redis keeps delivery local to this instance.
	h := NewHub(nil, testLogger{})
	go h.Run()
	return h
}

func newTestClient(h *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{
		Hub:    h,
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
}

// waitFor polls cond until it holds or the deadline passes. Registration and
// unregistration go through the hub's run loop, so tests cannot assert
// immediately after sending on a channel.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestHubPresence(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()

	if h.IsOnline(userID) {
		t.Error("user should start offline")
	}

	c1 := newTestClient(h, userID, 8)
	c2 := newTestClient(h, userID, 8)
	h.register <- c1
	h.register <- c2
	waitFor(t, func() bool { return h.IsOnline(userID) }, "user never came online")

	if got := len(h.OnlineUsers()); got != 1 {
		t.Errorf("OnlineUsers count = %d, want 1", got)
	}

	// Dropping one device keeps the user online.
	h.unregister <- c1
	waitFor(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients[userID]) == 1
	}, "first device never unregistered")
	if !h.IsOnline(userID) {
		t.Error("user should stay online with one device left")
	}

	h.unregister <- c2
	waitFor(t, func() bool { return !h.IsOnline(userID) }, "user never went offline")
}

func TestHubSendReachesEveryDevice(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	other := uuid.New()

	c1 := newTestClient(h, userID, 8)
	c2 := newTestClient(h, userID, 8)
	c3 := newTestClient(h, other, 8)
	h.register <- c1
	h.register <- c2
	h.register <- c3
	waitFor(t, func() bool { return h.IsOnline(userID) && h.IsOnline(other) }, "clients never registered")

	h.Send(userID, entity.Notification{Id: uuid.New(), Title: "Payment completed", Message: "done"})

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatal("device did not receive the notification")
		}
	}
	select {
	case <-c3.Send:
		t.Error("other user must not receive a targeted notification")
	default:
	}
}

func TestHubBroadcast(t *testing.T) {
	h := newTestHub()

	c1 := newTestClient(h, uuid.New(), 8)
	c2 := newTestClient(h, uuid.New(), 8)
	h.register <- c1
	h.register <- c2
	waitFor(t, func() bool { return h.IsOnline(c1.UserID) && h.IsOnline(c2.UserID) }, "clients never registered")

	h.Broadcast(entity.Notification{Id: uuid.New(), Title: "Fraud alert", Message: "look at this"})

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatal("client did not receive the broadcast")
		}
	}
}

func TestDispatchClusterSkipsOwnMessages(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()

	c := newTestClient(h, userID, 8)
	h.register <- c
	waitFor(t, func() bool { return h.IsOnline(userID) }, "client never registered")

	// The publisher subscribes to the cluster channel like everyone else, so
	// its own messages come back to it. Redelivering them would double every
	// local delivery.
	h.dispatchCluster(clusterPayload{
		Origin:       h.instanceID,
		TargetUserID: userID.String(),
		Message:      []byte(`{"type":"notification"}`),
	})
	select {
	case <-c.Send:
		t.Fatal("hub redelivered its own cluster message")
	default:
	}

	h.dispatchCluster(clusterPayload{
		Origin:       "another-instance",
		TargetUserID: userID.String(),
		Message:      []byte(`{"type":"notification"}`),
	})
	select {
	case <-c.Send:
	case <-time.After(time.Second):
		t.Fatal("relayed message from another instance was not delivered")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()

	c := newTestClient(h, userID, 1)
	h.register <- c
	waitFor(t, func() bool { return h.IsOnline(userID) }, "client never registered")

	// First send fills the buffer; the second finds it full and the hub
	// drops the connection instead of blocking.
	h.Send(userID, entity.Notification{Id: uuid.New(), Title: "one"})
	h.Send(userID, entity.Notification{Id: uuid.New(), Title: "two"})

	waitFor(t, func() bool { return !h.IsOnline(userID) }, "slow consumer never dropped")
}

func TestEnvelopeShape(t *testing.T) {
	n := entity.Notification{
		Id:      uuid.New(),
		Title:   "Payment completed",
		Message: "Payment PAY-2026-0001 settled",
		Type:    entity.NotificationTypeSuccess,
	}

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Id      uuid.UUID `json:"id"`
			Title   string    `json:"title"`
			Message string    `json:"message"`
			Level   string    `json:"level"`
		} `json:"data"`
	}
	if err := json.Unmarshal(envelope(n), &decoded); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}

	if decoded.Type != "notification" {
		t.Errorf("type = %q, want notification", decoded.Type)
	}
	if decoded.Data.Id != n.Id || decoded.Data.Title != n.Title || decoded.Data.Message != n.Message {
		t.Errorf("data = %+v, want the notification fields", decoded.Data)
	}
	if decoded.Data.Level != "success" {
		t.Errorf("level = %q, want success", decoded.Data.Level)
	}
}
