package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel used to fan deliveries out
// to other instances.
const clusterChannel = "cluster_events"

type Hub struct {
	// Connected clients: UserID -> connections (multi-device).
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery. Optional; a nil client
	// confines delivery to this instance.
	rdb *redis.Client

	// instanceID marks messages this hub publishes. Every instance receives
	// the cluster channel, including the publisher; the id lets it skip its
	// own messages, which it already delivered locally.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.consumeCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// IsOnline reports whether the user has at least one open connection on
// this instance.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// OnlineUsers lists users with open connections on this instance.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		users = append(users, id)
	}
	return users
}

// Send delivers a notification to every connection of one user. Implements
// service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients, found := h.clients[userID]
	h.mu.RUnlock()

	if found {
		h.deliver(clients, data)
	}

	// Other instances may hold connections for the same user.
	h.publishCluster(userID.String(), data)
}

// Broadcast delivers a notification to every connected client.
func (h *Hub) Broadcast(notification entity.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		h.deliver(clients, data)
	}
	h.mu.RUnlock()

	h.publishCluster("*", data)
}

func (h *Hub) deliver(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			// Run closes the Send channel once the unregister lands.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

type clusterPayload struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) publishCluster(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterPayload{
		Origin:       h.instanceID,
		TargetUserID: target,
		Message:      data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

// consumeCluster relays deliveries published by other instances to the
// clients this instance holds.
func (h *Hub) consumeCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.dispatchCluster(payload)
	}
}

// dispatchCluster delivers one relayed payload to local clients. Messages
// this instance published are skipped; their local delivery already
// happened in Send or Broadcast. A "*" target means broadcast.
func (h *Hub) dispatchCluster(payload clusterPayload) {
	if payload.Origin == h.instanceID {
		return
	}

	if payload.TargetUserID == "*" {
		h.mu.RLock()
		for _, clients := range h.clients {
			h.deliver(clients, payload.Message)
		}
		h.mu.RUnlock()
		return
	}

	uid, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients, ok := h.clients[uid]
	h.mu.RUnlock()
	if ok {
		h.deliver(clients, payload.Message)
	}
}

func envelope(notification entity.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": map[string]interface{}{
			"id":         notification.Id,
			"title":      notification.Title,
			"message":    notification.Message,
			"level":      notification.Type,
			"created_at": notification.CreatedAt,
		},
	})
	return data
}
