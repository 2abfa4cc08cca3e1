package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"conote-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "conote_ws_events"

type Hub struct {
	// UserID -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, may be nil
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Register attaches a client to the hub. Delivery to the client starts
// once Run has processed the registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
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

// envelope is the wire format pushed to browsers.
func envelope(messageType string, data interface{}) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"type": messageType,
		"data": data,
	})
	return payload
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := make([]*Client, len(h.clients[userID]))
	copy(clients, h.clients[userID])
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Full buffer means a stuck client; drop it rather than block.
			// Run owns the channel and closes it on unregister.
			h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"user_id": userID})
			h.unregister <- client
		}
	}
}

// SendToUser pushes one message to every connection of the user, locally and,
// when Redis is configured, on other instances. Best effort: a user with no
// connections anywhere simply misses the message.
func (h *Hub) SendToUser(userID uuid.UUID, messageType string, data interface{}) {
	msg := envelope(messageType, data)

	// With Redis the publish reaches this instance too via its own
	// subscription, so a direct local push would deliver twice.
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        json.RawMessage(msg),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
		return
	}

	h.deliverLocal(userID, msg)
}

// Broadcast pushes one message to every connected client.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	msg := envelope(messageType, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": "*",
			"message":        json.RawMessage(msg),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
		return
	}

	h.mu.RLock()
	userIds := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		userIds = append(userIds, id)
	}
	h.mu.RUnlock()

	for _, id := range userIds {
		h.deliverLocal(id, msg)
	}
}

// subscribeToRedis delivers cluster messages addressed to users connected to
// this instance. Every instance subscribes to the same channel and filters
// by local presence.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			userIds := make([]uuid.UUID, 0, len(h.clients))
			for id := range h.clients {
				userIds = append(userIds, id)
			}
			h.mu.RUnlock()
			for _, id := range userIds {
				h.deliverLocal(id, payload.Message)
			}
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverLocal(uid, payload.Message)
	}
}
