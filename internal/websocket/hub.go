package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-courselab-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const roomEventsChannel = "room_events"

// Hub is the room registry and broadcast dispatcher. Rooms are created on
// first join and removed when the last member leaves; draft lifecycle is
// independent (owned by the draft cache).
type Hub struct {
	// Room membership map: room id -> connected clients
	rooms map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Identifies this instance on the redis channel so we skip our own
	// published messages.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.rooms[client.RoomID] = append(h.rooms[client.RoomID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined room", map[string]interface{}{"room": client.RoomID, "kind": client.Kind})

		case client := <-h.unregister:
			h.mu.Lock()
			if members, ok := h.rooms[client.RoomID]; ok {
				for i, c := range members {
					if c == client {
						h.rooms[client.RoomID] = append(members[:i], members[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.rooms[client.RoomID]) == 0 {
					delete(h.rooms, client.RoomID)
					h.logger.Info("Hub", "Room emptied", map[string]interface{}{"room": client.RoomID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers a payload to every current member of the room,
// including the sender. Delivery to one member is best-effort; a slow member
// is dropped rather than blocking the rest.
func (h *Hub) Broadcast(roomID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Hub", "Broadcast payload marshal failed", map[string]interface{}{"room": roomID, "error": err.Error()})
		return
	}

	h.deliverLocal(roomID, data)

	// Publish for other instances serving the same room
	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceID,
			"room":    roomID,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), roomEventsChannel, envelope)
	}
}

func (h *Hub) deliverLocal(roomID string, data []byte) {
	h.mu.RLock()
	members := h.rooms[roomID]
	for _, client := range members {
		select {
		case client.Send <- data:
		default:
			// Unregistration owns the close; queueing it twice is harmless
			// because Run removes the client from the room on the first pass.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"room": roomID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, roomEventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin  string          `json:"origin"`
			Room    string          `json:"room"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.instanceID {
			// Already delivered locally before publishing
			continue
		}
		h.deliverLocal(payload.Room, payload.Message)
	}
}
