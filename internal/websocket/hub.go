package websocket

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"campus-connect/internal/models"
	"campus-connect/internal/services"
	"campus-connect/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ChatEvents is what the hub needs from the chat domain to serve socket
// events.
type ChatEvents interface {
	CanJoin(ctx context.Context, chatID, userID uint) error
	SendMessage(ctx context.Context, chatID, senderID uint, text string) (*models.MessageResponse, error)
}

// Hub tracks connected clients and the rooms they joined. Once the Redis
// room subscription is up every emit goes through pub/sub so that all
// instances deliver to their local members.
type Hub struct {
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	redisService *services.RedisService
	pubsub       *redis.PubSub
	relay        atomic.Bool
	ready        chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex

	logger *logger.Logger
}

var _ services.Broadcaster = (*Hub)(nil)

// NewHub builds a hub. redisService may be nil for a single instance.
func NewHub(redisService *services.RedisService, log *logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:      make(map[*Client]struct{}),
		rooms:        make(map[string]map[*Client]struct{}),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		redisService: redisService,
		ready:        make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		logger:       log,
	}
}

func (h *Hub) Run() {
	h.subscribeToRedis()
	close(h.ready)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			h.closeAll()
			return
		}
	}
}

// Ready is closed once Run has subscribed to Redis and accepts clients.
func (h *Hub) Ready() <-chan struct{} {
	return h.ready
}

func (h *Hub) Stop() {
	h.cancel()
	if h.pubsub != nil {
		if err := h.pubsub.Close(); err != nil {
			h.logger.Warn("Failed to close room subscription", "error", err)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.joinLocked(client, models.UserRoom(client.userID))
	h.mu.Unlock()

	h.logger.Info("Client registered", "client_id", client.id, "user_id", client.userID)

	if h.redisService != nil {
		if err := h.redisService.SetUserOnline(h.ctx, client.userID); err != nil {
			h.logger.Warn("Failed to mark user online", "user_id", client.userID, "error", err)
		}
	}

	frame, err := encodeFrame(MessageTypeConnected, client.userID, ConnectedData{ClientID: client.id, UserID: client.userID})
	if err == nil {
		client.trySend(frame)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for room := range client.rooms {
		h.leaveLocked(client, room)
	}
	h.mu.Unlock()

	client.closeSend()
	h.logger.Info("Client unregistered", "client_id", client.id, "user_id", client.userID)

	if h.redisService != nil {
		if err := h.redisService.SetUserOffline(h.ctx, client.userID); err != nil {
			h.logger.Warn("Failed to mark user offline", "user_id", client.userID, "error", err)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]struct{})
	h.rooms = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.closeSend()
	}
}

// Join adds client to room.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		h.joinLocked(client, room)
	}
}

// Leave removes client from room.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(client, room)
}

func (h *Hub) joinLocked(client *Client, room string) {
	members := h.rooms[room]
	if members == nil {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (h *Hub) leaveLocked(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// EmitToRoom delivers an event to every member of room on every instance.
func (h *Hub) EmitToRoom(room, event string, data interface{}) {
	frame, err := encodeFrame(MessageType(event), 0, data)
	if err != nil {
		h.logger.Error("Failed to encode room event", "room", room, "event", event, "error", err)
		return
	}

	if h.relay.Load() {
		if err := h.redisService.PublishRoom(h.ctx, room, frame); err == nil {
			return
		}
		// fall through so at least local members get it
	}
	h.deliverLocal(room, frame)
}

func (h *Hub) deliverLocal(room string, frame []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if !c.trySend(frame) {
			h.logger.Warn("Dropping slow client", "client_id", c.id, "user_id", c.userID, "room", room)
			go h.drop(c)
		}
	}
}

func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// subscribeToRedis listens on every room channel. It returns once the
// subscription is confirmed. If it cannot be confirmed the hub stays on
// local delivery.
func (h *Hub) subscribeToRedis() {
	if h.redisService == nil {
		return
	}

	pattern := services.RoomChannelPrefix + "*"
	pubsub := h.redisService.PSubscribe(h.ctx, pattern)
	if _, err := pubsub.Receive(h.ctx); err != nil {
		h.logger.Error("Failed to subscribe to room channels, delivering locally only", "pattern", pattern, "error", err)
		_ = pubsub.Close()
		return
	}
	h.pubsub = pubsub
	h.relay.Store(true)

	go func() {
		for msg := range h.pubsub.Channel() {
			room := strings.TrimPrefix(msg.Channel, services.RoomChannelPrefix)
			h.deliverLocal(room, []byte(msg.Payload))
		}
	}()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
