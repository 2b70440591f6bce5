package realtime

import (
	"encoding/json"
	"sync"

	"casa360/internal/common/models"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans change events out to websocket subscribers. Subscriptions are
// per table with an event filter; a new subscribe on a table replaces the
// connection's previous one, so re-initialized modules never accumulate
// duplicate handlers.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	observers []func(models.ChangeEvent)
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

type Client struct {
	FamilyID string
	UserID   string

	conn    *websocket.Conn
	writeMu sync.Mutex
	subMu   sync.Mutex
	subs    map[string]string // table -> event filter (insert|update|delete|*)
}

func NewClient(conn *websocket.Conn, familyID, userID string) *Client {
	return &Client{
		FamilyID: familyID,
		UserID:   userID,
		conn:     conn,
		subs:     make(map[string]string),
	}
}

// Subscribe registers interest in a table, replacing any previous
// subscription for the same table on this connection.
func (c *Client) Subscribe(table, event string) {
	if event == "" {
		event = models.ChangeAll
	}
	c.subMu.Lock()
	c.subs[table] = event
	c.subMu.Unlock()
}

func (c *Client) Unsubscribe(table string) {
	c.subMu.Lock()
	delete(c.subs, table)
	c.subMu.Unlock()
}

func (c *Client) wants(ev models.ChangeEvent) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	filter, ok := c.subs[ev.Table]
	if !ok {
		return false
	}
	return filter == models.ChangeAll || filter == ev.Event
}

func (c *Client) send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Observe registers an in-process listener that sees every published
// change event regardless of family. Listeners must not block.
func (h *Hub) Observe(fn func(models.ChangeEvent)) {
	h.mu.Lock()
	h.observers = append(h.observers, fn)
	h.mu.Unlock()
}

// Publish delivers a change event to every subscribed client of the same
// family. Dead connections are dropped on write failure.
func (h *Hub) Publish(ev models.ChangeEvent) {
	h.mu.RLock()
	observers := h.observers
	h.mu.RUnlock()
	for _, fn := range observers {
		fn(ev)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.FamilyID == ev.FamilyID && c.wants(ev) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(payload); err != nil {
			h.logger.Warn("realtime send failed, dropping client",
				zap.String("user", c.UserID), zap.Error(err))
			h.Unregister(c)
		}
	}
}

// SubscriberCount reports how many registered connections belong to a family.
func (h *Hub) SubscriberCount(familyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.clients {
		if c.FamilyID == familyID {
			n++
		}
	}
	return n
}
