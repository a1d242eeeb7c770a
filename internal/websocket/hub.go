package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// TypeSnapshot is the type of the message carrying the full score standing.
// Every client gets one right after it connects and again when it asks for a
// resync.
const TypeSnapshot = "score_snapshot"

// Message is one realtime event. Seq grows by one per broadcast; a snapshot
// carries the Seq of the last broadcast it already covers.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     string         `json:"id,omitempty"`
	Seq    uint64         `json:"seq"`
	Extra  map[string]any `json:"extra,omitempty"`
	Data   any            `json:"data,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action, id string, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// SnapshotFunc builds the payload of a score snapshot.
type SnapshotFunc func() any

// Hub fans board events out to the connected score boards.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	seq      uint64
	snapshot SnapshotFunc
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// SetSnapshot installs the function behind score snapshots. Without one,
// clients only see broadcasts.
func (h *Hub) SetSnapshot(fn SnapshotFunc) {
	h.mu.Lock()
	h.snapshot = fn
	h.mu.Unlock()
}

// Register adds c and queues a snapshot for it. Broadcasts that race with
// the registration land before the snapshot, which is at least as new.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.sendSnapshot(c)
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	h.dropLocked(c)
	h.mu.Unlock()
}

func (h *Hub) dropLocked(c *Client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast stamps msg with the next sequence number and queues it for every
// client. A client whose buffer is full is dropped so that it reconnects and
// starts again from a snapshot.
func (h *Hub) Broadcast(msg Message) {
	// Holding the write lock keeps delivery order equal to Seq order.
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg.Seq = h.seq
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "type", msg.Type, "error", err)
		return
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("client too slow, disconnecting", "type", msg.Type, "seq", msg.Seq)
			h.dropLocked(c)
		}
	}
}

// Notify satisfies the board's notifier.
func (h *Hub) Notify(entity, action, id string, extra map[string]any) {
	h.Broadcast(NewMessage(entity, action, id, extra))
}

// sendSnapshot queues the current standing for c. The payload is built
// without the hub lock held because the board notifies under its own lock.
func (h *Hub) sendSnapshot(c *Client) {
	h.mu.RLock()
	fn := h.snapshot
	h.mu.RUnlock()
	if fn == nil {
		return
	}
	payload := fn()

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	msg := Message{Type: TypeSnapshot, Entity: "score", Action: "snapshot", Seq: h.seq, Data: payload}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal snapshot", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		h.logger.Warn("client too slow for snapshot, disconnecting", "seq", msg.Seq)
		h.dropLocked(c)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
