// Package notify fans out change notifications to bill subscribers.
//
// The hub carries no payload beyond which bill changed: the consistency
// contract is "on any event for your bill, refetch the full snapshot and
// recompute". Because consumers refetch rather than apply deltas, dropping
// an event for a slow subscriber is safe as long as a later event or
// refetch catches it up, and publishers never block on consumers.
package notify

import (
	"sync"
)

// Action describes what happened to a row.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event signals that a row belonging to a bill changed.
type Event struct {
	// BillID is the bill whose state changed.
	BillID string `json:"bill_id"`

	// Table names the logical table that changed
	// (bills, participants, item_claims).
	Table string `json:"table"`

	// Action is the kind of change.
	Action Action `json:"action"`
}

// subscriberBuffer is the per-subscription channel depth. A consumer that
// falls further behind than this loses events, which only delays its next
// refetch until the following event.
const subscriberBuffer = 16

// Subscription is one subscriber's handle on the hub.
type Subscription struct {
	// C delivers events for the subscribed bill.
	C <-chan Event

	hub *Hub
	ch  chan Event
	id  uint64
}

// Cancel detaches the subscription and closes C. Safe to call more than
// once.
func (s *Subscription) Cancel() {
	s.hub.cancel(s.id)
}

// Hub is an in-process change-notification fan-out. All methods are safe
// for concurrent use.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber
	closed bool
}

type subscriber struct {
	billID string
	ch     chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*subscriber)}
}

// Subscribe registers interest in all changes for one bill. Events for
// other bills are filtered out before delivery.
func (h *Hub) Subscribe(billID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return &Subscription{C: ch, hub: h, ch: ch}
	}

	h.nextID++
	id := h.nextID
	h.subs[id] = &subscriber{billID: billID, ch: ch}
	return &Subscription{C: ch, hub: h, ch: ch, id: id}
}

// Publish delivers the event to every subscriber of the event's bill.
// Never blocks: subscribers with full buffers miss the event.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if sub.billID != event.BillID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Close cancels every subscription. Subsequent publishes are dropped and
// subsequent subscriptions are returned already closed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		close(sub.ch)
		delete(h.subs, id)
	}
}

func (h *Hub) cancel(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		close(sub.ch)
		delete(h.subs, id)
	}
}
