package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToMatchingBill(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	subA := hub.Subscribe("bill-a")
	subB := hub.Subscribe("bill-b")

	hub.Publish(Event{BillID: "bill-a", Table: "item_claims", Action: ActionInsert})

	select {
	case ev := <-subA.C:
		assert.Equal(t, "bill-a", ev.BillID)
		assert.Equal(t, "item_claims", ev.Table)
	default:
		t.Fatal("subscriber for bill-a received nothing")
	}

	select {
	case ev := <-subB.C:
		t.Fatalf("subscriber for bill-b received %+v", ev)
	default:
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("bill-a")
	sub.Cancel()
	sub.Cancel() // idempotent

	hub.Publish(Event{BillID: "bill-a", Table: "bills", Action: ActionUpdate})

	// Channel is closed; a receive must not yield a live event.
	ev, ok := <-sub.C
	require.False(t, ok, "expected closed channel, got %+v", ev)
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("bill-a")

	// Overfill the buffer; publishes past capacity drop instead of blocking.
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Publish(Event{BillID: "bill-a", Table: "item_claims", Action: ActionUpdate})
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriberBuffer, received)
}

func TestHubCloseClosesSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("bill-a")
	hub.Close()

	_, ok := <-sub.C
	assert.False(t, ok)

	// Post-close subscriptions come back already closed.
	late := hub.Subscribe("bill-a")
	_, ok = <-late.C
	assert.False(t, ok)

	// Post-close publishes are dropped silently.
	hub.Publish(Event{BillID: "bill-a"})
}
