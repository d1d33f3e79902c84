package models

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	// StatusDraft is reserved for creation flows that stage a bill before
	// opening it for claims. No current flow creates draft bills.
	StatusDraft BillStatus = "draft"

	// StatusActive means the bill is open for joining and claiming.
	StatusActive BillStatus = "active"

	// StatusSettled means the bill has been paid out. Settled bills can be
	// reopened (settled -> active).
	StatusSettled BillStatus = "settled"
)

// IsValid reports whether s is a known bill status.
func (s BillStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusSettled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition from s to next is allowed.
// Allowed transitions: draft -> active, active <-> settled. A no-op
// transition to the same status is always allowed.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusActive
	case StatusActive:
		return next == StatusSettled
	case StatusSettled:
		return next == StatusActive
	}
	return false
}

// Bill represents a bill to be split among participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// ShortCode is the human-shareable 6-character alternate key,
	// always stored uppercase.
	ShortCode string `json:"short_code"`

	// Name is the human-readable name for the bill (e.g., "Team dinner").
	Name string `json:"name"`

	// Subtotal is the sum of price * quantity over all items, computed at
	// creation time.
	Subtotal float64 `json:"subtotal"`

	// Tax is the tax amount on the bill.
	Tax float64 `json:"tax"`

	// TipPercent is the tip percentage applied on top of subtotal + tax.
	TipPercent float64 `json:"tip_percent"`

	// TipAmount is the cached tip value:
	// (Subtotal + Tax) * TipPercent / 100.
	// Recomputed server-side whenever TipPercent changes.
	TipAmount float64 `json:"tip_amount"`

	// Status is the lifecycle state of the bill.
	Status BillStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`
}

// ComputeTipAmount returns the tip for the given subtotal, tax and tip
// percentage.
func ComputeTipAmount(subtotal, tax, tipPercent float64) float64 {
	return (subtotal + tax) * tipPercent / 100
}

// BillItem represents a single line item on a bill.
//
// A multi-quantity item represents Quantity indistinguishable units that can
// be claimed independently or together. Items are immutable once the bill is
// created; editing happens only during receipt review before creation.
type BillItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// BillID is the bill this item belongs to.
	BillID string `json:"bill_id"`

	// Name is the item description (e.g., "Burger").
	Name string `json:"name"`

	// Price is the unit price, not the line total.
	Price float64 `json:"price"`

	// Quantity is the number of units, always positive.
	Quantity int `json:"quantity"`

	// CreatedAt is the Unix timestamp when the item was created.
	CreatedAt int64 `json:"created_at"`
}

// LineTotal returns the full value of the item line (price * quantity).
func (i BillItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
