package models

// ItemClaim is the ledger's atomic unit: one participant's stake on one
// item. At most one claim row exists per (participant, item) pair; claiming
// the same item again overwrites the share in place.
//
// Share is a count of item-quantity units, not a fraction of one. For a
// single-quantity item a full claim is share = 1; on a 5-quantity item a
// participant taking 2 units sets share = 2. Share values only carry meaning
// relative to the other claims on the same item (see calculator.ComputeSplits).
//
// The sum of shares on one item may be under, equal to, or (after a race
// between stale readers) over the item's quantity. The ledger does not
// enforce the bound; over-claims are a display concern.
type ItemClaim struct {
	// ID is the unique identifier for the claim (UUID format).
	ID string `json:"id"`

	// ParticipantID is the claiming participant.
	ParticipantID string `json:"participant_id"`

	// ItemID is the claimed item.
	ItemID string `json:"item_id"`

	// Share is the number of item-quantity units claimed, always > 0.
	Share float64 `json:"share"`

	// CreatedAt is the Unix timestamp when the claim was first created.
	CreatedAt int64 `json:"created_at"`
}
