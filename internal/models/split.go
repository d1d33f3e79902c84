package models

// SplitItem is one item's contribution to a participant's split.
type SplitItem struct {
	// Item is the bill item this entry refers to.
	Item BillItem `json:"item"`

	// Share is the participant's effective fractional ownership of the
	// item (claim share normalized against all claims on the item).
	Share float64 `json:"share"`

	// Amount is the monetary value of that ownership:
	// item.Price * item.Quantity * Share.
	Amount float64 `json:"amount"`
}

// ParticipantSplit is one participant's computed monetary breakdown.
// It is derived from a bill snapshot on every read and never persisted.
type ParticipantSplit struct {
	// Participant is the person this split belongs to.
	Participant Participant `json:"participant"`

	// ItemsTotal is the sum of this participant's item amounts.
	ItemsTotal float64 `json:"items_total"`

	// TaxShare is the proportional share of the bill's tax.
	TaxShare float64 `json:"tax_share"`

	// TipShare is the proportional share of the bill's tip.
	TipShare float64 `json:"tip_share"`

	// Total is ItemsTotal + TaxShare + TipShare.
	Total float64 `json:"total"`

	// Items lists the per-item contributions behind ItemsTotal.
	Items []SplitItem `json:"items"`
}

// ItemSummary reports how much of an item's quantity is claimed, so callers
// can render under- and over-allocation.
type ItemSummary struct {
	// ItemID is the summarized item.
	ItemID string `json:"item_id"`

	// ClaimedShares is the sum of claim shares on the item.
	ClaimedShares float64 `json:"claimed_shares"`

	// Quantity is the item's nominal quantity.
	Quantity int `json:"quantity"`
}

// Overclaimed reports whether the item has more shares claimed than units.
func (s ItemSummary) Overclaimed() bool {
	return s.ClaimedShares > float64(s.Quantity)
}
