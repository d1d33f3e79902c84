package models

// BillSnapshot is the complete state of a bill as fetched in one read:
// the bill plus its items, participants, and the flat, unfiltered claim
// ledger. Consumers feed it to the calculator to derive splits.
type BillSnapshot struct {
	Bill
	Items        []BillItem    `json:"items"`
	Participants []Participant `json:"participants"`
	Claims       []ItemClaim   `json:"claims"`
}
