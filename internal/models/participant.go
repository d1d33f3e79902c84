package models

// Participant represents one person splitting a bill.
//
// Participants are created when someone creates or joins a bill and are
// never mutated or deleted; a participant who leaves simply stops acting.
// The participant ID doubles as the client-held capability token: anyone
// holding it can act as that participant.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// BillID is the bill this participant belongs to.
	BillID string `json:"bill_id"`

	// Name is the display name, possibly suffixed for disambiguation
	// (e.g., "Sam (2)"). Uniqueness is soft: a race between two joins with
	// the same base name can still produce duplicate suffixed names.
	Name string `json:"name"`

	// IsCreator marks the participant who created the bill. Exactly one
	// per bill, set at creation, never transferred.
	IsCreator bool `json:"is_creator"`

	// CreatedAt is the Unix timestamp when the participant joined.
	CreatedAt int64 `json:"created_at"`
}
