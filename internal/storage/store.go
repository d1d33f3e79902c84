// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tabsplit/internal/models"
)

// Store defines the interface for bill, participant and claim persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Every mutation is a single independent write; there is no cross-call
// transactionality beyond what individual methods document. Lookup misses
// are reported with apperr.ErrNotFound in the error chain.
type Store interface {
	// CreateBill persists a bill and its items in one transaction.
	// IDs and timestamps are assigned if unset. Fails if the short code
	// is already taken.
	CreateBill(ctx context.Context, bill *models.Bill, items []models.BillItem) error

	// GetBill retrieves a bill by its UUID.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// GetBillByShortCode retrieves a bill by its short code. The code is
	// matched case-insensitively (stored codes are uppercase).
	GetBillByShortCode(ctx context.Context, code string) (*models.Bill, error)

	// GetBillSnapshot retrieves a bill together with its items,
	// participants (join order) and the flat claim ledger.
	GetBillSnapshot(ctx context.Context, billID string) (*models.BillSnapshot, error)

	// UpdateBill persists the bill's mutable fields: tip percent, tip
	// amount and status.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and, via cascade, its items, participants
	// and claims. Used as the compensation path during creation.
	DeleteBill(ctx context.Context, billID string) error

	// GetItem retrieves a bill item by its UUID.
	GetItem(ctx context.Context, itemID string) (*models.BillItem, error)

	// CreateParticipant persists a participant on a bill.
	CreateParticipant(ctx context.Context, p *models.Participant) error

	// ListParticipants returns a bill's participants in join order.
	ListParticipants(ctx context.Context, billID string) ([]models.Participant, error)

	// UpsertClaim inserts a claim or, when a row for the same
	// (participant, item) pair exists, overwrites its share in place.
	// Unknown participant or item IDs surface as not-found.
	UpsertClaim(ctx context.Context, claim *models.ItemClaim) error

	// DeleteClaim removes the claim for (participantID, itemID) if
	// present. Deleting an absent claim is a no-op success.
	DeleteClaim(ctx context.Context, participantID, itemID string) error

	// ShortCodeExists reports whether any bill already uses the code.
	ShortCodeExists(ctx context.Context, code string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
