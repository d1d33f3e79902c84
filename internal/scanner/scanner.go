// Package scanner extracts bill items from receipt images.
//
// The rest of the system treats scanning as an opaque collaborator: it may
// fail or return inconsistent numbers, and the caller falls back to manual
// item entry. Results are initial item data for the creation flow, nothing
// more.
package scanner

import (
	"context"

	"github.com/mmynk/tabsplit/internal/models"
)

// Scanner turns a receipt image into structured line items.
type Scanner interface {
	// Scan extracts items, subtotal, tax and total from an image.
	// Prices in the result are unit prices, not line totals.
	Scan(ctx context.Context, image []byte, mimeType string) (*models.ScannedReceipt, error)
}
