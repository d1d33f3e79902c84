// Package calculator implements the split engine: a pure function from a
// bill snapshot (bill, items, participants, claims) to each participant's
// monetary share. It holds no state, performs no I/O, and never fails on
// typed input; malformed snapshots degrade instead of erroring.
package calculator

import (
	"github.com/mmynk/tabsplit/internal/models"
)

// ComputeSplits computes every participant's share of a bill.
//
// Each claim's share is normalized against the total shares claimed on the
// same item, so share values only carry meaning relative to each other: two
// participants claiming share=1 each on a one-quantity item split it 50/50,
// and shares of 2 and 1 on a three-quantity item split it 2/3 and 1/3. A
// lone claim owns its item fully regardless of the share magnitude.
//
// Tax and tip are apportioned by each participant's fraction of the bill
// subtotal. When every item is exactly fully claimed, the splits sum to
// subtotal + tax + tip up to floating-point error; no cent-reconciliation
// pass is applied.
func ComputeSplits(bill models.Bill, items []models.BillItem, participants []models.Participant, claims []models.ItemClaim) []models.ParticipantSplit {
	itemsByID := make(map[string]models.BillItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	// item ID -> total claimed shares
	totalShares := make(map[string]float64, len(items))
	for _, claim := range claims {
		totalShares[claim.ItemID] += claim.Share
	}

	splits := make([]models.ParticipantSplit, 0, len(participants))
	for _, participant := range participants {
		var itemsTotal float64
		var splitItems []models.SplitItem

		for _, claim := range claims {
			if claim.ParticipantID != participant.ID {
				continue
			}
			item, ok := itemsByID[claim.ItemID]
			if !ok {
				// Claim against an item missing from the snapshot; skip.
				continue
			}

			total := totalShares[item.ID]
			if total == 0 {
				// Only reachable with non-positive shares, which the
				// ledger rejects; fall back to sole ownership.
				total = 1
			}
			effective := claim.Share / total
			amount := item.LineTotal() * effective

			itemsTotal += amount
			splitItems = append(splitItems, models.SplitItem{
				Item:   item,
				Share:  effective,
				Amount: amount,
			})
		}

		var proportion float64
		if bill.Subtotal > 0 {
			proportion = itemsTotal / bill.Subtotal
		}
		taxShare := bill.Tax * proportion
		tipShare := bill.TipAmount * proportion

		splits = append(splits, models.ParticipantSplit{
			Participant: participant,
			ItemsTotal:  itemsTotal,
			TaxShare:    taxShare,
			TipShare:    tipShare,
			Total:       itemsTotal + taxShare + tipShare,
			Items:       splitItems,
		})
	}

	return splits
}

// SummarizeItems reports claimed shares against quantity for each item, in
// item order. Over-claimed items are a display concern, not an error.
func SummarizeItems(items []models.BillItem, claims []models.ItemClaim) []models.ItemSummary {
	claimed := make(map[string]float64, len(items))
	for _, claim := range claims {
		claimed[claim.ItemID] += claim.Share
	}

	summaries := make([]models.ItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, models.ItemSummary{
			ItemID:        item.ID,
			ClaimedShares: claimed[item.ID],
			Quantity:      item.Quantity,
		})
	}
	return summaries
}

// Subtotal sums the line totals of the given items.
func Subtotal(items []models.BillItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}
