package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/notify"
)

// ClaimItem records a participant's stake on an item. If the participant
// already has a claim on the item its share is overwritten, otherwise a new
// claim is inserted. Share is a count of item-quantity units and must be
// positive.
//
// The write is deliberately not checked against remaining quantity: the
// "remaining" a client saw is from its last fetch and can be stale, so two
// clients claiming disjoint units can jointly over-claim. The engine
// normalizes shares and SummarizeItems exposes the overage for display.
func (s *BillService) ClaimItem(ctx context.Context, participantID, itemID string, share float64) (*models.ItemClaim, error) {
	switch {
	case participantID == "":
		return nil, apperr.Validationf("participant_id is required")
	case itemID == "":
		return nil, apperr.Validationf("item_id is required")
	case share <= 0:
		return nil, apperr.Validationf("share must be positive")
	}

	claim := &models.ItemClaim{
		ParticipantID: participantID,
		ItemID:        itemID,
		Share:         share,
	}
	if err := s.store.UpsertClaim(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to claim item: %w", err)
	}

	s.publishClaimEvent(ctx, itemID, notify.ActionUpdate)
	return claim, nil
}

// UnclaimItem removes a participant's claim on an item. Removing a claim
// that does not exist is a success, not an error.
func (s *BillService) UnclaimItem(ctx context.Context, participantID, itemID string) error {
	if participantID == "" {
		return apperr.Validationf("participant_id is required")
	}
	if itemID == "" {
		return apperr.Validationf("item_id is required")
	}

	if err := s.store.DeleteClaim(ctx, participantID, itemID); err != nil {
		return fmt.Errorf("failed to remove claim: %w", err)
	}

	s.publishClaimEvent(ctx, itemID, notify.ActionDelete)
	return nil
}

// publishClaimEvent resolves the item's bill and notifies its subscribers.
// A failed lookup only costs the notification; the write already happened.
func (s *BillService) publishClaimEvent(ctx context.Context, itemID string, action notify.Action) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		slog.Warn("failed to resolve item for claim notification", "item_id", itemID, "error", err)
		return
	}
	s.hub.Publish(notify.Event{BillID: item.BillID, Table: "item_claims", Action: action})
}

// SplitsResult is the engine output for one bill: per-participant splits
// plus the per-item claim summaries.
type SplitsResult struct {
	Splits []models.ParticipantSplit `json:"splits"`
	Items  []models.ItemSummary      `json:"items"`
}

// ComputeSplits fetches the bill snapshot and runs the split engine over
// it. The computation is pure; all state comes from the snapshot.
func (s *BillService) ComputeSplits(ctx context.Context, ref string) (*SplitsResult, error) {
	snapshot, err := s.GetBill(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &SplitsResult{
		Splits: calculator.ComputeSplits(snapshot.Bill, snapshot.Items, snapshot.Participants, snapshot.Claims),
		Items:  calculator.SummarizeItems(snapshot.Items, snapshot.Claims),
	}, nil
}
