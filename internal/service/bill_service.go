// Package service implements the application logic over the storage and
// notification collaborators: bill creation, joining, the claim ledger
// rules, and split computation.
//
// Participant identity is deliberately thin: the participant ID returned at
// create/join time is a client-held capability, and anyone presenting it
// acts as that participant. There is no session or signature layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/shortcode"
	"github.com/mmynk/tabsplit/internal/storage"
)

// shortCodeAttempts bounds collision retries during bill creation.
const shortCodeAttempts = 10

// BillService implements bill, participant and claim operations.
type BillService struct {
	store storage.Store
	hub   *notify.Hub
}

// NewBillService creates a BillService over the given store and hub.
func NewBillService(store storage.Store, hub *notify.Hub) *BillService {
	return &BillService{store: store, hub: hub}
}

// CreateItemInput is one line item in a bill creation request.
type CreateItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CreateBillInput is a bill creation request.
type CreateBillInput struct {
	Name        string            `json:"name"`
	Items       []CreateItemInput `json:"items"`
	Tax         float64           `json:"tax"`
	TipPercent  float64           `json:"tip_percent"`
	CreatorName string            `json:"creator_name"`
}

// CreateBillResult identifies a newly created bill and its creator.
type CreateBillResult struct {
	ID                   string `json:"id"`
	ShortCode            string `json:"short_code"`
	CreatorParticipantID string `json:"creator_participant_id"`
}

// CreateBill validates the input, computes the derived money fields,
// generates a unique short code and persists the bill, its items and the
// creator participant. Bills start out active.
//
// The bill and items insert in one transaction; the creator participant is
// a separate write (the same one join uses), so a failure there deletes the
// bill again rather than leaving an unjoinable orphan.
func (s *BillService) CreateBill(ctx context.Context, input CreateBillInput) (*CreateBillResult, error) {
	name := strings.TrimSpace(input.Name)
	creator := strings.TrimSpace(input.CreatorName)
	switch {
	case name == "":
		return nil, apperr.Validationf("name is required")
	case creator == "":
		return nil, apperr.Validationf("creator_name is required")
	case len(input.Items) == 0:
		return nil, apperr.Validationf("at least one item is required")
	case input.Tax < 0:
		return nil, apperr.Validationf("tax cannot be negative")
	case input.TipPercent < 0:
		return nil, apperr.Validationf("tip_percent cannot be negative")
	}

	items := make([]models.BillItem, len(input.Items))
	for i, in := range input.Items {
		itemName := strings.TrimSpace(in.Name)
		if itemName == "" {
			return nil, apperr.Validationf("item %d: name is required", i+1)
		}
		if in.Price < 0 {
			return nil, apperr.Validationf("item %d: price cannot be negative", i+1)
		}
		if in.Quantity < 1 {
			return nil, apperr.Validationf("item %d: quantity must be at least 1", i+1)
		}
		items[i] = models.BillItem{Name: itemName, Price: in.Price, Quantity: in.Quantity}
	}

	code, err := s.generateShortCode(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := calculator.Subtotal(items)
	bill := &models.Bill{
		ShortCode:  code,
		Name:       name,
		Subtotal:   subtotal,
		Tax:        input.Tax,
		TipPercent: input.TipPercent,
		TipAmount:  models.ComputeTipAmount(subtotal, input.Tax, input.TipPercent),
		Status:     models.StatusActive,
	}

	if err := s.store.CreateBill(ctx, bill, items); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	participant := &models.Participant{
		BillID:    bill.ID,
		Name:      creator,
		IsCreator: true,
	}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		// Compensate: a bill without its creator is unusable.
		if derr := s.store.DeleteBill(ctx, bill.ID); derr != nil {
			slog.Error("failed to clean up bill after participant insert failure",
				"bill_id", bill.ID, "error", derr)
		}
		return nil, apperr.Persistence(fmt.Errorf("failed to create creator participant: %w", err))
	}

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"short_code", bill.ShortCode,
		"items", len(items),
		"subtotal", bill.Subtotal,
	)

	return &CreateBillResult{
		ID:                   bill.ID,
		ShortCode:            bill.ShortCode,
		CreatorParticipantID: participant.ID,
	}, nil
}

// generateShortCode draws codes until one is unused, up to the retry bound.
func (s *BillService) generateShortCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < shortCodeAttempts; attempt++ {
		code := shortcode.Generate()
		exists, err := s.store.ShortCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check short code: %w", err)
		}
		if !exists {
			return code, nil
		}
		slog.Warn("Short code collision", "code", code, "attempt", attempt+1)
	}
	return "", apperr.ErrConflictExhausted
}

// resolveBill looks a bill up by UUID or, failing a UUID parse, by short
// code (case-insensitive).
func (s *BillService) resolveBill(ctx context.Context, ref string) (*models.Bill, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperr.Validationf("bill reference is required")
	}
	if _, err := uuid.Parse(ref); err == nil {
		return s.store.GetBill(ctx, ref)
	}
	return s.store.GetBillByShortCode(ctx, shortcode.Normalize(ref))
}

// GetBill returns the full snapshot of a bill addressed by UUID or short
// code: the bill plus items, participants and the flat claim ledger.
func (s *BillService) GetBill(ctx context.Context, ref string) (*models.BillSnapshot, error) {
	bill, err := s.resolveBill(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.store.GetBillSnapshot(ctx, bill.ID)
}

// UpdateBillInput carries the mutable bill fields. Nil fields are left
// unchanged.
type UpdateBillInput struct {
	TipPercent *float64 `json:"tip_percent"`
	Status     *string  `json:"status"`
}

// UpdateBill applies a tip percent and/or status change. A tip change
// recomputes the tip amount from the stored subtotal and tax; the client
// never supplies tip_amount. Status changes must follow the allowed
// transitions (draft to active, active and settled back and forth).
func (s *BillService) UpdateBill(ctx context.Context, ref string, input UpdateBillInput) (*models.Bill, error) {
	if input.TipPercent == nil && input.Status == nil {
		return nil, apperr.Validationf("nothing to update")
	}

	bill, err := s.resolveBill(ctx, ref)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		next := models.BillStatus(*input.Status)
		if !next.IsValid() {
			return nil, apperr.Validationf("unknown status %q", *input.Status)
		}
		if !bill.Status.CanTransitionTo(next) {
			return nil, apperr.Validationf("cannot transition from %s to %s", bill.Status, next)
		}
		bill.Status = next
	}

	if input.TipPercent != nil {
		if *input.TipPercent < 0 {
			return nil, apperr.Validationf("tip_percent cannot be negative")
		}
		bill.TipPercent = *input.TipPercent
		bill.TipAmount = models.ComputeTipAmount(bill.Subtotal, bill.Tax, bill.TipPercent)
	}

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	s.hub.Publish(notify.Event{BillID: bill.ID, Table: "bills", Action: notify.ActionUpdate})
	return bill, nil
}

// suffixPattern matches the " (N)" disambiguation suffix appended to
// colliding display names.
var suffixPattern = regexp.MustCompile(`^(.*) \(\d+\)$`)

// baseName strips the disambiguation suffix, if any.
func baseName(name string) string {
	if m := suffixPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// JoinBill adds a participant to a bill. When N existing participants
// already carry the same base name (case-insensitive), the stored name
// becomes "name (N+1)", so three joins as "Sam" yield "Sam", "Sam (2)",
// "Sam (3)". This is display disambiguation, not identity: concurrent
// joins can still race to the same suffix.
func (s *BillService) JoinBill(ctx context.Context, billID, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if billID == "" {
		return nil, apperr.Validationf("bill_id is required")
	}
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}

	if _, err := s.store.GetBill(ctx, billID); err != nil {
		return nil, err
	}

	existing, err := s.store.ListParticipants(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	collisions := 0
	for _, p := range existing {
		if strings.EqualFold(baseName(p.Name), name) {
			collisions++
		}
	}
	finalName := name
	if collisions > 0 {
		finalName = fmt.Sprintf("%s (%d)", name, collisions+1)
	}

	participant := &models.Participant{
		BillID: billID,
		Name:   finalName,
	}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	slog.Info("Participant joined", "bill_id", billID, "participant_id", participant.ID, "name", finalName)
	s.hub.Publish(notify.Event{BillID: billID, Table: "participants", Action: notify.ActionInsert})
	return participant, nil
}

// Subscribe returns a change subscription for the bill addressed by ref.
func (s *BillService) Subscribe(ctx context.Context, ref string) (*notify.Subscription, error) {
	bill, err := s.resolveBill(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.hub.Subscribe(bill.ID), nil
}
