package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tabsplit/internal/models"
)

const epsilon = 1e-9

func bill(subtotal, tax, tipPercent float64) models.Bill {
	return models.Bill{
		ID:         "bill-1",
		Subtotal:   subtotal,
		Tax:        tax,
		TipPercent: tipPercent,
		TipAmount:  models.ComputeTipAmount(subtotal, tax, tipPercent),
		Status:     models.StatusActive,
	}
}

func findSplit(t *testing.T, splits []models.ParticipantSplit, participantID string) models.ParticipantSplit {
	t.Helper()
	for _, s := range splits {
		if s.Participant.ID == participantID {
			return s
		}
	}
	t.Fatalf("no split for participant %s", participantID)
	return models.ParticipantSplit{}
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		bill         models.Bill
		items        []models.BillItem
		participants []models.Participant
		claims       []models.ItemClaim
		validateFunc func(t *testing.T, splits []models.ParticipantSplit)
	}{
		{
			name: "single claimant owns item fully regardless of share magnitude",
			bill: bill(10, 0, 0),
			items: []models.BillItem{
				{ID: "i1", Name: "Burger", Price: 10, Quantity: 1},
			},
			participants: []models.Participant{{ID: "p1", Name: "Alice"}},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 0.25},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				alice := findSplit(t, splits, "p1")
				if math.Abs(alice.ItemsTotal-10) > epsilon {
					t.Errorf("ItemsTotal = %v, want 10", alice.ItemsTotal)
				}
				if len(alice.Items) != 1 || math.Abs(alice.Items[0].Share-1.0) > epsilon {
					t.Errorf("effective share = %v, want 1.0", alice.Items[0].Share)
				}
			},
		},
		{
			name: "equal shares split an item evenly",
			bill: bill(10, 0, 0),
			items: []models.BillItem{
				{ID: "i1", Name: "Pizza", Price: 10, Quantity: 1},
			},
			participants: []models.Participant{
				{ID: "p1", Name: "Alice"},
				{ID: "p2", Name: "Bob"},
			},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 1},
				{ParticipantID: "p2", ItemID: "i1", Share: 1},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				for _, id := range []string{"p1", "p2"} {
					s := findSplit(t, splits, id)
					if math.Abs(s.ItemsTotal-5) > epsilon {
						t.Errorf("%s ItemsTotal = %v, want 5", id, s.ItemsTotal)
					}
				}
			},
		},
		{
			name: "shares of 2 and 1 split a three-quantity item 2/3 and 1/3",
			bill: bill(27, 0, 0),
			items: []models.BillItem{
				{ID: "i1", Name: "Beer", Price: 9, Quantity: 3},
			},
			participants: []models.Participant{
				{ID: "p1", Name: "Alice"},
				{ID: "p2", Name: "Bob"},
			},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 2},
				{ParticipantID: "p2", ItemID: "i1", Share: 1},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				alice := findSplit(t, splits, "p1")
				bob := findSplit(t, splits, "p2")
				if math.Abs(alice.ItemsTotal-18) > epsilon {
					t.Errorf("Alice ItemsTotal = %v, want 18", alice.ItemsTotal)
				}
				if math.Abs(bob.ItemsTotal-9) > epsilon {
					t.Errorf("Bob ItemsTotal = %v, want 9", bob.ItemsTotal)
				}
				if math.Abs(alice.Items[0].Share-2.0/3.0) > epsilon {
					t.Errorf("Alice share = %v, want 2/3", alice.Items[0].Share)
				}
			},
		},
		{
			name: "zero subtotal yields zero tax and tip shares",
			bill: models.Bill{ID: "bill-1", Subtotal: 0, Tax: 5, TipAmount: 3},
			items: []models.BillItem{
				{ID: "i1", Name: "Freebie", Price: 0, Quantity: 1},
			},
			participants: []models.Participant{{ID: "p1", Name: "Alice"}},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 1},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				alice := findSplit(t, splits, "p1")
				if alice.TaxShare != 0 || alice.TipShare != 0 {
					t.Errorf("TaxShare = %v, TipShare = %v, want 0, 0", alice.TaxShare, alice.TipShare)
				}
			},
		},
		{
			name: "claim against unknown item is skipped",
			bill: bill(10, 0, 0),
			items: []models.BillItem{
				{ID: "i1", Name: "Burger", Price: 10, Quantity: 1},
			},
			participants: []models.Participant{{ID: "p1", Name: "Alice"}},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 1},
				{ParticipantID: "p1", ItemID: "missing", Share: 1},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				alice := findSplit(t, splits, "p1")
				if math.Abs(alice.ItemsTotal-10) > epsilon {
					t.Errorf("ItemsTotal = %v, want 10", alice.ItemsTotal)
				}
				if len(alice.Items) != 1 {
					t.Errorf("got %d split items, want 1", len(alice.Items))
				}
			},
		},
		{
			name: "participant with no claims owes nothing",
			bill: bill(10, 2, 10),
			items: []models.BillItem{
				{ID: "i1", Name: "Burger", Price: 10, Quantity: 1},
			},
			participants: []models.Participant{
				{ID: "p1", Name: "Alice"},
				{ID: "p2", Name: "Bob"},
			},
			claims: []models.ItemClaim{
				{ParticipantID: "p1", ItemID: "i1", Share: 1},
			},
			validateFunc: func(t *testing.T, splits []models.ParticipantSplit) {
				bob := findSplit(t, splits, "p2")
				if bob.Total != 0 {
					t.Errorf("Bob total = %v, want 0", bob.Total)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := ComputeSplits(tt.bill, tt.items, tt.participants, tt.claims)
			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}
			tt.validateFunc(t, splits)
		})
	}
}

// TestComputeSplits_Scenario walks the worked example: Burger $10 x1 and
// Fries $5 x2, tax $2, tip 20%. A claims the burger and one fries unit, B
// claims the other fries unit.
func TestComputeSplits_Scenario(t *testing.T) {
	b := bill(20, 2, 20)
	if math.Abs(b.TipAmount-4.4) > epsilon {
		t.Fatalf("TipAmount = %v, want 4.4", b.TipAmount)
	}

	items := []models.BillItem{
		{ID: "burger", Name: "Burger", Price: 10, Quantity: 1},
		{ID: "fries", Name: "Fries", Price: 5, Quantity: 2},
	}
	participants := []models.Participant{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	claims := []models.ItemClaim{
		{ParticipantID: "a", ItemID: "burger", Share: 1},
		{ParticipantID: "a", ItemID: "fries", Share: 1},
		{ParticipantID: "b", ItemID: "fries", Share: 1},
	}

	splits := ComputeSplits(b, items, participants, claims)

	a := findSplit(t, splits, "a")
	if math.Abs(a.ItemsTotal-15) > epsilon {
		t.Errorf("A ItemsTotal = %v, want 15", a.ItemsTotal)
	}
	if math.Abs(a.TaxShare-1.5) > epsilon {
		t.Errorf("A TaxShare = %v, want 1.5", a.TaxShare)
	}
	if math.Abs(a.TipShare-3.3) > epsilon {
		t.Errorf("A TipShare = %v, want 3.3", a.TipShare)
	}
	if math.Abs(a.Total-19.8) > epsilon {
		t.Errorf("A Total = %v, want 19.80", a.Total)
	}

	bb := findSplit(t, splits, "b")
	if math.Abs(bb.Total-6.6) > epsilon {
		t.Errorf("B Total = %v, want 6.60", bb.Total)
	}

	sum := a.Total + bb.Total
	if math.Abs(sum-26.4) > epsilon {
		t.Errorf("sum of totals = %v, want 26.40", sum)
	}
}

// TestComputeSplits_Conservation checks that fully claimed bills conserve
// money: the splits sum to subtotal + tax + tip.
func TestComputeSplits_Conservation(t *testing.T) {
	b := bill(61, 5.37, 18)
	items := []models.BillItem{
		{ID: "i1", Name: "Pasta", Price: 14, Quantity: 2},
		{ID: "i2", Name: "Wine", Price: 9, Quantity: 3},
		{ID: "i3", Name: "Tiramisu", Price: 6, Quantity: 1},
	}
	participants := []models.Participant{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob"},
		{ID: "p3", Name: "Carol"},
	}
	// Every item exactly fully claimed: pasta 1+1, wine 2+0.5+0.5, tiramisu 1.
	claims := []models.ItemClaim{
		{ParticipantID: "p1", ItemID: "i1", Share: 1},
		{ParticipantID: "p2", ItemID: "i1", Share: 1},
		{ParticipantID: "p1", ItemID: "i2", Share: 2},
		{ParticipantID: "p2", ItemID: "i2", Share: 0.5},
		{ParticipantID: "p3", ItemID: "i2", Share: 0.5},
		{ParticipantID: "p3", ItemID: "i3", Share: 1},
	}

	if math.Abs(Subtotal(items)-b.Subtotal) > epsilon {
		t.Fatalf("item subtotal = %v, want %v", Subtotal(items), b.Subtotal)
	}

	splits := ComputeSplits(b, items, participants, claims)

	var sum float64
	for _, s := range splits {
		sum += s.Total
	}
	want := b.Subtotal + b.Tax + b.TipAmount
	if math.Abs(sum-want) > 1e-6 {
		t.Errorf("sum of totals = %v, want %v", sum, want)
	}
}

func TestSummarizeItems(t *testing.T) {
	items := []models.BillItem{
		{ID: "i1", Name: "Beer", Price: 8, Quantity: 2},
		{ID: "i2", Name: "Nachos", Price: 12, Quantity: 1},
	}
	claims := []models.ItemClaim{
		{ParticipantID: "p1", ItemID: "i1", Share: 2},
		{ParticipantID: "p2", ItemID: "i1", Share: 1},
	}

	summaries := SummarizeItems(items, claims)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	// Stale readers can jointly push claims past quantity; the summary
	// reports it rather than erroring.
	if !summaries[0].Overclaimed() {
		t.Errorf("beer: ClaimedShares = %v over quantity %d, want Overclaimed",
			summaries[0].ClaimedShares, summaries[0].Quantity)
	}
	if summaries[1].ClaimedShares != 0 || summaries[1].Overclaimed() {
		t.Errorf("nachos: unexpected summary %+v", summaries[1])
	}
}
