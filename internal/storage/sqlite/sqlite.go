// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	sqlitedrv "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isFKViolation reports whether err is a SQLite foreign key constraint
// failure, which means a referenced participant or item does not exist.
func isFKViolation(err error) bool {
	var serr *sqlitedrv.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// CreateBill persists a bill and its items in one transaction.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill, items []models.BillItem) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Status == "" {
		bill.Status = models.StatusActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, short_code, name, subtotal, tax, tip_percent, tip_amount, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.ShortCode, bill.Name, bill.Subtotal, bill.Tax,
		bill.TipPercent, bill.TipAmount, string(bill.Status), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.BillID = bill.ID
		if item.CreatedAt == 0 {
			item.CreatedAt = bill.CreatedAt
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_items (id, bill_id, name, price, quantity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, item.BillID, item.Name, item.Price, item.Quantity, item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const billColumns = "id, short_code, name, subtotal, tax, tip_percent, tip_amount, status, created_at"

func scanBill(row *sql.Row) (*models.Bill, error) {
	bill := &models.Bill{}
	var status string
	err := row.Scan(&bill.ID, &bill.ShortCode, &bill.Name, &bill.Subtotal,
		&bill.Tax, &bill.TipPercent, &bill.TipAmount, &status, &bill.CreatedAt)
	if err != nil {
		return nil, err
	}
	bill.Status = models.BillStatus(status)
	return bill, nil
}

// GetBill retrieves a bill by its UUID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", billID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("bill %s", billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// GetBillByShortCode retrieves a bill by its short code, case-insensitively.
func (s *SQLiteStore) GetBillByShortCode(ctx context.Context, code string) (*models.Bill, error) {
	bill, err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE short_code = UPPER(?)", code))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("bill with code %s", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill by short code: %w", err)
	}
	return bill, nil
}

// GetBillSnapshot retrieves a bill with its items, participants and claims.
func (s *SQLiteStore) GetBillSnapshot(ctx context.Context, billID string) (*models.BillSnapshot, error) {
	bill, err := s.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	snapshot := &models.BillSnapshot{Bill: *bill}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, name, price, quantity, created_at FROM bill_items WHERE bill_id = ? ORDER BY created_at, rowid",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.BillItem
		if err := itemRows.Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		snapshot.Items = append(snapshot.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	snapshot.Participants, err = s.ListParticipants(ctx, billID)
	if err != nil {
		return nil, err
	}

	claimRows, err := s.db.QueryContext(ctx,
		`SELECT id, participant_id, item_id, share, created_at FROM item_claims
		 WHERE item_id IN (SELECT id FROM bill_items WHERE bill_id = ?)
		 ORDER BY created_at, rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	defer claimRows.Close()

	for claimRows.Next() {
		var claim models.ItemClaim
		if err := claimRows.Scan(&claim.ID, &claim.ParticipantID, &claim.ItemID, &claim.Share, &claim.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		snapshot.Claims = append(snapshot.Claims, claim)
	}
	if err := claimRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}

	return snapshot, nil
}

// UpdateBill persists the bill's mutable fields.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET tip_percent = ?, tip_amount = ?, status = ? WHERE id = ?",
		bill.TipPercent, bill.TipAmount, string(bill.Status), bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFoundf("bill %s", bill.ID)
	}
	return nil
}

// DeleteBill removes a bill; items, participants and claims cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

// GetItem retrieves a bill item by its UUID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.BillItem, error) {
	item := &models.BillItem{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, bill_id, name, price, quantity, created_at FROM bill_items WHERE id = ?",
		itemID,
	).Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.Quantity, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("item %s", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// CreateParticipant persists a participant on a bill.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (id, bill_id, name, is_creator, created_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.BillID, p.Name, p.IsCreator, p.CreatedAt,
	)
	if isFKViolation(err) {
		return apperr.NotFoundf("bill %s", p.BillID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListParticipants returns a bill's participants in join order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, billID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, name, is_creator, created_at FROM participants WHERE bill_id = ? ORDER BY created_at, rowid",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.BillID, &p.Name, &p.IsCreator, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpsertClaim inserts a claim or overwrites the share of the existing row
// for the same (participant, item) pair. The claim struct is updated with
// the stored row's ID and creation time.
//
// The foreign keys only check that the participant and item each exist, not
// that they belong to the same bill, so a caller holding IDs from two bills
// can file a cross-bill claim. Participant IDs are client-held capability
// tokens, so this sits on the same trust boundary as acting for another
// participant.
func (s *SQLiteStore) UpsertClaim(ctx context.Context, claim *models.ItemClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt == 0 {
		claim.CreatedAt = time.Now().Unix()
	}

	// On conflict the original row keeps its id and created_at; only the
	// share changes. RETURNING reports the surviving row either way.
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO item_claims (id, participant_id, item_id, share, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (participant_id, item_id) DO UPDATE SET share = excluded.share
		 RETURNING id, created_at`,
		claim.ID, claim.ParticipantID, claim.ItemID, claim.Share, claim.CreatedAt,
	).Scan(&claim.ID, &claim.CreatedAt)
	if isFKViolation(err) {
		return apperr.NotFoundf("participant %s or item %s", claim.ParticipantID, claim.ItemID)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert claim: %w", err)
	}
	return nil
}

// DeleteClaim removes the claim for (participantID, itemID). Deleting an
// absent claim is a no-op success.
func (s *SQLiteStore) DeleteClaim(ctx context.Context, participantID, itemID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM item_claims WHERE participant_id = ? AND item_id = ?",
		participantID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	return nil
}

// ShortCodeExists reports whether any bill already uses the code.
func (s *SQLiteStore) ShortCodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM bills WHERE short_code = UPPER(?)", code,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check short code: %w", err)
	}
	return true, nil
}
