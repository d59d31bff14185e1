package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vesasusuri/receipts-assistant/constants"
	"github.com/vesasusuri/receipts-assistant/internal/common"
	"github.com/vesasusuri/receipts-assistant/internal/entity"
	"github.com/vesasusuri/receipts-assistant/internal/extract"
)

// Store is the receipt store over the two-table SQLite layout.
type Store struct {
	dbPath string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore validates the database path and bootstraps the schema.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("close database: %w", err)
	}
	return &Store{dbPath: dbPath, logger: logger, now: time.Now}, nil
}

// Save inserts the receipt and all of its item rows in one transaction and
// returns the assigned id. The upload timestamp is assigned here. Item
// prices are normalized from their formatted text with the loose storage
// rule set. On any failure the transaction rolls back; no partial receipt is
// ever visible.
func (s *Store) Save(ctx context.Context, rec *entity.Receipt) (int64, error) {
	db, err := open(s.dbPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	uploadedAt := s.now().UTC()
	res, err := tx.ExecContext(ctx, `
        INSERT INTO receipts (date, total, currency, raw_text, file_name, upload_timestamp, file_type)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullString(rec.Date),
		nullFloat(rec.Total),
		string(rec.Currency),
		rec.RawText,
		rec.FileName,
		uploadedAt.Format(time.RFC3339Nano),
		string(rec.FileType),
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert receipt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("receipt id: %w", err)
	}

	for _, item := range rec.Items {
		price := item.Price
		if item.PriceText != "" {
			price = extract.NormalizeLoose(item.PriceText)
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO receipt_items (receipt_id, item_name, price, category)
            VALUES (?, ?, ?, ?)`,
			id, item.Name, price, string(item.Category),
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit receipt: %w", err)
	}

	rec.ID = id
	rec.UploadTimestamp = uploadedAt
	s.logger.Info("receipt saved", "id", id, "file", rec.FileName, "items", len(rec.Items))
	return id, nil
}

// GetAll returns every receipt, most recent upload first, each with its full
// ordered item sequence.
func (s *Store) GetAll(ctx context.Context) ([]*entity.Receipt, error) {
	db, err := open(s.dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `
        SELECT id, date, total, currency, raw_text, file_name, upload_timestamp, file_type
        FROM receipts ORDER BY upload_timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var receipts []*entity.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}

	for _, rec := range receipts {
		items, err := s.loadItems(ctx, db, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return receipts, nil
}

// GetByID returns one receipt with its items, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	db, err := open(s.dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	row := db.QueryRowContext(ctx, `
        SELECT id, date, total, currency, raw_text, file_name, upload_timestamp, file_type
        FROM receipts WHERE id = ?`, id)
	rec, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("receipt %d: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	items, err := s.loadItems(ctx, db, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return rec, nil
}

// Clear deletes all receipt rows. Item rows are left behind on purpose; the
// receipts table is the only one cleared.
func (s *Store) Clear(ctx context.Context) error {
	db, err := open(s.dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, `DELETE FROM receipts`); err != nil {
		return fmt.Errorf("clear receipts: %w", err)
	}
	s.logger.Info("receipts cleared")
	return nil
}

func (s *Store) loadItems(ctx context.Context, db *sql.DB, receiptID int64) ([]entity.Item, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT item_name, price, category FROM receipt_items
        WHERE receipt_id = ? ORDER BY id`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		var category string
		if err := rows.Scan(&it.Name, &it.Price, &category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Category, _ = constants.CanonicalizeCategory(category)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*entity.Receipt, error) {
	var (
		rec      entity.Receipt
		date     sql.NullString
		total    sql.NullFloat64
		currency string
		rawText  sql.NullString
		fileName sql.NullString
		uploaded string
		fileType sql.NullString
	)
	if err := row.Scan(&rec.ID, &date, &total, &currency, &rawText, &fileName, &uploaded, &fileType); err != nil {
		return nil, err
	}
	rec.Date = date.String
	if total.Valid {
		v := total.Float64
		rec.Total = &v
	}
	rec.Currency = constants.Currency(currency)
	rec.RawText = rawText.String
	rec.FileName = fileName.String
	if t, err := time.Parse(time.RFC3339Nano, uploaded); err == nil {
		rec.UploadTimestamp = t
	}
	rec.FileType = constants.FileType(fileType.String)
	return &rec, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
