// Package repository persists receipts and their items in a local SQLite
// database. Connections are opened, used and closed within each operation;
// no long-lived handle is held across calls.
package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/vesasusuri/receipts-assistant/internal/common"
)

// Schema defines the two tables backing the store. Items reference their
// receipt by id; Clear deletes receipt rows only, so no cascade is declared.
const Schema = `
CREATE TABLE IF NOT EXISTS receipts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT,
    total REAL,
    currency TEXT NOT NULL,
    raw_text TEXT,
    file_name TEXT,
    upload_timestamp TEXT NOT NULL,
    file_type TEXT
);

CREATE TABLE IF NOT EXISTS receipt_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    receipt_id INTEGER NOT NULL REFERENCES receipts (id),
    item_name TEXT NOT NULL,
    price REAL NOT NULL,
    category TEXT NOT NULL DEFAULT 'other'
);

CREATE INDEX IF NOT EXISTS idx_receipt_items_receipt
    ON receipt_items (receipt_id);
`

// open opens the database file, creating its directory and schema on first
// use. Callers must close the returned handle when the operation ends.
func open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w: %w", common.ErrDatabase, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w: %w", common.ErrDatabase, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w: %w", common.ErrDatabase, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w: %w", common.ErrDatabase, err)
	}
	return db, nil
}
