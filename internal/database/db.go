package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with status-record operations
type DB struct {
	*sql.DB
}

// New opens the status database, creating parent directories as needed
func New(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// WAL keeps the dashboard readable while a run is writing
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates the status table
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS internet_status (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        status TEXT NOT NULL,
        success_percentage INTEGER NOT NULL,
        avg_latency_ms REAL,
        max_latency_ms REAL,
        min_latency_ms REAL,
        packet_loss INTEGER NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_status_timestamp ON internet_status(timestamp);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
