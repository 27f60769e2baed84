package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
// dbPath may be ":memory:".
func NewSQLiteRecorder(dbPath string) (*SQLRecorder, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: SQLite serializes writers, and each :memory: connection is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r, err := newSQLRecorder(db, sqliteDialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}
