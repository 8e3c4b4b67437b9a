// Package sqlite persists undo logs in an SQLite database using the
// ncruces/go-sqlite3 driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// DBName is the database file inside the undo directory.
const DBName = "undo.db"

const schema = `
CREATE TABLE IF NOT EXISTS undo_logs (
	path       TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	entries    INTEGER NOT NULL,
	log        BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// DB wraps the connection and hands out repositories.
type DB struct {
	conn *sql.DB
}

// NewDB opens the database at path, creating its directory (mode 0700) and
// the schema on first use.
func NewDB(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating undo directory: %w", err)
	}

	log.Debug(log.CatStore, "Opening database", "path", path)
	conn, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening undo database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to undo database: %w", err)
	}
	if _, err := conn.ExecContext(context.Background(), schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("creating undo schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Open opens undo.db inside dir.
func Open(dir string) (*DB, error) {
	return NewDB(filepath.Join(dir, DBName))
}

// UndoLogs returns the undo log repository.
func (db *DB) UndoLogs() *UndoRepository {
	return &UndoRepository{db: db.conn}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
