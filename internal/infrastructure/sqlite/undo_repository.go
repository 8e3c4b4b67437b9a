package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/history"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

var (
	// ErrNotFound means no undo log is stored for the file.
	ErrNotFound = errors.New("no undo log")
	// ErrStale means the stored log was written for different file content.
	// The log is deleted when this is returned.
	ErrStale = errors.New("undo log does not match file")
)

// UndoRepository stores one undo log per absolute file path.
type UndoRepository struct {
	db  *sql.DB
	now func() time.Time
}

func (r *UndoRepository) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// Save stores l for the file at path whose saved content hashes to hash,
// replacing any earlier log.
func (r *UndoRepository) Save(ctx context.Context, path, hash string, l history.Log) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	model, err := toUndoLogModel(abs, hash, l, r.clock())
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO undo_logs (path, hash, entries, log, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash, entries = excluded.entries,
			log = excluded.log, updated_at = excluded.updated_at`,
		model.Path, model.Hash, model.Entries, model.Log, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save undo log: %w", err)
	}
	log.Debug(log.CatStore, "undo log saved", "path", abs, "entries", model.Entries)
	return nil
}

// Load returns the log stored for path. It returns ErrNotFound when there is
// none and ErrStale, after deleting the row, when hash differs from the one
// saved with it.
func (r *UndoRepository) Load(ctx context.Context, path, hash string) (history.Log, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return history.Log{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	var m UndoLogModel
	err = r.db.QueryRowContext(ctx,
		`SELECT path, hash, entries, log, updated_at FROM undo_logs WHERE path = ?`, abs,
	).Scan(&m.Path, &m.Hash, &m.Entries, &m.Log, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Log{}, ErrNotFound
	}
	if err != nil {
		return history.Log{}, fmt.Errorf("failed to load undo log: %w", err)
	}

	if m.Hash != hash {
		log.Info(log.CatStore, "discarding stale undo log", "path", abs)
		if err := r.Delete(ctx, abs); err != nil {
			return history.Log{}, err
		}
		return history.Log{}, ErrStale
	}
	return m.toHistory()
}

// Delete removes the log for path, if any.
func (r *UndoRepository) Delete(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM undo_logs WHERE path = ?`, abs); err != nil {
		return fmt.Errorf("failed to delete undo log: %w", err)
	}
	return nil
}

// Prune deletes logs not saved since before and reports how many went.
func (r *UndoRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM undo_logs WHERE updated_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune undo logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
