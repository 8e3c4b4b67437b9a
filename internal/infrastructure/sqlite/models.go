package sqlite

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/history"
)

// UndoLogModel is one row of the undo_logs table.
type UndoLogModel struct {
	Path      string
	Hash      string
	Entries   int
	Log       []byte // JSON encoded history.Log
	UpdatedAt int64  // Unix timestamp
}

func toUndoLogModel(path, hash string, l history.Log, now time.Time) (*UndoLogModel, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding undo log: %w", err)
	}
	return &UndoLogModel{
		Path:      path,
		Hash:      hash,
		Entries:   len(l.Entries),
		Log:       data,
		UpdatedAt: now.Unix(),
	}, nil
}

func (m *UndoLogModel) toHistory() (history.Log, error) {
	var l history.Log
	if err := json.Unmarshal(m.Log, &l); err != nil {
		return history.Log{}, fmt.Errorf("decoding undo log: %w", err)
	}
	return l, nil
}

// ContentHash identifies a saved file's content.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
