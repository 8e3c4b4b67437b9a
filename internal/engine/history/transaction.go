package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
)

// Transaction is one undoable unit of buffer mutation. It stores the change
// as a pair of diff deltas rather than full snapshots.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Label        string          `json:"label"`
	Forward      string          `json:"forward"` // delta turning the before text into the after text
	Reverse      string          `json:"reverse"` // delta turning the after text back
	CursorBefore buffer.Position `json:"cursor_before"`
	CursorAfter  buffer.Position `json:"cursor_after"`
	At           time.Time       `json:"at"`
}

// NewTransaction diffs before against after. ok is false when the texts are
// equal and there is nothing to record.
func NewTransaction(label, before, after string, cursorBefore, cursorAfter buffer.Position) (Transaction, bool) {
	if before == after {
		return Transaction{}, false
	}
	dmp := diffmatchpatch.New()
	forward := dmp.DiffMain(before, after, false)
	reverse := dmp.DiffMain(after, before, false)

	return Transaction{
		ID:           uuid.New(),
		Label:        label,
		Forward:      dmp.DiffToDelta(forward),
		Reverse:      dmp.DiffToDelta(reverse),
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		At:           time.Now(),
	}, true
}

// applyDelta rebuilds the target text of a delta from its source text.
func applyDelta(source, delta string) (string, error) {
	dmp := diffmatchpatch.New()
	diffs, err := dmp.DiffFromDelta(source, delta)
	if err != nil {
		return "", fmt.Errorf("applying delta: %w", err)
	}
	return dmp.DiffText2(diffs), nil
}
