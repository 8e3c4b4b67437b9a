// Package history records committed edit transactions and replays them
// backward (undo) and forward (redo).
//
// Entries live in a single slice with an index pointing at the most recently
// applied transaction; -1 is the base state. Committing truncates everything
// after the index, which is the redo tail.
package history

import (
	"errors"
	"fmt"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

var (
	// ErrNothingToUndo is the NoOp result of Undo on an empty undo stack.
	ErrNothingToUndo = errors.New("already at oldest change")
	// ErrNothingToRedo is the NoOp result of Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("already at newest change")
)

// Document is the text surface history rewrites on undo and redo.
type Document interface {
	Text() string
	SetText(text string)
}

// Manager owns the undo/redo log.
type Manager struct {
	entries []Transaction
	index   int
	limit   int
	group   *group
}

// group is an open coalescing session, typically one Insert-mode visit.
type group struct {
	label        string
	before       string
	cursorBefore buffer.Position
}

// NewManager creates an empty history keeping at most limit entries.
// A limit of 0 keeps everything.
func NewManager(limit int) *Manager {
	return &Manager{index: -1, limit: limit}
}

// Commit pushes tx and discards the redo tail.
func (m *Manager) Commit(tx Transaction) {
	m.entries = append(m.entries[:m.index+1], tx)
	m.index = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([]Transaction(nil), m.entries[drop:]...)
		m.index -= drop
	}

	log.Debug(log.CatHistory, "committed", "label", tx.Label, "id", tx.ID, "depth", m.index+1)
}

// Record diffs before against after and commits the result. It returns false
// when nothing changed.
func (m *Manager) Record(label, before, after string, cursorBefore, cursorAfter buffer.Position) (Transaction, bool) {
	tx, ok := NewTransaction(label, before, after, cursorBefore, cursorAfter)
	if !ok {
		return Transaction{}, false
	}
	m.Commit(tx)
	return tx, true
}

// Undo reverts the most recent transaction on doc and returns the cursor
// position recorded before it was committed.
func (m *Manager) Undo(doc Document) (buffer.Position, error) {
	if !m.CanUndo() {
		return buffer.Position{}, ErrNothingToUndo
	}
	tx := m.entries[m.index]
	text, err := applyDelta(doc.Text(), tx.Reverse)
	if err != nil {
		log.ErrorErr(log.CatHistory, "undo failed", err, "id", tx.ID)
		return buffer.Position{}, fmt.Errorf("undo %s: %w", tx.Label, err)
	}
	doc.SetText(text)
	m.index--
	return tx.CursorBefore, nil
}

// Redo re-applies the transaction after the index and returns the cursor
// position recorded after it.
func (m *Manager) Redo(doc Document) (buffer.Position, error) {
	if !m.CanRedo() {
		return buffer.Position{}, ErrNothingToRedo
	}
	tx := m.entries[m.index+1]
	text, err := applyDelta(doc.Text(), tx.Forward)
	if err != nil {
		log.ErrorErr(log.CatHistory, "redo failed", err, "id", tx.ID)
		return buffer.Position{}, fmt.Errorf("redo %s: %w", tx.Label, err)
	}
	doc.SetText(text)
	m.index++
	return tx.CursorAfter, nil
}

// CanUndo reports whether there is a transaction to undo.
func (m *Manager) CanUndo() bool {
	return m.index >= 0
}

// CanRedo reports whether there is a transaction to redo.
func (m *Manager) CanRedo() bool {
	return m.index < len(m.entries)-1
}

// Len returns the number of stored transactions, undone ones included.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Depth returns the number of transactions currently applied.
func (m *Manager) Depth() int {
	return m.index + 1
}

// Clear drops every transaction and any open group.
func (m *Manager) Clear() {
	m.entries = nil
	m.index = -1
	m.group = nil
}

// Begin opens a coalescing group. Edits made until End are committed as one
// transaction. Beginning while a group is open is a no-op.
func (m *Manager) Begin(label, text string, cursor buffer.Position) {
	if m.group != nil {
		return
	}
	m.group = &group{label: label, before: text, cursorBefore: cursor}
}

// End closes the open group and commits it if the text changed. It returns
// false when no group was open or nothing changed.
func (m *Manager) End(text string, cursor buffer.Position) (Transaction, bool) {
	g := m.group
	m.group = nil
	if g == nil {
		return Transaction{}, false
	}
	return m.Record(g.label, g.before, text, g.cursorBefore, cursor)
}

// Boundary splits the open group: what was typed so far becomes its own
// transaction and a new group starts at the current state.
func (m *Manager) Boundary(text string, cursor buffer.Position) (Transaction, bool) {
	g := m.group
	if g == nil {
		return Transaction{}, false
	}
	tx, ok := m.End(text, cursor)
	m.Begin(g.label, text, cursor)
	return tx, ok
}

// InGroup reports whether a coalescing group is open.
func (m *Manager) InGroup() bool {
	return m.group != nil
}
