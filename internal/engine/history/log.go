package history

import "fmt"

// Log is a copy of the transaction list and the applied index, used to
// persist undo history next to a saved file.
type Log struct {
	Entries []Transaction `json:"entries"`
	Index   int           `json:"index"`
}

// Export copies the current log. An open group is not included.
func (m *Manager) Export() Log {
	entries := make([]Transaction, len(m.entries))
	copy(entries, m.entries)
	return Log{Entries: entries, Index: m.index}
}

// Import replaces the history with l. The caller guarantees the document
// text matches the state l was exported at.
func (m *Manager) Import(l Log) error {
	if l.Index < -1 || l.Index >= len(l.Entries) {
		return fmt.Errorf("history index %d outside [-1,%d)", l.Index, len(l.Entries))
	}
	m.entries = make([]Transaction, len(l.Entries))
	copy(m.entries, l.Entries)
	m.index = l.Index
	m.group = nil
	return nil
}
