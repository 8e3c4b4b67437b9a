package engine

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Text   string          `json:"text"`
	Lines  []string        `json:"lines"`
	Cursor buffer.Position `json:"cursor"`
	Mode   mode.Mode       `json:"-"`
	// ModeName is Mode.String(), kept for JSON consumers.
	ModeName string `json:"mode"`
	// Selections are the highlighted ranges, end exclusive: the visual
	// selection first when a visual mode is active, then every non-empty
	// secondary selection.
	Selections []buffer.Range `json:"selections,omitempty"`
	// Pending shows keys typed towards an incomplete command, e.g. "2d".
	Pending string `json:"pending,omitempty"`
	// Prompt is the search prompt being edited, e.g. "/wo".
	Prompt  string `json:"prompt,omitempty"`
	Message string `json:"message,omitempty"`
	Version uint64 `json:"version"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	m := e.modes.Current()
	s := Snapshot{
		Text:     e.buf.Text(),
		Lines:    e.buf.Lines(),
		Cursor:   e.cur.Position(),
		Mode:     m,
		ModeName: m.String(),
		Pending:  e.pending(),
		Message:  e.message,
		Version:  e.buf.Version(),
		CanUndo:  e.hist.CanUndo(),
		CanRedo:  e.hist.CanRedo(),
	}
	if p := e.d.prompt; p != nil {
		s.Prompt = p.String()
	}
	if m.IsVisual() {
		r := e.selectionRegion()
		s.Selections = []buffer.Range{r.bufferRange(e.buf)}
	}
	for _, sel := range e.cur.Selections()[1:] {
		if !sel.IsPoint() {
			s.Selections = append(s.Selections, sel.Range())
		}
	}
	return s
}
