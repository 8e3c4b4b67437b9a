package engine

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

// enterInsert switches to Insert and then positions the cursor, so the
// history group opened on entry covers any text the entry adds (o, O).
func enterInsert(place func(e *Engine, p buffer.Position) bool) func(*Engine, Args) ExecuteResult {
	return func(e *Engine, _ Args) ExecuteResult {
		p := e.cur.Position()
		if !e.setMode(mode.Insert) {
			return Skipped
		}
		if place != nil && !place(e, p) {
			return Skipped
		}
		return Executed
	}
}

func modeCommands() []*Command {
	return []*Command{
		{ID: "insert.before", Kind: KindModeSwitch, Keys: []string{"i"}, Modes: normalOnly,
			Help: "insert before the cursor", run: enterInsert(nil)},
		{ID: "insert.after", Kind: KindModeSwitch, Keys: []string{"a"}, Modes: normalOnly,
			Help: "append after the cursor",
			run: enterInsert(func(e *Engine, p buffer.Position) bool {
				if e.buf.LineLen(p.Line) > 0 {
					e.cur.SetPosition(buffer.Position{Line: p.Line, Col: p.Col + 1})
				}
				return true
			})},
		{ID: "insert.line_start", Kind: KindModeSwitch, Keys: []string{"I"}, Modes: normalOnly,
			Help: "insert before the first non-blank",
			run: enterInsert(func(e *Engine, p buffer.Position) bool {
				e.cur.SetPosition(buffer.Position{Line: p.Line, Col: e.buf.FirstNonBlank(p.Line)})
				return true
			})},
		{ID: "insert.line_end", Kind: KindModeSwitch, Keys: []string{"A"}, Modes: normalOnly,
			Help: "append at end of line",
			run: enterInsert(func(e *Engine, p buffer.Position) bool {
				e.cur.SetPosition(buffer.Position{Line: p.Line, Col: e.buf.LineLen(p.Line)})
				return true
			})},
		{ID: "insert.line_below", Kind: KindModeSwitch, Keys: []string{"o"}, Modes: normalOnly,
			Help: "open a line below",
			run: enterInsert(func(e *Engine, p buffer.Position) bool {
				end, err := e.buf.Insert(buffer.Position{Line: p.Line, Col: e.buf.LineLen(p.Line)}, "\n")
				if err != nil {
					return false
				}
				e.cur.SetPosition(end)
				return true
			})},
		{ID: "insert.line_above", Kind: KindModeSwitch, Keys: []string{"O"}, Modes: normalOnly,
			Help: "open a line above",
			run: enterInsert(func(e *Engine, p buffer.Position) bool {
				if _, err := e.buf.Insert(buffer.Position{Line: p.Line}, "\n"); err != nil {
					return false
				}
				e.cur.SetPosition(buffer.Position{Line: p.Line})
				return true
			})},
		{ID: "mode.replace", Kind: KindModeSwitch, Keys: []string{"R"}, Modes: normalOnly,
			Help: "enter Replace mode",
			run: func(e *Engine, _ Args) ExecuteResult {
				if !e.setMode(mode.Replace) {
					return Skipped
				}
				return Executed
			}},
		{ID: "mode.visual", Kind: KindModeSwitch, Keys: []string{"v"}, Modes: normalAndVisual,
			Help: "toggle characterwise Visual mode", run: toggleVisual(mode.Visual)},
		{ID: "mode.visual_line", Kind: KindModeSwitch, Keys: []string{"V"}, Modes: normalAndVisual,
			Help: "toggle linewise Visual mode", run: toggleVisual(mode.VisualLine)},
		{ID: "normal.cancel", Kind: KindModeSwitch, Keys: []string{"<esc>"}, Modes: normalOnly,
			Help: "clear pending keys",
			run: func(*Engine, Args) ExecuteResult { return Skipped }},
	}
}

// toggleVisual enters target from Normal, switches between the two visual
// modes, or leaves target for Normal.
func toggleVisual(target mode.Mode) func(*Engine, Args) ExecuteResult {
	return func(e *Engine, _ Args) ExecuteResult {
		to := target
		if e.modes.Current() == target {
			to = mode.Normal
		}
		if !e.setMode(to) {
			return Skipped
		}
		return Executed
	}
}
