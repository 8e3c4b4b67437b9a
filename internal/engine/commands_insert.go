package engine

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

var insertOnly = []mode.Mode{mode.Insert}

func insertCommands(escape string) []*Command {
	cmds := []*Command{
		{ID: "insert.escape", Kind: KindModeSwitch, Keys: []string{"<esc>"}, Modes: insertModes,
			Help: "return to Normal mode", run: toNormal},
		{ID: "insert.newline", Kind: KindEdit, Keys: []string{"<cr>"}, Modes: insertOnly,
			Help: "split the line", run: typeText("\n")},
		{ID: "insert.tab", Kind: KindEdit, Keys: []string{"<tab>"}, Modes: insertOnly,
			Help: "insert a tab", run: typeText("\t")},
		{ID: "insert.backspace", Kind: KindEdit, Keys: []string{"<bs>"}, Modes: insertOnly,
			Help: "delete the character before the cursor, joining lines at column 0", run: backspace},
		{ID: "insert.delete", Kind: KindEdit, Keys: []string{"<del>"}, Modes: insertOnly,
			Help: "delete the character under the cursor", run: deleteForward},
		{ID: "insert.delete_word", Kind: KindEdit, Keys: []string{"<c-w>"}, Modes: insertOnly,
			Help: "delete the word before the cursor", run: deleteWordBack},
		{ID: "insert.delete_line", Kind: KindEdit, Keys: []string{"<c-u>"}, Modes: insertOnly,
			Help: "delete to line start", run: deleteToLineStart},

		insertMove("insert.left", cursor.CharLeft, "<left>"),
		insertMove("insert.right", cursor.CharRight, "<right>"),
		insertMove("insert.up", cursor.LineUp, "<up>"),
		insertMove("insert.down", cursor.LineDown, "<down>"),
		insertMove("insert.home", cursor.LineStart, "<home>"),
		insertMove("insert.end", cursor.LineEnd, "<end>"),
	}
	if escape != "" {
		cmds = append(cmds, &Command{
			ID: "insert.escape_sequence", Kind: KindModeSwitch, Keys: []string{escape}, Modes: insertOnly,
			Help: "return to Normal mode", run: toNormal,
		})
	}
	return cmds
}

// insertTextCommand types one printable key in Insert mode.
func insertTextCommand() *Command {
	return &Command{
		ID:    "insert.text",
		Kind:  KindEdit,
		Keys:  []string{"{char}"},
		Modes: insertOnly,
		Help:  "insert the character",
		run: func(e *Engine, a Args) ExecuteResult {
			return typeText(string(a.Char))(e, a)
		},
	}
}

func toNormal(e *Engine, _ Args) ExecuteResult {
	if !e.setMode(mode.Normal) {
		return Skipped
	}
	return Executed
}

func typeText(text string) func(*Engine, Args) ExecuteResult {
	return func(e *Engine, _ Args) ExecuteResult {
		end, err := e.buf.Insert(e.cur.Position(), text)
		if err != nil {
			return Skipped
		}
		e.cur.SetPosition(end)
		return Executed
	}
}

// deleteBack deletes from column from up to the cursor.
func (e *Engine) deleteBack(from int) ExecuteResult {
	p := e.cur.Position()
	start := buffer.Position{Line: p.Line, Col: from}
	if _, err := e.buf.Delete(buffer.Range{Start: start, End: p}); err != nil {
		return Skipped
	}
	e.cur.SetPosition(start)
	return Executed
}

func backspace(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	switch {
	case p.Col > 0:
		return e.deleteBack(p.Col - 1)
	case p.Line == 0:
		return Skipped
	}
	prev := buffer.Position{Line: p.Line - 1, Col: e.buf.LineLen(p.Line - 1)}
	if _, err := e.buf.Delete(buffer.Range{Start: prev, End: p}); err != nil {
		return Skipped
	}
	e.cur.SetPosition(prev)
	return Executed
}

func deleteForward(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	end := buffer.Position{Line: p.Line, Col: p.Col + 1}
	if p.Col >= e.buf.LineLen(p.Line) {
		if p.Line >= e.buf.LineCount()-1 {
			return Skipped
		}
		end = buffer.Position{Line: p.Line + 1}
	}
	if _, err := e.buf.Delete(buffer.Range{Start: p, End: end}); err != nil {
		return Skipped
	}
	e.cur.SetPosition(p)
	return Executed
}

// deleteWordBack is <c-w>: blanks before the cursor, then one word.
func deleteWordBack(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	if p.Col == 0 {
		return backspace(e, Args{})
	}
	line := e.buf.Runes(p.Line)
	col := p.Col
	for col > 0 && cursor.IsBlank(line[col-1]) {
		col--
	}
	if col > 0 {
		class := line[col-1]
		for col > 0 && !cursor.IsBlank(line[col-1]) && cursor.SameClass(line[col-1], class) {
			col--
		}
	}
	return e.deleteBack(col)
}

func deleteToLineStart(e *Engine, _ Args) ExecuteResult {
	if e.cur.Position().Col == 0 {
		return Skipped
	}
	return e.deleteBack(0)
}

// insertMove moves the cursor while inserting. The move closes the current
// undo step, so text typed before and after it undo separately.
func insertMove(id string, kind cursor.MotionKind, key string) *Command {
	return &Command{
		ID:     id,
		Kind:   KindMotion,
		Keys:   []string{key},
		Modes:  insertModes,
		Help:   "move without leaving the mode; starts a new undo step",
		Motion: kind,
		run: func(e *Engine, a Args) ExecuteResult {
			if _, ok := e.hist.Boundary(e.buf.Text(), e.cur.Position()); ok {
				e.commits++
			}
			e.replaced = nil
			before := e.cur.Position()
			if e.cur.MoveBy(cursor.Motion{Kind: kind, Count: a.Count}) == before {
				return Skipped
			}
			return Executed
		},
	}
}
