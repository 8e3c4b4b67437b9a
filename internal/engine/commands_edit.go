package engine

import (
	"strings"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

var normalOnly = []mode.Mode{mode.Normal}

func editCommands() []*Command {
	return []*Command{
		{ID: "operator.delete", Kind: KindOperator, Keys: []string{"d"}, Modes: normalOnly, Operator: OpDelete,
			Help: "delete {motion}; dd deletes lines"},
		{ID: "operator.change", Kind: KindOperator, Keys: []string{"c"}, Modes: normalOnly, Operator: OpChange,
			Help: "change {motion}; cc changes lines"},
		{ID: "operator.yank", Kind: KindOperator, Keys: []string{"y"}, Modes: normalOnly, Operator: OpYank,
			Help: "yank {motion}; yy yanks lines"},

		{ID: "delete.char", Kind: KindEdit, Keys: []string{"x", "<del>"}, Modes: normalOnly,
			Help: "delete character under the cursor", run: deleteChars},
		{ID: "delete.char_before", Kind: KindEdit, Keys: []string{"X"}, Modes: normalOnly,
			Help: "delete character before the cursor", run: deleteCharsBefore},
		{ID: "delete.to_eol", Kind: KindEdit, Keys: []string{"D"}, Modes: normalOnly,
			Help: "delete to end of line", run: deleteToEOL},
		{ID: "change.to_eol", Kind: KindEdit, Keys: []string{"C"}, Modes: normalOnly,
			Help: "change to end of line", run: changeToEOL},
		{ID: "yank.line", Kind: KindEdit, Keys: []string{"Y"}, Modes: normalOnly,
			Help: "yank lines", run: yankLines},
		{ID: "paste.after", Kind: KindEdit, Keys: []string{"p"}, Modes: normalOnly,
			Help: "paste after the cursor or below the line",
			run: func(e *Engine, a Args) ExecuteResult { return e.paste(true, a.N()) }},
		{ID: "paste.before", Kind: KindEdit, Keys: []string{"P"}, Modes: normalOnly,
			Help: "paste before the cursor or above the line",
			run: func(e *Engine, a Args) ExecuteResult { return e.paste(false, a.N()) }},
		{ID: "join.lines", Kind: KindEdit, Keys: []string{"J"}, Modes: normalOnly,
			Help: "join lines",
			run: func(e *Engine, a Args) ExecuteResult {
				return e.joinLines(e.cur.Position().Line, max(a.N(), 2))
			}},
		{ID: "replace.char", Kind: KindEdit, Keys: []string{"r"}, Modes: normalOnly, TakesChar: true,
			Help: "replace characters under the cursor with {char}", run: replaceChars},
	}
}

func deleteChars(e *Engine, a Args) ExecuteResult {
	p := e.cur.Position()
	n := e.buf.LineLen(p.Line)
	if n == 0 {
		return Skipped
	}
	return e.operate(OpDelete, region{start: p, end: buffer.Position{Line: p.Line, Col: min(p.Col+a.N(), n)}})
}

func deleteCharsBefore(e *Engine, a Args) ExecuteResult {
	p := e.cur.Position()
	if p.Col == 0 {
		return Skipped
	}
	return e.operate(OpDelete, region{start: buffer.Position{Line: p.Line, Col: max(p.Col-a.N(), 0)}, end: p})
}

func deleteToEOL(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	return e.operate(OpDelete, region{start: p, end: buffer.Position{Line: p.Line, Col: e.buf.LineLen(p.Line)}})
}

func changeToEOL(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	return e.operate(OpChange, region{start: p, end: buffer.Position{Line: p.Line, Col: e.buf.LineLen(p.Line)}})
}

func yankLines(e *Engine, a Args) ExecuteResult {
	line := e.cur.Position().Line
	return e.operateLines(OpYank, line, min(line+a.N()-1, e.buf.LineCount()-1))
}

// replaceChars is r{c}: the count must fit on the line.
func replaceChars(e *Engine, a Args) ExecuteResult {
	p := e.cur.Position()
	n := a.N()
	if p.Col+n > e.buf.LineLen(p.Line) {
		return Skipped
	}
	rg := buffer.Range{Start: p, End: buffer.Position{Line: p.Line, Col: p.Col + n}}
	if _, err := e.buf.Delete(rg); err != nil {
		return Skipped
	}
	if _, err := e.buf.Insert(p, strings.Repeat(string(a.Char), n)); err != nil {
		return Skipped
	}
	e.cur.SetPosition(buffer.Position{Line: p.Line, Col: p.Col + n - 1})
	return Executed
}

// joinLines joins count lines starting at line into one. Leading blanks of
// each joined line are dropped and a single space separates the parts,
// except around an empty part.
func (e *Engine) joinLines(line, count int) ExecuteResult {
	last := e.buf.LineCount() - 1
	if line >= last {
		return Skipped
	}
	joinCol := 0
	for range count - 1 {
		if line >= e.buf.LineCount()-1 {
			break
		}
		cur := e.buf.Runes(line)
		next := e.buf.Runes(line + 1)
		trimmed := e.buf.FirstNonBlank(line + 1)

		end := len(cur)
		for end > 0 && (cur[end-1] == ' ' || cur[end-1] == '\t') {
			end--
		}
		sep := " "
		if end == 0 || trimmed == len(next) || next[trimmed] == ')' {
			sep = ""
		}
		rg := buffer.Range{
			Start: buffer.Position{Line: line, Col: end},
			End:   buffer.Position{Line: line + 1, Col: trimmed},
		}
		if _, err := e.buf.Delete(rg); err != nil {
			return Skipped
		}
		if _, err := e.buf.Insert(rg.Start, sep); err != nil {
			return Skipped
		}
		joinCol = end
	}
	e.cur.SetPosition(buffer.Position{Line: line, Col: joinCol})
	return Executed
}
