package engine

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

// appended marks a Replace-mode character that was added at end of line
// rather than overwriting one.
const appended rune = -1

func replaceCommands() []*Command {
	return []*Command{
		{ID: "replace.backspace", Kind: KindEdit, Keys: []string{"<bs>"}, Modes: []mode.Mode{mode.Replace},
			Help: "undo the last overwrite", run: replaceBackspace},
	}
}

// replaceTextCommand overwrites the character under the cursor, or appends
// at end of line, remembering what was there for <bs>.
func replaceTextCommand() *Command {
	return &Command{
		ID:    "replace.text",
		Kind:  KindEdit,
		Keys:  []string{"{char}"},
		Modes: []mode.Mode{mode.Replace},
		Help:  "overwrite the character under the cursor",
		run: func(e *Engine, a Args) ExecuteResult {
			p := e.cur.Position()
			old := appended
			if r, ok := e.buf.RuneAt(p); ok {
				old = r
				if _, err := e.buf.Delete(buffer.Range{Start: p, End: buffer.Position{Line: p.Line, Col: p.Col + 1}}); err != nil {
					return Skipped
				}
			}
			end, err := e.buf.Insert(p, string(a.Char))
			if err != nil {
				return Skipped
			}
			e.replaced = append(e.replaced, old)
			e.cur.SetPosition(end)
			return Executed
		},
	}
}

// replaceBackspace moves left, restoring the character the last typed one
// replaced. With nothing typed it only moves.
func replaceBackspace(e *Engine, _ Args) ExecuteResult {
	p := e.cur.Position()
	if p.Col == 0 {
		return Skipped
	}
	prev := buffer.Position{Line: p.Line, Col: p.Col - 1}
	if len(e.replaced) == 0 {
		e.cur.SetPosition(prev)
		return Executed
	}

	old := e.replaced[len(e.replaced)-1]
	e.replaced = e.replaced[:len(e.replaced)-1]
	if _, err := e.buf.Delete(buffer.Range{Start: prev, End: p}); err != nil {
		return Skipped
	}
	if old != appended {
		if _, err := e.buf.Insert(prev, string(old)); err != nil {
			return Skipped
		}
	}
	e.cur.SetPosition(prev)
	return Executed
}
