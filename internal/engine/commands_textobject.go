package engine

import "github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"

var objectNames = []struct {
	object rune
	name   string
}{
	{'w', "word"},
	{'W', "WORD"},
	{'"', "double quotes"},
	{'\'', "single quotes"},
	{'(', "parentheses"},
	{')', "parentheses"},
	{'b', "any brackets"},
	{'[', "square brackets"},
	{']', "square brackets"},
	{'{', "braces"},
	{'}', "braces"},
}

// textObjectCommands returns iw, aw, i", a" and so on. In the visual modes
// they select; after an operator they supply its range.
func textObjectCommands() []*Command {
	var cmds []*Command
	for _, o := range objectNames {
		for _, inner := range []bool{true, false} {
			key, help := "a"+string(o.object), "around "+o.name
			if inner {
				key, help = "i"+string(o.object), "inside "+o.name
			}
			c := &Command{
				ID:     "object." + key,
				Kind:   KindTextObject,
				Keys:   []string{key},
				Modes:  visualModes,
				Help:   help,
				Object: o.object,
				Inner:  inner,
			}
			c.run = func(e *Engine, _ Args) ExecuteResult {
				r, ok := e.objectRegion(c)
				if !ok {
					return Skipped
				}
				return e.selectRegion(r)
			}
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// selectRegion makes r the visual selection. An empty region, such as i"
// on `""`, leaves the selection alone.
func (e *Engine) selectRegion(r region) ExecuteResult {
	if !r.start.Less(r.end) {
		return Skipped
	}
	e.cur.SetAnchor(r.start)
	e.cur.SetHead(buffer.Position{Line: r.end.Line, Col: r.end.Col - 1})
	return Executed
}
