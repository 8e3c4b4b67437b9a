package engine

import "github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"

// visualOperate applies op to the selection. Delete and yank return to
// Normal first; change goes on to Insert.
func visualOperate(op Operator) func(*Engine, Args) ExecuteResult {
	return func(e *Engine, _ Args) ExecuteResult {
		r := e.selectionRegion()
		if op != OpChange && !e.setMode(mode.Normal) {
			return Skipped
		}
		return e.operate(op, r)
	}
}

func visualCommands() []*Command {
	return []*Command{
		{ID: "visual.delete", Kind: KindEdit, Keys: []string{"d", "x", "<del>"}, Modes: visualModes,
			Help: "delete the selection", run: visualOperate(OpDelete)},
		{ID: "visual.yank", Kind: KindEdit, Keys: []string{"y"}, Modes: visualModes,
			Help: "yank the selection", run: visualOperate(OpYank)},
		{ID: "visual.change", Kind: KindEdit, Keys: []string{"c", "s"}, Modes: visualModes,
			Help: "change the selection", run: visualOperate(OpChange)},
		{ID: "visual.swap", Kind: KindMotion, Keys: []string{"o"}, Modes: visualModes,
			Help: "go to the other end of the selection",
			run: func(e *Engine, _ Args) ExecuteResult {
				e.cur.SwapAnchor()
				return Executed
			}},
		{ID: "visual.join", Kind: KindEdit, Keys: []string{"J"}, Modes: visualModes,
			Help: "join the selected lines",
			run: func(e *Engine, _ Args) ExecuteResult {
				rg := e.cur.Primary().Range()
				if !e.setMode(mode.Normal) {
					return Skipped
				}
				return e.joinLines(rg.Start.Line, max(rg.End.Line-rg.Start.Line+1, 2))
			}},
		{ID: "visual.escape", Kind: KindModeSwitch, Keys: []string{"<esc>"}, Modes: visualModes,
			Help: "return to Normal mode", run: toNormal},
	}
}
