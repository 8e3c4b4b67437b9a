package engine

import (
	"slices"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

var (
	normalAndVisual = []mode.Mode{mode.Normal, mode.Visual, mode.VisualLine}
	visualModes     = []mode.Mode{mode.Visual, mode.VisualLine}
	insertModes     = []mode.Mode{mode.Insert, mode.Replace}
)

// commandTable returns every command bound in the per-mode keymaps.
func (e *Engine) commandTable() []*Command {
	var table []*Command
	table = append(table, motionCommands()...)
	table = append(table, textObjectCommands()...)
	table = append(table, editCommands()...)
	table = append(table, modeCommands()...)
	table = append(table, insertCommands(e.cfg.InsertEscape)...)
	table = append(table, replaceCommands()...)
	table = append(table, visualCommands()...)
	table = append(table, historyCommands()...)
	table = append(table, searchCommands()...)
	return table
}

// buildKeymaps binds the command table. Motions, text objects, searches and
// the operators themselves are also bound in the operator-pending map.
func (e *Engine) buildKeymaps() {
	e.table = e.commandTable()
	e.keymaps = make(map[mode.Mode]*keymap, len(modeKeys))
	for _, m := range modeKeys {
		e.keymaps[m] = newKeymap()
	}
	e.opmap = newKeymap()
	e.global = newKeymap()

	for _, c := range e.table {
		for _, keys := range c.Keys {
			seq := notations(MustParseKeys(keys))
			for _, m := range c.Modes {
				e.keymaps[m].bind(seq, c)
			}
			if operand(c) {
				e.opmap.bind(seq, c)
			}
		}
	}

	esc := escapeCommand()
	e.global.bind([]string{"<c-c>"}, esc)
	e.table = append(e.table, esc)

	e.typing = map[mode.Mode]*Command{
		mode.Insert:  insertTextCommand(),
		mode.Replace: replaceTextCommand(),
	}

	log.Debug(log.CatEngine, "keymaps built", "commands", len(e.table))
}

// operand reports whether c can follow an operator: text objects, and the
// motions, searches and operators of Normal mode.
func operand(c *Command) bool {
	switch c.Kind {
	case KindTextObject:
		return true
	case KindMotion, KindSearch, KindOperator:
		return slices.Contains(c.Modes, mode.Normal)
	}
	return false
}

// typeCmd is the command typing a printable key in the current mode.
func (e *Engine) typeCmd() *Command {
	return e.typing[e.modes.Current()]
}

// Commands lists the command table, for help output.
func (e *Engine) Commands() []*Command {
	out := make([]*Command, 0, len(e.table)+len(e.typing))
	out = append(out, e.table...)
	for _, m := range insertModes {
		if c, ok := e.typing[m]; ok {
			out = append(out, c)
		}
	}
	return out
}

// escapeCommand is <c-c>: Escape in every mode.
func escapeCommand() *Command {
	return &Command{
		ID:    "escape",
		Kind:  KindModeSwitch,
		Keys:  []string{"<c-c>"},
		Modes: mode.All,
		Help:  "return to Normal mode",
		run: func(e *Engine, _ Args) ExecuteResult {
			if e.modes.Current() == mode.Normal {
				return Skipped
			}
			if !e.setMode(mode.Normal) {
				return Skipped
			}
			return Executed
		},
	}
}
