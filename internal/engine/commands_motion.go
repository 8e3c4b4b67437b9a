package engine

import "github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"

func motionCommand(id string, kind cursor.MotionKind, help string, keys ...string) *Command {
	c := &Command{
		ID:     id,
		Kind:   KindMotion,
		Keys:   keys,
		Modes:  normalAndVisual,
		Help:   help,
		Motion: kind,
	}
	c.run = func(e *Engine, a Args) ExecuteResult {
		return e.move(c, a)
	}
	return c
}

func motionCommands() []*Command {
	find := func(id string, kind cursor.MotionKind, help, key string) *Command {
		c := motionCommand(id, kind, help, key)
		c.TakesChar = true
		return c
	}
	repeat := func(id string, reverse bool, help, key string) *Command {
		c := motionCommand(id, 0, help, key)
		c.repeatFind = true
		c.reverse = reverse
		return c
	}

	return []*Command{
		motionCommand("move.left", cursor.CharLeft, "left", "h", "<left>"),
		motionCommand("move.down", cursor.LineDown, "down", "j", "<down>"),
		motionCommand("move.up", cursor.LineUp, "up", "k", "<up>"),
		motionCommand("move.right", cursor.CharRight, "right", "l", "<right>"),
		motionCommand("move.word_forward", cursor.WordForward, "start of next word", "w"),
		motionCommand("move.word_backward", cursor.WordBackward, "start of previous word", "b"),
		motionCommand("move.word_end", cursor.WordEnd, "end of word", "e"),
		motionCommand("move.line_start", cursor.LineStart, "line start", "0", "<home>"),
		motionCommand("move.first_non_blank", cursor.FirstNonBlank, "first non-blank character", "^"),
		motionCommand("move.line_end", cursor.LineEnd, "line end", "$", "<end>"),
		motionCommand("move.first_line", cursor.DocumentStart, "first line, or line N", "gg"),
		motionCommand("move.last_line", cursor.DocumentEnd, "last line, or line N", "G"),
		find("move.find_forward", cursor.FindForward, "to next {char}", "f"),
		find("move.find_backward", cursor.FindBackward, "to previous {char}", "F"),
		find("move.till_forward", cursor.TillForward, "before next {char}", "t"),
		find("move.till_backward", cursor.TillBackward, "after previous {char}", "T"),
		repeat("move.repeat_find", false, "repeat last f, F, t or T", ";"),
		repeat("move.repeat_find_reverse", true, "repeat last f, F, t or T backwards", ","),
	}
}
