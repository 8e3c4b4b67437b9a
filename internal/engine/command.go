package engine

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

// Kind distinguishes the command variants. Motions and text objects only
// move or select; operators wait for a range; the rest act immediately.
type Kind int

const (
	KindMotion Kind = iota
	KindTextObject
	KindOperator
	KindModeSwitch
	KindEdit
	KindHistory
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindMotion:
		return "motion"
	case KindTextObject:
		return "textobject"
	case KindOperator:
		return "operator"
	case KindModeSwitch:
		return "mode"
	case KindEdit:
		return "edit"
	case KindHistory:
		return "history"
	case KindSearch:
		return "search"
	}
	return "unknown"
}

// ExecuteResult reports whether a command did its work.
type ExecuteResult int

const (
	// Executed means the command ran.
	Executed ExecuteResult = iota
	// Skipped means a precondition failed, e.g. x on an empty line.
	Skipped
)

// Operator is the action held while waiting for a motion.
type Operator int

const (
	OpNone Operator = iota
	OpDelete
	OpChange
	OpYank
)

// Args carries the count and character argument typed with a command.
// Count is zero when no count was typed.
type Args struct {
	Count int
	Char  rune
}

// N returns the count, defaulting to 1.
func (a Args) N() int {
	return max(a.Count, 1)
}

// Command is one entry of the command table.
type Command struct {
	ID    string
	Kind  Kind
	Keys  []string
	Modes []mode.Mode
	Help  string

	// Motion is the cursor motion of a KindMotion command.
	Motion cursor.MotionKind
	// Operator is the action of a KindOperator command.
	Operator Operator
	// Object and Inner describe a KindTextObject command, e.g. '(' and true
	// for "i(".
	Object rune
	Inner  bool
	// TakesChar makes the dispatcher wait for one more character (f, r).
	TakesChar bool

	// seek replaces the cursor motion for search jumps (n, N, /pattern).
	seek func(e *Engine, a Args) (buffer.Position, bool)
	// repeatFind replays the last f/F/t/T, reversed for ",".
	repeatFind bool
	reverse    bool

	run func(e *Engine, a Args) ExecuteResult
}

// Execute runs the command. Text changes made outside an open history group
// are committed as one transaction labelled with the command ID.
func (c *Command) Execute(e *Engine, a Args) ExecuteResult {
	if c.run == nil {
		return Skipped
	}
	if c.Kind == KindMotion || c.Kind == KindSearch || c.Kind == KindHistory || e.hist.InGroup() {
		return c.run(e, a)
	}

	before := e.buf.Text()
	cursorBefore := e.cur.Position()
	commits := e.commits

	res := c.run(e, a)

	if e.commits == commits && !e.hist.InGroup() {
		e.record(c.ID, before, cursorBefore)
	}
	return res
}

func (c *Command) motion(a Args) cursor.Motion {
	return cursor.Motion{Kind: c.Motion, Count: a.Count, Char: a.Char}
}

// target is where a motion lands and how an operator treats the span.
type target struct {
	pos       buffer.Position
	linewise  bool
	inclusive bool
}

func (c *Command) target(e *Engine, a Args, forOperator bool) (target, bool) {
	if c.seek != nil {
		p, ok := c.seek(e, a)
		return target{pos: p}, ok
	}

	mo := c.motion(a)
	if c.repeatFind {
		last, ok := e.cur.RepeatFind(c.reverse)
		if !ok {
			return target{}, false
		}
		last.Count = a.Count
		mo = last
	}

	var (
		p  buffer.Position
		ok bool
	)
	if forOperator {
		p, ok = e.cur.OperatorTarget(mo)
	} else {
		p, ok = e.cur.Target(mo)
	}
	return target{pos: p, linewise: mo.Linewise(), inclusive: mo.Inclusive()}, ok
}

// move runs a motion command: the cursor moves in Normal mode, the
// selection head moves in the visual modes. A motion that cannot move, like
// h in column 0 or f without a match, is Skipped.
func (e *Engine) move(c *Command, a Args) ExecuteResult {
	before := e.cur.Position()

	if c.seek != nil {
		p, ok := c.seek(e, a)
		if !ok {
			return Skipped
		}
		if e.visual() {
			e.cur.SetHead(p)
		} else {
			e.cur.SetPosition(p)
		}
		return Executed
	}

	mo := c.motion(a)
	if c.repeatFind {
		last, ok := e.cur.RepeatFind(c.reverse)
		if !ok {
			return Skipped
		}
		last.Count = a.Count
		mo = last
	}
	if e.visual() {
		e.cur.ExtendSelection(mo)
	} else {
		e.cur.MoveBy(mo)
	}
	if e.cur.Position() == before {
		return Skipped
	}
	return Executed
}
