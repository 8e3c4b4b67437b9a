package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/search"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// OutcomeKind is the result class of one key.
type OutcomeKind int

const (
	// Consumed means a command resolved and ran, or was cancelled.
	Consumed OutcomeKind = iota
	// BufferedAwaitingMore means the key was kept towards a longer command.
	BufferedAwaitingMore
	// Ignored means the key is not a command here.
	Ignored
)

func (k OutcomeKind) String() string {
	switch k {
	case Consumed:
		return "consumed"
	case BufferedAwaitingMore:
		return "buffered"
	default:
		return "ignored"
	}
}

// Outcome reports what HandleKey did. CommandID is set when Consumed.
type Outcome struct {
	Kind      OutcomeKind
	CommandID string
}

func (o Outcome) String() string {
	if o.Kind == Consumed {
		return "consumed(" + o.CommandID + ")"
	}
	return o.Kind.String()
}

var (
	buffered = Outcome{Kind: BufferedAwaitingMore}
	ignored  = Outcome{Kind: Ignored}
)

func consumed(id string) Outcome {
	return Outcome{Kind: Consumed, CommandID: id}
}

const maxCount = 99999

type dispatchState struct {
	keys    []KeyEvent
	count   int
	op      *Command
	opCount int
	charCmd *Command
	prompt  *prompt
	last    time.Time
}

// waiting reports whether keys are held subject to the timeout. Character
// arguments and the search prompt wait without limit.
func (d *dispatchState) waiting() bool {
	if d.charCmd != nil || d.prompt != nil {
		return false
	}
	return len(d.keys) > 0 || d.op != nil || d.count > 0
}

type prompt struct {
	dir   search.Direction
	text  []rune
	count int
}

func (p *prompt) String() string {
	lead := "/"
	if p.dir == search.Backward {
		lead = "?"
	}
	return lead + string(p.text)
}

// reset drops every partial command except an open search prompt.
func (e *Engine) reset() {
	e.d.keys = nil
	e.d.count = 0
	e.d.op = nil
	e.d.opCount = 0
	e.d.charCmd = nil
}

func (e *Engine) pending() string {
	var b strings.Builder
	if e.d.opCount > 0 {
		b.WriteString(strconv.Itoa(e.d.opCount))
	}
	if e.d.op != nil {
		b.WriteString(e.d.op.Keys[0])
	}
	if e.d.count > 0 {
		b.WriteString(strconv.Itoa(e.d.count))
	}
	b.WriteString(FormatKeys(e.d.keys))
	if e.d.charCmd != nil {
		b.WriteString(e.d.charCmd.Keys[0])
	}
	return b.String()
}

func (e *Engine) keymap() *keymap {
	if e.d.op != nil {
		return e.opmap
	}
	return e.keymaps[e.modes.Current()]
}

func (e *Engine) expired(now time.Time) bool {
	return e.d.waiting() && now.Sub(e.d.last) >= e.cfg.KeyBufferTimeout
}

func (e *Engine) dispatch(ev KeyEvent, now time.Time) Outcome {
	if e.d.prompt != nil {
		return e.promptKey(ev)
	}
	if e.expired(now) {
		e.expire()
	}
	e.d.last = now
	return e.feed(ev)
}

// feed resolves ev against whatever is already pending.
func (e *Engine) feed(ev KeyEvent) Outcome {
	if e.d.charCmd != nil {
		return e.charKey(ev)
	}

	m := e.modes.Current()
	n := ev.Notation()

	if (n == "<esc>" || n == "<c-c>") && !m.IsInsertLike() && e.d.waiting() {
		log.Debug(log.CatDispatch, "pending keys cancelled", "pending", e.pending())
		e.reset()
		return consumed("cancel")
	}

	if len(e.d.keys) == 0 && !m.IsInsertLike() && ev.IsDigit() && (n != "0" || e.d.count > 0) {
		e.d.count = min(e.d.count*10+int(n[0]-'0'), maxCount)
		return buffered
	}

	e.d.keys = append(e.d.keys, ev)
	cmd, longer := e.keymap().lookup(notations(e.d.keys))
	switch {
	case cmd != nil && !longer:
		e.d.keys = nil
		return e.run(cmd)
	case longer:
		log.Debug(log.CatDispatch, "sequence buffered", "keys", FormatKeys(e.d.keys), "mode", m)
		return buffered
	case len(e.d.keys) > 1:
		return e.unmatched()
	}
	e.d.keys = nil
	return e.fallback(ev)
}

// unmatched handles a buffered sequence that the latest key failed to
// extend: the longest complete command in it runs, then the remaining keys
// are fed again.
func (e *Engine) unmatched() Outcome {
	keys := e.d.keys
	e.d.keys = nil

	var out Outcome
	cmd, n := e.keymap().longest(notations(keys))
	if cmd != nil {
		out = e.run(cmd)
	} else {
		if e.d.op != nil {
			log.Debug(log.CatDispatch, "operator discarded", "keys", FormatKeys(keys))
			e.reset()
			return ignored
		}
		out, n = e.fallback(keys[0]), 1
	}
	for _, k := range keys[n:] {
		out = e.feed(k)
	}
	return out
}

// fallback handles a single key with no binding in the active keymap:
// global bindings first, then text entry in Insert and Replace.
func (e *Engine) fallback(ev KeyEvent) Outcome {
	if cmd, _ := e.global.lookup([]string{ev.Notation()}); cmd != nil {
		return e.run(cmd)
	}
	if e.d.op != nil {
		log.Debug(log.CatDispatch, "operator discarded", "key", ev.Notation())
		e.reset()
		return ignored
	}
	if e.modes.Current().IsInsertLike() {
		if r, ok := ev.Rune(); ok {
			return e.exec(e.typeCmd(), Args{Char: r})
		}
	}
	e.reset()
	return ignored
}

// expire resolves what is pending after the timeout: the longest complete
// command runs, unmatched Insert-mode keys are typed, an operator still
// waiting for its range is dropped.
func (e *Engine) expire() Outcome {
	keys := e.d.keys
	e.d.keys = nil
	out := ignored

	for len(keys) > 0 {
		cmd, n := e.keymap().longest(notations(keys))
		if cmd != nil {
			out = e.run(cmd)
			keys = keys[n:]
			continue
		}
		if e.d.op != nil {
			break
		}
		out = e.fallback(keys[0])
		keys = keys[1:]
	}

	if e.d.op != nil || e.d.count > 0 {
		log.Debug(log.CatDispatch, "pending command expired", "pending", e.pending())
	}
	if e.d.charCmd == nil {
		e.reset()
	}
	return out
}

func (e *Engine) takeCount() int {
	c := e.d.count
	e.d.count = 0
	return c
}

func (e *Engine) run(cmd *Command) Outcome {
	if cmd.TakesChar {
		e.d.charCmd = cmd
		return buffered
	}
	return e.exec(cmd, Args{Count: e.takeCount()})
}

func (e *Engine) charKey(ev KeyEvent) Outcome {
	cmd := e.d.charCmd
	e.d.charCmd = nil

	r, ok := ev.Rune()
	if !ok && ev.Notation() == "<tab>" {
		r, ok = '\t', true
	}
	if !ok {
		e.reset()
		if n := ev.Notation(); n == "<esc>" || n == "<c-c>" {
			return consumed("cancel")
		}
		return ignored
	}
	return e.exec(cmd, Args{Count: e.takeCount(), Char: r})
}

func (e *Engine) exec(cmd *Command, a Args) Outcome {
	if e.d.op != nil {
		return e.applyOperator(cmd, a)
	}
	if cmd.Kind == KindOperator {
		e.d.op = cmd
		e.d.opCount = a.Count
		log.Debug(log.CatDispatch, "operator pending", "op", cmd.ID)
		return buffered
	}

	res := cmd.Execute(e, a)
	if res == Skipped {
		log.Debug(log.CatDispatch, "command skipped", "id", cmd.ID)
	}
	if e.d.prompt != nil {
		return buffered
	}
	if !e.cfg.UndoPerKeystroke || !e.modes.Current().IsInsertLike() {
		return consumed(cmd.ID)
	}
	if _, ok := e.hist.Boundary(e.buf.Text(), e.cur.Position()); ok {
		e.commits++
	}
	return consumed(cmd.ID)
}

func (e *Engine) promptKey(ev KeyEvent) Outcome {
	p := e.d.prompt
	switch ev.Notation() {
	case "<esc>", "<c-c>":
		e.d.prompt = nil
		e.reset()
		return consumed("search.cancel")
	case "<bs>":
		if len(p.text) == 0 {
			e.d.prompt = nil
			e.reset()
			return consumed("search.cancel")
		}
		p.text = p.text[:len(p.text)-1]
		return buffered
	case "<cr>":
		e.d.prompt = nil
		id := "search.forward"
		if p.dir == search.Backward {
			id = "search.backward"
		}
		return e.exec(e.promptSearch(id, string(p.text), p.dir), Args{Count: p.count})
	}
	if r, ok := ev.Rune(); ok {
		p.text = append(p.text, r)
	}
	return buffered
}

func (e *Engine) openPrompt(dir search.Direction, count int) {
	e.d.prompt = &prompt{dir: dir, count: count}
}

// visual reports whether motions extend the selection.
func (e *Engine) visual() bool {
	return e.modes.Current().IsVisual()
}

// modeKeys lists modes for keymap construction.
var modeKeys = []mode.Mode{mode.Normal, mode.Insert, mode.Visual, mode.VisualLine, mode.Replace}
