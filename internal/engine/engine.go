// Package engine is the modal editing engine: it turns key events into
// buffer edits, cursor moves and mode changes.
//
// An Engine owns its document exclusively. Keys are processed one at a time
// and each runs to completion before HandleKey returns. After every key a
// Snapshot is published for renderers; publishing never blocks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/history"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/search"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
	"github.com/Mulraeng/Vim-doc-editor/internal/pubsub"
	"github.com/Mulraeng/Vim-doc-editor/internal/tracing"
)

// Engine is one editing session over one document.
type Engine struct {
	cfg Config

	buf    *buffer.Buffer
	cur    *cursor.Model
	hist   *history.Manager
	modes  *mode.Controller
	search *search.Engine
	regs   registers

	table   []*Command
	keymaps map[mode.Mode]*keymap
	opmap   *keymap
	global  *keymap
	typing  map[mode.Mode]*Command

	d        dispatchState
	commits  int
	message  string
	replaced []rune
	modeSeen bool

	broker *pubsub.Broker[Snapshot]
	tracer trace.Tracer
}

// New creates an engine in Normal mode with the cursor at (0,0).
func New(cfg Config) (*Engine, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	buf := buffer.New(cfg.InitialText)
	e := &Engine{
		cfg:    cfg,
		buf:    buf,
		cur:    cursor.New(buf),
		hist:   history.NewManager(cfg.HistoryLimit),
		modes:  mode.NewController(cfg.EnabledModes...),
		search: search.New(cfg.Search),
		regs:   registers{sink: cfg.Clipboard},
		tracer: cfg.Tracer,
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer(tracing.ServiceName)
	}
	if cfg.SnapshotBuffer > 0 {
		e.broker = pubsub.NewBrokerWithBuffer[Snapshot](cfg.SnapshotBuffer)
	} else {
		e.broker = pubsub.NewBroker[Snapshot]()
	}

	e.installHooks()
	e.buildKeymaps()

	log.Debug(log.CatEngine, "engine created",
		"lines", buf.LineCount(), "timeout", cfg.KeyBufferTimeout, "modes", len(cfg.EnabledModes))
	return e, nil
}

func (e *Engine) installHooks() {
	for _, m := range []mode.Mode{mode.Insert, mode.Replace} {
		e.modes.OnEnter(m, func(_, to mode.Mode) {
			e.cur.SetPastEnd(true)
			e.replaced = nil
			e.hist.Begin(to.String(), e.buf.Text(), e.cur.Position())
		})
		// The cursor steps left before the group closes, so redo lands
		// where Escape left it.
		e.modes.OnExit(m, func(mode.Mode, mode.Mode) {
			if p := e.cur.Position(); p.Col > 0 {
				e.cur.SetPosition(buffer.Position{Line: p.Line, Col: p.Col - 1})
			}
			e.endGroup()
		})
	}
	for _, m := range []mode.Mode{mode.Visual, mode.VisualLine} {
		e.modes.OnEnter(m, func(from, _ mode.Mode) {
			if from == mode.Normal {
				e.cur.SetAnchor(e.cur.Position())
			}
		})
		e.modes.OnExit(m, func(_, to mode.Mode) {
			if to == mode.Normal {
				e.cur.CollapseToPoint()
			}
		})
	}
	e.modes.OnEnter(mode.Normal, func(mode.Mode, mode.Mode) {
		e.cur.SetPastEnd(false)
	})
	e.modes.OnChange(func(from, to mode.Mode) {
		e.modeSeen = true
		log.Debug(log.CatMode, "mode changed", "from", from, "to", to)
	})
}

// HandleKey processes one key event.
func (e *Engine) HandleKey(ev KeyEvent) Outcome {
	from := e.modes.Current()
	_, span := e.tracer.Start(context.Background(), tracing.SpanHandleKey,
		trace.WithAttributes(
			attribute.String(tracing.AttrKey, ev.Notation()),
			attribute.String(tracing.AttrMode, from.String()),
		))
	defer span.End()

	e.message = ""
	e.modeSeen = false

	out := e.dispatch(ev, e.cfg.Clock())

	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, out.Kind.String()),
		attribute.String(tracing.AttrCommand, out.CommandID),
	)
	if e.message != "" {
		span.SetAttributes(attribute.String(tracing.AttrMessage, e.message))
	}
	if e.modeSeen {
		span.AddEvent(tracing.EventModeChanged, trace.WithAttributes(
			attribute.String("from", from.String()),
			attribute.String("to", e.modes.Current().String()),
		))
	}
	e.publish()
	return out
}

// HandleKeys processes events in order and returns the last outcome.
func (e *Engine) HandleKeys(keys ...KeyEvent) Outcome {
	out := Outcome{Kind: Ignored}
	for _, k := range keys {
		out = e.HandleKey(k)
	}
	return out
}

// Run parses a key script and feeds it to the engine.
func (e *Engine) Run(script string) (Outcome, error) {
	keys, err := ParseKeys(script)
	if err != nil {
		return Outcome{Kind: Ignored}, fmt.Errorf("parsing keys: %w", err)
	}
	return e.HandleKeys(keys...), nil
}

// Tick resolves an incomplete sequence whose wait has run out. It reports
// whether anything was resolved.
func (e *Engine) Tick(now time.Time) (Outcome, bool) {
	if !e.expired(now) {
		return Outcome{Kind: Ignored}, false
	}
	_, span := e.tracer.Start(context.Background(), tracing.SpanTick)
	defer span.End()

	e.message = ""
	e.modeSeen = false
	out := e.expire()
	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, out.Kind.String()),
		attribute.String(tracing.AttrCommand, out.CommandID),
	)
	e.publish()
	return out, true
}

// Deadline returns when the pending sequence expires, if one is pending.
func (e *Engine) Deadline() (time.Time, bool) {
	if !e.d.waiting() {
		return time.Time{}, false
	}
	return e.d.last.Add(e.cfg.KeyBufferTimeout), true
}

// KeyBufferTimeout returns the configured wait between sequence keys.
func (e *Engine) KeyBufferTimeout() time.Duration {
	return e.cfg.KeyBufferTimeout
}

// Subscribe returns a channel of snapshots, one per processed key, until
// ctx is done.
func (e *Engine) Subscribe(ctx context.Context) <-chan pubsub.Event[Snapshot] {
	return e.broker.Subscribe(ctx)
}

// Broker exposes the snapshot broker for Bubble Tea listeners.
func (e *Engine) Broker() *pubsub.Broker[Snapshot] {
	return e.broker
}

// Close releases subscribers.
func (e *Engine) Close() {
	e.broker.Close()
}

func (e *Engine) publish() {
	snap := e.Snapshot()
	e.broker.Publish(pubsub.UpdatedEvent, snap)
	if e.modeSeen {
		e.broker.Publish(pubsub.ModeChangedEvent, snap)
	}
}

// Text returns the document.
func (e *Engine) Text() string { return e.buf.Text() }

// Mode returns the active mode.
func (e *Engine) Mode() mode.Mode { return e.modes.Current() }

// Cursor returns the primary cursor.
func (e *Engine) Cursor() buffer.Position { return e.cur.Position() }

// Register returns the unnamed register.
func (e *Engine) Register() Register { return e.regs.unnamed }

// Message returns the status message set by the last key.
func (e *Engine) Message() string { return e.message }

// HistoryDepth returns how many transactions can be undone.
func (e *Engine) HistoryDepth() int { return e.hist.Depth() }

// ExportHistory copies the undo log.
func (e *Engine) ExportHistory() history.Log { return e.hist.Export() }

// ImportHistory replaces the undo log. The document must be in the state
// the log was exported at.
func (e *Engine) ImportHistory(l history.Log) error {
	if e.hist.InGroup() {
		return errors.New("cannot import history while inserting")
	}
	return e.hist.Import(l)
}

// Reload replaces the document, for example after it changed on disk. The
// engine returns to Normal mode and the undo log is cleared.
func (e *Engine) Reload(text string) {
	e.reset()
	e.d.prompt = nil
	if e.modes.Current() != mode.Normal {
		_ = e.modes.Transition(mode.Normal)
	}
	e.hist.Clear()
	e.buf.SetText(text)
	e.cur.ClearSecondary()
	e.cur.SetPosition(e.cur.Position())
	log.Info(log.CatEngine, "document reloaded", "lines", e.buf.LineCount())
	e.publish()
}

// AddSelection adds a secondary selection from anchor to head, clamped to
// the document. Secondary selections follow edits through revalidation and
// are highlighted in snapshots; commands act on the primary only.
func (e *Engine) AddSelection(anchor, head buffer.Position) {
	e.cur.AddSelection(cursor.Selection{Anchor: anchor, Head: head})
	e.publish()
}

// ClearSelections drops every secondary selection.
func (e *Engine) ClearSelections() {
	e.cur.ClearSecondary()
	e.publish()
}

func (e *Engine) endGroup() {
	if _, ok := e.hist.End(e.buf.Text(), e.cur.Position()); ok {
		e.commits++
	}
}

func (e *Engine) record(label, before string, cursorBefore buffer.Position) {
	if _, ok := e.hist.Record(label, before, e.buf.Text(), cursorBefore, e.cur.Position()); ok {
		e.commits++
	}
}

// setMode switches modes, leaving Visual first when the table requires a
// stop in Normal. Failures become the status message.
func (e *Engine) setMode(to mode.Mode) bool {
	from := e.modes.Current()
	if from.IsVisual() && to.IsInsertLike() {
		if err := e.modes.Transition(mode.Normal); err != nil {
			e.message = err.Error()
			return false
		}
	}
	if err := e.modes.Transition(to); err != nil {
		log.Debug(log.CatMode, "mode change refused", "to", to, "error", err)
		e.message = err.Error()
		return false
	}
	return true
}
