// Package editor is the terminal shell around the modal editing engine. It
// turns Bubble Tea key messages into engine keys, renders snapshots, and
// owns everything the engine leaves to its collaborators: saving, the undo
// file and external change notices.
package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mulraeng/Vim-doc-editor/internal/config"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/infrastructure/sqlite"
	"github.com/Mulraeng/Vim-doc-editor/internal/keys"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
	"github.com/Mulraeng/Vim-doc-editor/internal/pubsub"
	"github.com/Mulraeng/Vim-doc-editor/internal/watcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a new editor model.
type Options struct {
	// Path is the edited file. Empty edits an unnamed scratch document.
	Path string
	// Text is the initial document, normally read with ReadDocument.
	Text string
	// Engine configures the modal engine. InitialText is replaced by Text.
	Engine engine.Config
	UI     config.UIConfig
	// Store persists undo history across sessions. Nil disables it.
	Store *sqlite.UndoRepository
	// Watch reports external changes to Path.
	Watch bool
	Keys  keys.KeyMap
}

type tickMsg time.Time

type savedMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model of the editor shell.
type Model struct {
	ctx  context.Context
	eng  *engine.Engine
	snap engine.Snapshot

	path      string
	savedText string
	store     *sqlite.UndoRepository

	keys      keys.KeyMap
	help      help.Model
	ui        config.UIConfig
	fullHelp  bool
	showLog   bool
	quitArmed bool

	width  int
	height int
	top    int
	left   int

	notice  string
	lastLog string

	snapshots *pubsub.ContinuousListener[engine.Snapshot]
	logs      *log.LogListener
	watch     *watcher.Watcher
	changes   <-chan watcher.Change
}

// New builds the engine for opts and restores the undo file when one
// matches the document.
func New(ctx context.Context, opts Options) (Model, error) {
	cfg := opts.Engine
	cfg.InitialText = opts.Text
	eng, err := engine.New(cfg)
	if err != nil {
		return Model{}, fmt.Errorf("creating engine: %w", err)
	}

	km := opts.Keys
	if len(km.Quit.Keys()) == 0 {
		km = keys.DefaultKeyMap()
	}

	m := Model{
		ctx:       ctx,
		eng:       eng,
		path:      opts.Path,
		savedText: opts.Text,
		store:     opts.Store,
		keys:      km,
		help:      help.New(),
		ui:        opts.UI,
		width:     defaultWidth,
		height:    defaultHeight,
		snapshots: pubsub.NewLatestListener[engine.Snapshot](ctx, eng.Broker()),
		logs:      log.NewListener(ctx),
	}
	m.restoreHistory()

	if opts.Watch && opts.Path != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.Path))
		if err != nil {
			eng.Close()
			return Model{}, fmt.Errorf("watching %s: %w", opts.Path, err)
		}
		changes, err := w.Start()
		if err != nil {
			eng.Close()
			return Model{}, fmt.Errorf("watching %s: %w", opts.Path, err)
		}
		m.watch, m.changes = w, changes
	}

	m.snap = eng.Snapshot()
	return m, nil
}

func (m *Model) restoreHistory() {
	if m.store == nil || m.path == "" {
		return
	}
	l, err := m.store.Load(m.ctx, m.path, sqlite.ContentHash(m.savedText))
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		return
	case errors.Is(err, sqlite.ErrStale):
		log.Info(log.CatStore, "discarded stale undo log", "path", m.path)
		return
	case err != nil:
		log.ErrorErr(log.CatStore, "loading undo log failed", err, "path", m.path)
		return
	}
	if err := m.eng.ImportHistory(l); err != nil {
		log.ErrorErr(log.CatStore, "restoring undo log failed", err, "path", m.path)
		return
	}
	log.Debug(log.CatStore, "undo log restored", "path", m.path, "depth", m.eng.HistoryDepth())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.snapshots.Listen()}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	if m.changes != nil {
		cmds = append(cmds, m.watchCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if _, ok := m.eng.Tick(time.Time(msg)); ok {
			m.refresh()
		}
		return m, m.scheduleTick()

	case savedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "save failed", msg.err, "path", m.path)
			m.notice = msg.err.Error()
			return m, nil
		}
		m.savedText = msg.text
		m.notice = fmt.Sprintf("%q %dL written", filepath.Base(m.path), strings.Count(msg.text, "\n")+1)
		return m, nil

	case pubsub.Event[engine.Snapshot]:
		m.refresh()
		return m, m.snapshots.Listen()

	case pubsub.Event[string]:
		m.lastLog = strings.TrimRight(msg.Payload, "\n")
		if m.logs == nil {
			return m, nil
		}
		return m, m.logs.Listen()

	case pubsub.Event[watcher.Change]:
		m.externalChange(msg.Payload)
		return m, m.watchCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	armed := m.quitArmed
	m.quitArmed = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() && !armed {
			m.quitArmed = true
			m.notice = "unsaved changes, press " + m.keys.Quit.Help().Key + " again to quit"
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		if m.path == "" {
			m.notice = "no file name"
			return m, nil
		}
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.fullHelp = !m.fullHelp
		m.scroll()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLog):
		m.showLog = !m.showLog
		m.scroll()
		return m, nil
	}

	events := keyEvents(msg)
	if len(events) == 0 {
		return m, nil
	}
	m.notice = ""
	m.eng.HandleKeys(events...)
	m.refresh()
	return m, m.scheduleTick()
}

// scheduleTick arms a timer for the pending sequence, if any. Stale ticks
// are harmless: the engine ignores a tick before the deadline.
func (m Model) scheduleTick() tea.Cmd {
	deadline, ok := m.eng.Deadline()
	if !ok {
		return nil
	}
	return tea.Tick(time.Until(deadline), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refresh() {
	m.snap = m.eng.Snapshot()
	m.scroll()
}

// saveCmd writes the document and its undo log. The log is only stored
// outside an insert session, when it describes the saved text exactly.
func (m Model) saveCmd() tea.Cmd {
	ctx, path, text, store := m.ctx, m.path, m.snap.Text, m.store
	if m.snap.Mode.IsInsertLike() {
		store = nil
	}
	hist := m.eng.ExportHistory()
	return func() tea.Msg {
		if err := WriteDocument(path, text); err != nil {
			return savedMsg{err: err}
		}
		if store != nil {
			if err := store.Save(ctx, path, sqlite.ContentHash(text), hist); err != nil {
				log.ErrorErr(log.CatStore, "saving undo log failed", err, "path", path)
			}
		}
		log.Info(log.CatUI, "document saved", "path", path, "bytes", len(text))
		return savedMsg{text: text}
	}
}

func (m Model) watchCmd() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return pubsub.ForwardCmd(m.ctx, m.changes, pubsub.ExternalChangeEvent)
}

// externalChange reloads a clean document that changed on disk. A dirty
// document is kept and the user is told instead.
func (m *Model) externalChange(c watcher.Change) {
	if c.Removed {
		m.notice = "file removed on disk"
		return
	}
	text, err := ReadDocument(m.path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "reading changed file failed", err, "path", m.path)
		m.notice = err.Error()
		return
	}
	if text == m.savedText {
		return
	}
	if m.Dirty() {
		m.notice = "file changed on disk, " + m.keys.Save.Help().Key + " overwrites it"
		return
	}
	m.eng.Reload(text)
	m.savedText = text
	m.notice = "reloaded from disk"
	m.refresh()
}

// Close stops the file watcher and releases engine subscribers.
func (m Model) Close() {
	if m.watch != nil {
		if err := m.watch.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "stopping watcher failed", err)
		}
	}
	m.eng.Close()
}

// Dirty reports whether the document differs from the last save.
func (m Model) Dirty() bool {
	return m.snap.Text != m.savedText
}

// Text returns the current document.
func (m Model) Text() string {
	return m.snap.Text
}

// Mode returns the engine's active mode.
func (m Model) Mode() mode.Mode {
	return m.snap.Mode
}

// Snapshot returns the last rendered engine state.
func (m Model) Snapshot() engine.Snapshot {
	return m.snap
}

// Notice returns the shell message shown under the status bar.
func (m Model) Notice() string {
	return m.notice
}
