package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/Mulraeng/Vim-doc-editor/internal/config"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/infrastructure/sqlite"
	"github.com/Mulraeng/Vim-doc-editor/internal/pubsub"
	"github.com/Mulraeng/Vim-doc-editor/internal/watcher"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var (
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	saveKey  = tea.KeyMsg{Type: tea.KeyCtrlS}
	quitKey  = tea.KeyMsg{Type: tea.KeyCtrlQ}
)

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.UI == (config.UIConfig{}) {
		opts.UI = config.UIConfig{ShowStatusBar: true}
	}
	m, err := New(t.Context(), opts)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestUpdate_KeysReachEngine(t *testing.T) {
	m := newModel(t, Options{})

	m = typeKeys(t, m, "ihello")
	require.Equal(t, mode.Insert, m.Mode())
	m, _ = update(t, m, escKey)

	require.Equal(t, "hello", m.Text())
	require.Equal(t, mode.Normal, m.Mode())
	require.True(t, m.Dirty())
}

func TestUpdate_PastedNewlineSplitsLine(t *testing.T) {
	m := newModel(t, Options{})

	m = typeKeys(t, m, "i")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab\ncd"), Paste: true})

	require.Equal(t, "ab\ncd", m.Text())
}

func TestQuit_CleanDocumentQuitsAtOnce(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})

	_, cmd := update(t, m, quitKey)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuit_DirtyDocumentNeedsSecondPress(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})
	m = typeKeys(t, m, "x")

	m, cmd := update(t, m, quitKey)
	require.Nil(t, cmd)
	require.Contains(t, m.Notice(), "unsaved changes")

	m, cmd = update(t, m, quitKey)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuit_OtherKeyDisarms(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})
	m = typeKeys(t, m, "x")

	m, _ = update(t, m, quitKey)
	m = typeKeys(t, m, "l")
	_, cmd := update(t, m, quitKey)

	require.Nil(t, cmd)
}

func TestSave_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	m := newModel(t, Options{Path: path})

	m = typeKeys(t, m, "ihi")
	m, _ = update(t, m, escKey)
	require.True(t, m.Dirty())

	m, cmd := update(t, m, saveKey)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hi\n", string(data))
	require.False(t, m.Dirty())
	require.Equal(t, `"doc.txt" 1L written`, m.Notice())
}

func TestSave_WithoutPath(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})

	m, cmd := update(t, m, saveKey)

	require.Nil(t, cmd)
	require.Equal(t, "no file name", m.Notice())
}

func TestSave_ErrorIsShown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.txt")
	m := newModel(t, Options{Path: path})
	m = typeKeys(t, m, "x")

	m, cmd := update(t, m, saveKey)
	m, _ = update(t, m, cmd())

	require.Contains(t, m.Notice(), "creating temp file")
	require.True(t, m.Dirty())
}

func TestSave_UndoLogSurvivesReopen(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := db.UndoLogs()

	path := filepath.Join(t.TempDir(), "notes.md")
	first := newModel(t, Options{Path: path, Store: store})
	first = typeKeys(t, first, "ihello")
	first, _ = update(t, first, escKey)
	first, cmd := update(t, first, saveKey)
	_, _ = update(t, first, cmd())

	text, err := ReadDocument(path)
	require.NoError(t, err)
	require.Equal(t, "hello", text)

	second := newModel(t, Options{Path: path, Text: text, Store: store})
	second = typeKeys(t, second, "u")

	require.Equal(t, "", second.Text())
}

func TestSave_StaleUndoLogIgnored(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := db.UndoLogs()

	path := filepath.Join(t.TempDir(), "notes.md")
	first := newModel(t, Options{Path: path, Store: store})
	first = typeKeys(t, first, "ihello")
	first, _ = update(t, first, escKey)
	first, cmd := update(t, first, saveKey)
	_, _ = update(t, first, cmd())

	second := newModel(t, Options{Path: path, Text: "edited elsewhere", Store: store})
	second = typeKeys(t, second, "u")

	require.Equal(t, "edited elsewhere", second.Text())
	require.Equal(t, "Already at oldest change", second.Snapshot().Message)
}

func TestTick_ExpiresPendingOperator(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	require.Equal(t, "d", m.Snapshot().Pending)

	m, _ = update(t, m, tickMsg(time.Now().Add(-time.Minute)))
	require.Equal(t, "d", m.Snapshot().Pending)

	m, cmd = update(t, m, tickMsg(time.Now().Add(time.Hour)))
	require.Empty(t, m.Snapshot().Pending)
	require.Nil(t, cmd)
	require.Equal(t, "hello", m.Text())
}

func TestExternalChange_ReloadsCleanDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
	m := newModel(t, Options{Path: path, Text: "old"})

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0o644))
	m, _ = update(t, m, pubsub.Event[watcher.Change]{Type: pubsub.ExternalChangeEvent, Payload: watcher.Change{Path: path}})

	require.Equal(t, "new", m.Text())
	require.False(t, m.Dirty())
	require.Equal(t, "reloaded from disk", m.Notice())
}

func TestExternalChange_KeepsDirtyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
	m := newModel(t, Options{Path: path, Text: "old"})
	m = typeKeys(t, m, "x")

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0o644))
	m, _ = update(t, m, pubsub.Event[watcher.Change]{Type: pubsub.ExternalChangeEvent, Payload: watcher.Change{Path: path}})

	require.Equal(t, "ld", m.Text())
	require.Contains(t, m.Notice(), "file changed on disk")
}

func TestExternalChange_OwnWriteIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("same\n"), 0o644))
	m := newModel(t, Options{Path: path, Text: "same"})

	m, _ = update(t, m, pubsub.Event[watcher.Change]{Type: pubsub.ExternalChangeEvent, Payload: watcher.Change{Path: path}})

	require.Empty(t, m.Notice())
}

func TestExternalChange_Removed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	m := newModel(t, Options{Path: path, Text: "gone"})

	m, _ = update(t, m, pubsub.Event[watcher.Change]{Type: pubsub.ExternalChangeEvent, Payload: watcher.Change{Path: path, Removed: true}})

	require.Equal(t, "gone", m.Text())
	require.Equal(t, "file removed on disk", m.Notice())
}

func TestSnapshotEvent_RefreshesState(t *testing.T) {
	m := newModel(t, Options{Text: "abc"})

	_, err := m.eng.Run("x")
	require.NoError(t, err)
	require.Equal(t, "abc", m.Text())

	m, cmd := update(t, m, pubsub.Event[engine.Snapshot]{Type: pubsub.UpdatedEvent})
	require.NotNil(t, cmd)
	require.Equal(t, "bc", m.Text())
}

func TestToggles(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.fullHelp)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF2})
	require.True(t, m.showLog)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.False(t, m.fullHelp)
}
