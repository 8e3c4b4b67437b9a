package engine

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/search"
)

// DefaultKeyBufferTimeout is how long an incomplete key sequence waits for
// its next key.
const DefaultKeyBufferTimeout = time.Second

// Config is fixed when the engine is created.
type Config struct {
	InitialText string
	// KeyBufferTimeout bounds the wait between keys of one sequence. Zero
	// selects DefaultKeyBufferTimeout.
	KeyBufferTimeout time.Duration
	// EnabledModes lists the modes that may be entered. Empty enables all.
	EnabledModes []mode.Mode
	// HistoryLimit caps the undo log. Zero keeps everything.
	HistoryLimit int
	// UndoPerKeystroke commits every Insert-mode key separately instead of
	// one transaction per Insert session.
	UndoPerKeystroke bool
	// InsertEscape is an optional two-key sequence, such as "jk", that leaves
	// Insert mode.
	InsertEscape string
	Search       search.Options
	// Clipboard receives a copy of every yank and delete. Nil disables it.
	Clipboard Clipboard
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Tracer defaults to a no-op tracer.
	Tracer trace.Tracer
	// SnapshotBuffer sizes each snapshot subscription. Zero selects the
	// broker default.
	SnapshotBuffer int
}

func (c Config) withDefaults() (Config, error) {
	if c.KeyBufferTimeout <= 0 {
		c.KeyBufferTimeout = DefaultKeyBufferTimeout
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.HistoryLimit < 0 {
		return c, fmt.Errorf("history limit %d is negative", c.HistoryLimit)
	}
	if c.InsertEscape != "" {
		keys, err := ParseKeys(c.InsertEscape)
		if err != nil {
			return c, fmt.Errorf("insert escape: %w", err)
		}
		if len(keys) != 2 || !keys[0].IsPrintable() || !keys[1].IsPrintable() {
			return c, fmt.Errorf("insert escape %q must be two printable keys", c.InsertEscape)
		}
	}
	return c, nil
}
