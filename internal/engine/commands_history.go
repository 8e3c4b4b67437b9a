package engine

import (
	"errors"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/history"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

func historyCommands() []*Command {
	return []*Command{
		{ID: "history.undo", Kind: KindHistory, Keys: []string{"u"}, Modes: normalOnly,
			Help: "undo", run: func(e *Engine, a Args) ExecuteResult { return e.undo(a.N(), false) }},
		{ID: "history.redo", Kind: KindHistory, Keys: []string{"<c-r>"}, Modes: normalOnly,
			Help: "redo", run: func(e *Engine, a Args) ExecuteResult { return e.undo(a.N(), true) }},
	}
}

// undo steps n transactions back, or forward when redo is set. Running out
// of history part way is not an error; running out at once is a NoOp with a
// status message.
func (e *Engine) undo(n int, redo bool) ExecuteResult {
	step, empty, msg := e.hist.Undo, history.ErrNothingToUndo, "Already at oldest change"
	if redo {
		step, empty, msg = e.hist.Redo, history.ErrNothingToRedo, "Already at newest change"
	}

	var (
		pos  buffer.Position
		done int
	)
	for range n {
		p, err := step(e.buf)
		if errors.Is(err, empty) {
			break
		}
		if err != nil {
			log.ErrorErr(log.CatHistory, "history step failed", err, "redo", redo)
			e.message = err.Error()
			break
		}
		pos = p
		done++
	}
	if done == 0 {
		if e.message == "" {
			e.message = msg
		}
		return Skipped
	}
	e.cur.SetPosition(pos)
	log.Debug(log.CatHistory, "history stepped", "redo", redo, "steps", done, "depth", e.hist.Depth())
	return Executed
}
