package engine

import (
	"errors"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/search"
)

func searchCommands() []*Command {
	open := func(dir search.Direction) func(*Engine, Args) ExecuteResult {
		return func(e *Engine, a Args) ExecuteResult {
			e.openPrompt(dir, a.Count)
			return Executed
		}
	}
	repeat := func(id, key, help string, reverse bool) *Command {
		c := &Command{ID: id, Kind: KindMotion, Keys: []string{key}, Modes: normalAndVisual, Help: help}
		c.seek = func(e *Engine, a Args) (buffer.Position, bool) {
			return e.seekN(a.N(), "", func(from buffer.Position) (buffer.Position, error) {
				return e.search.Next(e.buf, from, reverse)
			})
		}
		c.run = func(e *Engine, a Args) ExecuteResult { return e.move(c, a) }
		return c
	}

	return []*Command{
		{ID: "search.prompt_forward", Kind: KindSearch, Keys: []string{"/"}, Modes: normalAndVisual,
			Help: "search forward for a pattern", run: open(search.Forward)},
		{ID: "search.prompt_backward", Kind: KindSearch, Keys: []string{"?"}, Modes: normalAndVisual,
			Help: "search backward for a pattern", run: open(search.Backward)},
		repeat("search.next", "n", "repeat the last search", false),
		repeat("search.previous", "N", "repeat the last search in the other direction", true),
	}
}

// promptSearch builds the motion run when a search prompt is confirmed.
// An empty pattern repeats the last one.
func (e *Engine) promptSearch(id, pattern string, dir search.Direction) *Command {
	c := &Command{ID: id, Kind: KindMotion, Modes: normalAndVisual}
	c.seek = func(e *Engine, a Args) (buffer.Position, bool) {
		return e.seekN(a.N(), pattern, func(from buffer.Position) (buffer.Position, error) {
			return e.search.Find(e.buf, pattern, from, dir)
		})
	}
	c.run = func(e *Engine, a Args) ExecuteResult { return e.move(c, a) }
	return c
}

// seekN applies a search step n times from the cursor. A failure leaves the
// cursor alone and explains itself in the status message.
func (e *Engine) seekN(n int, pattern string, step func(buffer.Position) (buffer.Position, error)) (buffer.Position, bool) {
	p := e.cur.Position()
	for range n {
		next, err := step(p)
		if err != nil {
			e.message = searchMessage(err, pattern, e.search)
			return p, false
		}
		p = next
	}
	return p, true
}

func searchMessage(err error, pattern string, s *search.Engine) string {
	if pattern == "" {
		pattern, _ = s.Last()
	}
	switch {
	case errors.Is(err, search.ErrNotFound):
		return "Pattern not found: " + pattern
	case errors.Is(err, search.ErrNoPattern):
		return "No previous search pattern"
	}
	return err.Error()
}
