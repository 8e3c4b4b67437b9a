// Package search finds pattern matches in a document, scanning forward or
// backward from a position and wrapping around the document once.
package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/Mulraeng/Vim-doc-editor/internal/cachemanager"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

var (
	// ErrNotFound is the NoOp result of a search without a match.
	ErrNotFound = errors.New("pattern not found")
	// ErrInvalidPattern wraps a regular expression compile error.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrNoPattern is returned by Next before any search ran.
	ErrNoPattern = errors.New("no previous search pattern")
)

// Direction of a scan.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Options controls how patterns are interpreted.
type Options struct {
	// Literal matches the pattern as plain text instead of RE2 syntax.
	Literal bool `mapstructure:"literal"`
	// IgnoreCase folds case unless SmartCase sees an upper-case letter.
	IgnoreCase bool `mapstructure:"ignore_case"`
	SmartCase  bool `mapstructure:"smart_case"`
	// NoCache compiles every pattern afresh.
	NoCache bool `mapstructure:"no_cache"`
}

// Document is the read surface scanned for matches.
type Document interface {
	LineCount() int
	Runes(i int) []rune
}

type patternKey string

type query struct {
	pattern string
	fold    bool
	literal bool
}

func (q query) key() patternKey {
	return patternKey(fmt.Sprintf("%t/%t/%s", q.literal, q.fold, q.pattern))
}

// Engine remembers the last pattern and direction for n and N.
type Engine struct {
	opts     Options
	patterns *cachemanager.ReadThroughCache[patternKey, *matcher, query]

	last    string
	lastDir Direction
}

// New returns an engine using opts for every search.
func New(opts Options) *Engine {
	cache := cachemanager.NewInMemoryCacheManager[patternKey, *matcher](
		"search-patterns", cachemanager.DefaultIdle, cachemanager.DefaultCleanupInterval)
	return &Engine{
		opts:     opts,
		patterns: cachemanager.NewReadThroughCache[patternKey, *matcher, query](cache, compile, opts.NoCache),
	}
}

// matcher finds every match start on a line, overlapping ones included.
// line screens a whole line. first tests a match at column 0; next tests a
// match one rune into its input, so the rune before the candidate column
// stays visible to \b and ^.
type matcher struct {
	line  *regexp.Regexp
	first *regexp.Regexp
	next  *regexp.Regexp
}

func compile(_ context.Context, q query) (*matcher, error) {
	expr := q.pattern
	if q.literal {
		expr = regexp.QuoteMeta(expr)
	}
	if q.fold {
		expr = "(?i)" + expr
	}
	var m matcher
	for _, c := range []struct {
		dst  **regexp.Regexp
		expr string
	}{
		{&m.line, expr},
		{&m.first, `^(?:` + expr + `)`},
		{&m.next, `^(?s:.)(?:` + expr + `)`},
	} {
		re, err := regexp.Compile(c.expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		*c.dst = re
	}
	return &m, nil
}

func (e *Engine) query(pattern string) query {
	fold := e.opts.IgnoreCase && !(e.opts.SmartCase && hasUpper(pattern))
	return query{pattern: pattern, fold: fold, literal: e.opts.Literal}
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Last returns the most recent pattern and its direction.
func (e *Engine) Last() (string, Direction) {
	return e.last, e.lastDir
}

// CacheStats reports the compiled pattern cache counters.
func (e *Engine) CacheStats() cachemanager.Stats {
	return e.patterns.Stats()
}

// Find returns the first match of pattern strictly after from (Forward) or
// strictly before it (Backward), wrapping around the document once. A match
// at from itself is only found after wrapping. An empty pattern reuses the
// last one.
func (e *Engine) Find(doc Document, pattern string, from buffer.Position, dir Direction) (buffer.Position, error) {
	if pattern == "" {
		if e.last == "" {
			return from, ErrNoPattern
		}
		pattern = e.last
	}

	q := e.query(pattern)
	m, err := e.patterns.Get(context.Background(), q.key(), q)
	if err != nil {
		log.Debug(log.CatSearch, "compile failed", "pattern", pattern, "error", err)
		return from, err
	}

	e.last, e.lastDir = pattern, dir

	var (
		pos   buffer.Position
		found bool
	)
	if dir == Forward {
		pos, found = scanForward(doc, m, from)
	} else {
		pos, found = scanBackward(doc, m, from)
	}
	if !found {
		log.Debug(log.CatSearch, "no match", "pattern", pattern, "dir", dir)
		return from, fmt.Errorf("%w: %s", ErrNotFound, pattern)
	}
	log.Debug(log.CatSearch, "match", "pattern", pattern, "dir", dir, "pos", pos)
	return pos, nil
}

// Next repeats the last search from from, in the same direction or, with
// reverse, the opposite one. The remembered direction is kept.
func (e *Engine) Next(doc Document, from buffer.Position, reverse bool) (buffer.Position, error) {
	if e.last == "" {
		return from, ErrNoPattern
	}
	dir := e.lastDir
	if reverse {
		dir = dir.Reverse()
	}
	pos, err := e.Find(doc, e.last, from, dir)
	if reverse {
		e.lastDir = dir.Reverse()
	}
	return pos, err
}

// cols returns the rune column of every match start on a line, in order.
// Matches may overlap: "aa" in "aaaa" starts at 0, 1 and 2.
func (m *matcher) cols(line []rune) []int {
	s := string(line)
	if !m.line.MatchString(s) {
		return nil
	}
	var cols []int
	if m.first.MatchString(s) {
		cols = append(cols, 0)
	}
	prev := 0
	for col := 1; col <= len(line); col++ {
		if m.next.MatchString(s[prev:]) {
			cols = append(cols, col)
		}
		prev += utf8.RuneLen(line[col-1])
	}
	return cols
}

func scanForward(doc Document, m *matcher, from buffer.Position) (buffer.Position, bool) {
	n := doc.LineCount()
	for _, c := range m.cols(doc.Runes(from.Line)) {
		if c > from.Col {
			return buffer.Position{Line: from.Line, Col: c}, true
		}
	}
	for i := 1; i < n; i++ {
		line := (from.Line + i) % n
		if cols := m.cols(doc.Runes(line)); len(cols) > 0 {
			return buffer.Position{Line: line, Col: cols[0]}, true
		}
	}
	for _, c := range m.cols(doc.Runes(from.Line)) {
		if c <= from.Col {
			return buffer.Position{Line: from.Line, Col: c}, true
		}
	}
	return buffer.Position{}, false
}

func scanBackward(doc Document, m *matcher, from buffer.Position) (buffer.Position, bool) {
	n := doc.LineCount()
	cols := m.cols(doc.Runes(from.Line))
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] < from.Col {
			return buffer.Position{Line: from.Line, Col: cols[i]}, true
		}
	}
	for i := 1; i < n; i++ {
		line := ((from.Line-i)%n + n) % n
		if cs := m.cols(doc.Runes(line)); len(cs) > 0 {
			return buffer.Position{Line: line, Col: cs[len(cs)-1]}, true
		}
	}
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] >= from.Col {
			return buffer.Position{Line: from.Line, Col: cols[i]}, true
		}
	}
	return buffer.Position{}, false
}
