package cursor

import (
	"unicode"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
)

// MotionKind names a cursor motion.
type MotionKind int

const (
	CharLeft MotionKind = iota
	CharRight
	LineUp
	LineDown
	WordForward
	WordBackward
	WordEnd
	LineStart
	FirstNonBlank
	LineEnd
	DocumentStart
	DocumentEnd
	FindForward  // f{char}
	FindBackward // F{char}
	TillForward  // t{char}
	TillBackward // T{char}
)

var motionNames = map[MotionKind]string{
	CharLeft:      "char-left",
	CharRight:     "char-right",
	LineUp:        "line-up",
	LineDown:      "line-down",
	WordForward:   "word-forward",
	WordBackward:  "word-backward",
	WordEnd:       "word-end",
	LineStart:     "line-start",
	FirstNonBlank: "first-non-blank",
	LineEnd:       "line-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	FindForward:   "find-forward",
	FindBackward:  "find-backward",
	TillForward:   "till-forward",
	TillBackward:  "till-backward",
}

func (k MotionKind) String() string {
	if s, ok := motionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Motion is a named cursor movement.
//
// Count zero means no count was typed. For DocumentStart and DocumentEnd a
// non-zero Count is a 1-based target line; for every other kind it repeats
// the motion.
type Motion struct {
	Kind  MotionKind
	Count int
	Char  rune // target for the find kinds

	// Repeat marks a replay by ";" or ",". It leaves the remembered find
	// alone and skips an adjacent match for t/T.
	Repeat bool
}

// Linewise reports whether an operator applied over the motion acts on whole
// lines.
func (m Motion) Linewise() bool {
	switch m.Kind {
	case LineUp, LineDown, DocumentStart, DocumentEnd:
		return true
	}
	return false
}

// Inclusive reports whether the character under the motion's target belongs
// to an operator range.
func (m Motion) Inclusive() bool {
	switch m.Kind {
	case WordEnd, LineEnd, FindForward, TillForward:
		return true
	}
	return false
}

// IsFind reports whether the motion is one of f, F, t, T.
func (m Motion) IsFind() bool {
	switch m.Kind {
	case FindForward, FindBackward, TillForward, TillBackward:
		return true
	}
	return false
}

// Reversed returns the find motion searching the other way, used by ",".
func (m Motion) Reversed() Motion {
	switch m.Kind {
	case FindForward:
		m.Kind = FindBackward
	case FindBackward:
		m.Kind = FindForward
	case TillForward:
		m.Kind = TillBackward
	case TillBackward:
		m.Kind = TillForward
	}
	return m
}

func (m Motion) repeat() int {
	if m.Count < 1 {
		return 1
	}
	return m.Count
}

// Document is the read surface motions need.
type Document interface {
	LineCount() int
	LineLen(i int) int
	Runes(i int) []rune
	FirstNonBlank(i int) int
	Version() uint64
}

// Character classes used by word motions. An empty line is a word of its own.
const (
	classBlank = iota
	classWord
	classPunct
	classEmptyLine
)

func runeClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// SameClass reports whether a and b belong to the same word: both word
// characters, both punctuation, or both blank.
func SameClass(a, b rune) bool {
	return runeClass(a) == runeClass(b)
}

// IsBlank reports whether r separates words.
func IsBlank(r rune) bool {
	return runeClass(r) == classBlank
}

// walker steps through the document one code point at a time. The end of a
// non-empty line is a virtual blank; an empty line is a single stop.
type walker struct {
	doc   Document
	lines map[int][]rune
}

func newWalker(doc Document) *walker {
	return &walker{doc: doc, lines: make(map[int][]rune)}
}

func (w *walker) line(i int) []rune {
	if l, ok := w.lines[i]; ok {
		return l
	}
	l := w.doc.Runes(i)
	w.lines[i] = l
	return l
}

func (w *walker) class(p buffer.Position) int {
	l := w.line(p.Line)
	if len(l) == 0 {
		return classEmptyLine
	}
	if p.Col >= len(l) {
		return classBlank
	}
	return runeClass(l[p.Col])
}

func (w *walker) next(p buffer.Position) (buffer.Position, bool) {
	if p.Col < len(w.line(p.Line)) {
		return buffer.Position{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 < w.doc.LineCount() {
		return buffer.Position{Line: p.Line + 1}, true
	}
	return p, false
}

func (w *walker) prev(p buffer.Position) (buffer.Position, bool) {
	if p.Col > 0 {
		return buffer.Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		return buffer.Position{Line: p.Line - 1, Col: len(w.line(p.Line - 1))}, true
	}
	return p, false
}

func (w *walker) end() buffer.Position {
	last := w.doc.LineCount() - 1
	return buffer.Position{Line: last, Col: len(w.line(last))}
}

// wordForward finds the start of the next word (w).
func (w *walker) wordForward(p buffer.Position) buffer.Position {
	c := w.class(p)
	if c == classWord || c == classPunct {
		for {
			n, ok := w.next(p)
			if !ok {
				return w.end()
			}
			p = n
			if w.class(p) != c {
				break
			}
		}
	} else {
		n, ok := w.next(p)
		if !ok {
			return w.end()
		}
		p = n
	}
	for w.class(p) == classBlank {
		n, ok := w.next(p)
		if !ok {
			return w.end()
		}
		p = n
	}
	return p
}

// wordEnd finds the last character of the current or next word (e).
func (w *walker) wordEnd(p buffer.Position) buffer.Position {
	n, ok := w.next(p)
	if !ok {
		return p
	}
	p = n
	for c := w.class(p); c == classBlank || c == classEmptyLine; c = w.class(p) {
		n, ok := w.next(p)
		if !ok {
			return p
		}
		p = n
	}
	c := w.class(p)
	for {
		n, ok := w.next(p)
		if !ok || w.class(n) != c {
			return p
		}
		p = n
	}
}

// wordBackward finds the start of the current or previous word (b).
func (w *walker) wordBackward(p buffer.Position) buffer.Position {
	n, ok := w.prev(p)
	if !ok {
		return p
	}
	p = n
	for w.class(p) == classBlank {
		n, ok := w.prev(p)
		if !ok {
			return p
		}
		p = n
	}
	c := w.class(p)
	if c == classEmptyLine {
		return p
	}
	for {
		n, ok := w.prev(p)
		if !ok || w.class(n) != c {
			return p
		}
		p = n
	}
}

// findInLine locates the count-th occurrence of ch for f/F/t/T on a single
// line. repeat skips an adjacent match for t/T so ";" makes progress.
func findInLine(line []rune, col int, m Motion, repeat bool) (int, bool) {
	count := m.repeat()
	switch m.Kind {
	case FindForward, TillForward:
		start := col + 1
		if m.Kind == TillForward && repeat {
			start++
		}
		found := -1
		for i := start; i < len(line); i++ {
			if line[i] == m.Char {
				count--
				if count == 0 {
					found = i
					break
				}
			}
		}
		if found < 0 {
			return col, false
		}
		if m.Kind == TillForward {
			found--
		}
		return found, true
	case FindBackward, TillBackward:
		start := col - 1
		if m.Kind == TillBackward && repeat {
			start--
		}
		found := -1
		for i := start; i >= 0; i-- {
			if i < len(line) && line[i] == m.Char {
				count--
				if count == 0 {
					found = i
					break
				}
			}
		}
		if found < 0 {
			return col, false
		}
		if m.Kind == TillBackward {
			found++
		}
		return found, true
	}
	return col, false
}
