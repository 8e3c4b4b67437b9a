// Package buffer holds the document text as an ordered list of lines.
//
// Columns are measured in code points. Every mutation is validated before it
// touches the line slice, so a rejected call leaves the buffer unchanged.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfBounds is returned when a Position or line index does not exist in
// the current document.
var ErrOutOfBounds = errors.New("position out of bounds")

// Position addresses a code point within the document.
// Col may equal the line length (end of line) but never exceeds it.
type Position struct {
	Line int
	Col  int
}

// Less reports whether p comes before o in document order.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Col)
}

// Range is a half-open region between two positions. Start may come after
// End; Normalize orders them.
type Range struct {
	Start Position
	End   Position
}

// Normalize returns the range with Start <= End.
func (r Range) Normalize() Range {
	if r.End.Less(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Buffer owns the document lines. The document always has at least one line.
type Buffer struct {
	lines   [][]rune
	version uint64
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

// splitLines breaks text on line breaks, treating \r\n and \r as \n.
func splitLines(text string) [][]rune {
	text = normalizeNewlines(text)
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Version increases on every mutation. Readers compare it to detect stale
// positions.
func (b *Buffer) Version() uint64 {
	return b.version
}

// LineCount returns the number of lines (always >= 1).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns the text of line i.
func (b *Buffer) LineAt(i int) (string, error) {
	if i < 0 || i >= len(b.lines) {
		return "", fmt.Errorf("line %d of %d: %w", i, len(b.lines), ErrOutOfBounds)
	}
	return string(b.lines[i]), nil
}

// LineLen returns the length of line i in code points, or 0 when i is not a
// line.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// Runes returns a copy of line i as code points.
func (b *Buffer) Runes(i int) []rune {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	out := make([]rune, len(b.lines[i]))
	copy(out, b.lines[i])
	return out
}

// RuneAt returns the code point at pos. ok is false at end of line.
func (b *Buffer) RuneAt(pos Position) (r rune, ok bool) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return 0, false
	}
	line := b.lines[pos.Line]
	if pos.Col < 0 || pos.Col >= len(line) {
		return 0, false
	}
	return line[pos.Col], true
}

// Lines returns the document as a slice of strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Text returns the whole document joined with \n.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// SetText replaces the whole document.
func (b *Buffer) SetText(text string) {
	b.lines = splitLines(text)
	b.version++
}

// End returns the position just past the last code point of the document.
func (b *Buffer) End() Position {
	last := len(b.lines) - 1
	return Position{Line: last, Col: len(b.lines[last])}
}

// Valid reports whether pos addresses the document.
func (b *Buffer) Valid(pos Position) bool {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return false
	}
	return pos.Col >= 0 && pos.Col <= len(b.lines[pos.Line])
}

// Clamp pulls pos into the document bounds.
func (b *Buffer) Clamp(pos Position) Position {
	pos.Line = clamp(pos.Line, 0, len(b.lines)-1)
	pos.Col = clamp(pos.Col, 0, len(b.lines[pos.Line]))
	return pos
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Insert places text at pos and returns the position just after the inserted
// text. Embedded line breaks split the line.
func (b *Buffer) Insert(pos Position, text string) (Position, error) {
	if !b.Valid(pos) {
		return pos, fmt.Errorf("insert at %s: %w", pos, ErrOutOfBounds)
	}
	if text == "" {
		return pos, nil
	}

	pieces := splitLines(text)
	line := b.lines[pos.Line]
	head := line[:pos.Col]
	tail := line[pos.Col:]

	replacement := make([][]rune, len(pieces))
	for i, p := range pieces {
		var l []rune
		if i == 0 {
			l = append(l, head...)
		}
		l = append(l, p...)
		if i == len(pieces)-1 {
			l = append(l, tail...)
		}
		replacement[i] = l
	}

	b.splice(pos.Line, pos.Line, replacement)

	last := pieces[len(pieces)-1]
	end := Position{Line: pos.Line + len(pieces) - 1, Col: len(last)}
	if len(pieces) == 1 {
		end.Col += pos.Col
	}
	return end, nil
}

// Delete removes the half-open region r and returns the removed text.
// The endpoints may be given in either order.
func (b *Buffer) Delete(r Range) (string, error) {
	r = r.Normalize()
	if !b.Valid(r.Start) || !b.Valid(r.End) {
		return "", fmt.Errorf("delete %s-%s: %w", r.Start, r.End, ErrOutOfBounds)
	}
	if r.IsEmpty() {
		return "", nil
	}

	removed := b.textIn(r)

	var joined []rune
	joined = append(joined, b.lines[r.Start.Line][:r.Start.Col]...)
	joined = append(joined, b.lines[r.End.Line][r.End.Col:]...)
	b.splice(r.Start.Line, r.End.Line, [][]rune{joined})

	return removed, nil
}

// TextInRange returns the text of the half-open region r.
func (b *Buffer) TextInRange(r Range) (string, error) {
	r = r.Normalize()
	if !b.Valid(r.Start) || !b.Valid(r.End) {
		return "", fmt.Errorf("text in %s-%s: %w", r.Start, r.End, ErrOutOfBounds)
	}
	return b.textIn(r), nil
}

func (b *Buffer) textIn(r Range) string {
	if r.Start.Line == r.End.Line {
		return string(b.lines[r.Start.Line][r.Start.Col:r.End.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[r.Start.Line][r.Start.Col:]))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[r.End.Line][:r.End.Col]))
	return sb.String()
}

// splice replaces lines[from..to] (inclusive) with repl.
func (b *Buffer) splice(from, to int, repl [][]rune) {
	next := make([][]rune, 0, len(b.lines)-(to-from+1)+len(repl))
	next = append(next, b.lines[:from]...)
	next = append(next, repl...)
	next = append(next, b.lines[to+1:]...)
	b.lines = next
	b.version++
}

// FirstNonBlank returns the column of the first non-blank code point on line
// i, or the line length when the line is blank.
func (b *Buffer) FirstNonBlank(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	for col, r := range b.lines[i] {
		if r != ' ' && r != '\t' {
			return col
		}
	}
	return len(b.lines[i])
}
