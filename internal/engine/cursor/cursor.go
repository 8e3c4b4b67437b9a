// Package cursor owns the primary cursor and any extra selections anchored
// into a document. Motions clamp at document boundaries instead of failing.
package cursor

import (
	"math"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
)

// stickyEnd is the preferred column after "$": vertical moves stay at line end.
const stickyEnd = math.MaxInt

// Selection is an anchor and a head. A point selection has Anchor == Head.
type Selection struct {
	Anchor buffer.Position
	Head   buffer.Position
}

// Point returns a zero-width selection at p.
func Point(p buffer.Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsPoint reports whether the selection is zero-width.
func (s Selection) IsPoint() bool {
	return s.Anchor == s.Head
}

// Range returns the selection as a normalized range.
func (s Selection) Range() buffer.Range {
	return buffer.Range{Start: s.Anchor, End: s.Head}.Normalize()
}

// Model tracks selections against a Document. Index 0 is the primary.
type Model struct {
	doc          Document
	selections   []Selection
	preferredCol int
	pastEnd      bool
	version      uint64
	lastFind     *Motion
}

// New creates a model with a single cursor at the document start.
func New(doc Document) *Model {
	return &Model{
		doc:          doc,
		selections:   []Selection{Point(buffer.Position{})},
		preferredCol: -1,
		version:      doc.Version(),
	}
}

// SetPastEnd controls whether the cursor may rest on the end-of-line
// position. Insert and Replace allow it; Normal and Visual do not.
func (m *Model) SetPastEnd(allow bool) {
	m.pastEnd = allow
	m.revalidate(true)
}

// PastEnd reports the current clamp policy.
func (m *Model) PastEnd() bool {
	return m.pastEnd
}

// Position returns the primary cursor (the head of the primary selection).
func (m *Model) Position() buffer.Position {
	m.revalidate(false)
	return m.selections[0].Head
}

// Primary returns the primary selection.
func (m *Model) Primary() Selection {
	m.revalidate(false)
	return m.selections[0]
}

// Selections returns a copy of all selections, primary first.
func (m *Model) Selections() []Selection {
	m.revalidate(false)
	out := make([]Selection, len(m.selections))
	copy(out, m.selections)
	return out
}

// AddSelection adds a secondary selection.
func (m *Model) AddSelection(s Selection) {
	m.revalidate(false)
	m.selections = append(m.selections, Selection{
		Anchor: m.clamp(s.Anchor),
		Head:   m.clamp(s.Head),
	})
}

// ClearSecondary drops every selection but the primary.
func (m *Model) ClearSecondary() {
	m.selections = m.selections[:1]
}

// SetPosition moves the primary cursor to p, collapsing the selection.
func (m *Model) SetPosition(p buffer.Position) {
	m.revalidate(false)
	p = m.clamp(p)
	m.selections[0] = Point(p)
	m.preferredCol = p.Col
}

// SetAnchor re-anchors the primary selection at p without moving the head.
func (m *Model) SetAnchor(p buffer.Position) {
	m.revalidate(false)
	m.selections[0].Anchor = m.clamp(p)
}

// SetHead moves the head of the primary selection to p, leaving the anchor.
func (m *Model) SetHead(p buffer.Position) {
	m.revalidate(false)
	p = m.clamp(p)
	m.selections[0].Head = p
	m.preferredCol = p.Col
}

// SwapAnchor exchanges anchor and head of the primary selection.
func (m *Model) SwapAnchor() {
	m.revalidate(false)
	s := m.selections[0]
	m.selections[0] = Selection{Anchor: s.Head, Head: s.Anchor}
	m.preferredCol = s.Anchor.Col
}

// CollapseToPoint turns the primary selection into a cursor at its head.
func (m *Model) CollapseToPoint() {
	m.revalidate(false)
	m.selections[0].Anchor = m.selections[0].Head
}

// MoveBy applies a motion to the primary cursor and collapses the selection.
func (m *Model) MoveBy(mo Motion) buffer.Position {
	target, _ := m.Target(mo)
	m.selections[0] = Point(target)
	return target
}

// ExtendSelection moves the head of the primary selection, leaving the anchor.
func (m *Model) ExtendSelection(mo Motion) buffer.Position {
	target, _ := m.Target(mo)
	m.selections[0].Head = target
	return target
}

// Target resolves where a motion would land without moving. ok is false when
// a find motion has no match; the current position is returned then.
// Target updates the sticky column and the last find, as a real move would.
func (m *Model) Target(mo Motion) (buffer.Position, bool) {
	p, ok := m.resolve(mo, false)
	return m.clamp(p), ok
}

// OperatorTarget resolves a motion for an operator range. Unlike Target it
// may return the end-of-line position, so exclusive ranges can reach the
// last character.
func (m *Model) OperatorTarget(mo Motion) (buffer.Position, bool) {
	p, ok := m.resolve(mo, true)
	return p, ok
}

// RepeatFind returns the last f/F/t/T motion, reversed for ",".
func (m *Model) RepeatFind(reverse bool) (Motion, bool) {
	if m.lastFind == nil {
		return Motion{}, false
	}
	mo := *m.lastFind
	mo.Repeat = true
	if reverse {
		mo = mo.Reversed()
	}
	return mo, true
}

// OperatorTargetFrom is OperatorTarget measured from p instead of the
// cursor. Used by cw, whose first word may end under the cursor.
func (m *Model) OperatorTargetFrom(p buffer.Position, mo Motion) (buffer.Position, bool) {
	m.revalidate(false)
	return m.resolveFrom(m.clamp(p), mo, true)
}

func (m *Model) resolve(mo Motion, forOperator bool) (buffer.Position, bool) {
	m.revalidate(false)
	return m.resolveFrom(m.selections[0].Head, mo, forOperator)
}

func (m *Model) resolveFrom(from buffer.Position, mo Motion, forOperator bool) (buffer.Position, bool) {
	w := newWalker(m.doc)
	n := mo.repeat()
	last := m.doc.LineCount() - 1

	switch mo.Kind {
	case CharLeft:
		p := buffer.Position{Line: from.Line, Col: max(from.Col-n, 0)}
		m.preferredCol = p.Col
		return p, true

	case CharRight:
		limit := m.maxCol(from.Line)
		if forOperator {
			limit = m.doc.LineLen(from.Line)
		}
		p := buffer.Position{Line: from.Line, Col: min(from.Col+n, limit)}
		m.preferredCol = p.Col
		return p, true

	case LineUp, LineDown:
		line := from.Line - n
		if mo.Kind == LineDown {
			line = from.Line + n
		}
		line = min(max(line, 0), last)
		if m.preferredCol < 0 {
			m.preferredCol = from.Col
		}
		return buffer.Position{Line: line, Col: min(m.preferredCol, m.maxCol(line))}, true

	case WordForward, WordBackward, WordEnd:
		p := from
		for range n {
			switch mo.Kind {
			case WordForward:
				p = w.wordForward(p)
			case WordBackward:
				p = w.wordBackward(p)
			default:
				p = w.wordEnd(p)
			}
		}
		m.preferredCol = p.Col
		return p, true

	case LineStart:
		m.preferredCol = 0
		return buffer.Position{Line: from.Line}, true

	case FirstNonBlank:
		col := m.doc.FirstNonBlank(from.Line)
		m.preferredCol = col
		return buffer.Position{Line: from.Line, Col: col}, true

	case LineEnd:
		line := min(from.Line+n-1, last)
		m.preferredCol = stickyEnd
		if forOperator {
			return buffer.Position{Line: line, Col: max(m.doc.LineLen(line)-1, 0)}, true
		}
		return buffer.Position{Line: line, Col: m.maxCol(line)}, true

	case DocumentStart, DocumentEnd:
		line := 0
		if mo.Kind == DocumentEnd {
			line = last
		}
		if mo.Count > 0 {
			line = min(mo.Count-1, last)
		}
		col := m.doc.FirstNonBlank(line)
		m.preferredCol = col
		return buffer.Position{Line: line, Col: col}, true

	case FindForward, FindBackward, TillForward, TillBackward:
		if !mo.Repeat {
			found := mo
			m.lastFind = &found
		}
		col, ok := findInLine(m.doc.Runes(from.Line), from.Col, mo, mo.Repeat)
		if ok {
			m.preferredCol = col
		}
		return buffer.Position{Line: from.Line, Col: col}, ok
	}
	return from, false
}

// maxCol is the largest column the cursor may rest on under the current
// clamp policy.
func (m *Model) maxCol(line int) int {
	n := m.doc.LineLen(line)
	if m.pastEnd || n == 0 {
		return n
	}
	return n - 1
}

func (m *Model) clamp(p buffer.Position) buffer.Position {
	p.Line = min(max(p.Line, 0), m.doc.LineCount()-1)
	p.Col = min(max(p.Col, 0), m.maxCol(p.Line))
	return p
}

// revalidate clamps every stored position when the document changed since
// the last read, or unconditionally when force is set.
func (m *Model) revalidate(force bool) {
	v := m.doc.Version()
	if !force && v == m.version {
		return
	}
	m.version = v
	for i, s := range m.selections {
		m.selections[i] = Selection{Anchor: m.clamp(s.Anchor), Head: m.clamp(s.Head)}
	}
}
