package engine

import (
	"strings"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// region is the span an operator acts on. Charwise regions end exclusive;
// linewise regions cover start.Line through end.Line whatever the columns.
type region struct {
	start, end buffer.Position
	linewise   bool
}

func (r region) bufferRange(b *buffer.Buffer) buffer.Range {
	if !r.linewise {
		return buffer.Range{Start: r.start, End: r.end}
	}
	return buffer.Range{
		Start: buffer.Position{Line: r.start.Line},
		End:   buffer.Position{Line: r.end.Line, Col: b.LineLen(r.end.Line)},
	}
}

func mulCount(a, b int) int {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	}
	return min(a*b, maxCount)
}

// applyOperator completes a pending operator with cmd, which supplies the
// range: a motion, a text object, or the operator key again for whole lines.
func (e *Engine) applyOperator(cmd *Command, a Args) Outcome {
	op := e.d.op

	if cmd.Kind == KindSearch {
		cmd.run(e, a)
		return buffered
	}

	a.Count = mulCount(e.d.opCount, a.Count)
	e.d.op = nil
	e.d.opCount = 0

	var (
		r  region
		ok bool
		id = op.ID + "+" + cmd.ID
	)
	switch cmd.Kind {
	case KindOperator:
		if cmd.Operator != op.Operator {
			break
		}
		line := e.cur.Position().Line
		last := min(line+a.N()-1, e.buf.LineCount()-1)
		r = region{start: buffer.Position{Line: line}, end: buffer.Position{Line: last}, linewise: true}
		ok = true
		id = op.ID + ".line"
	case KindMotion:
		r, ok = e.motionRegion(cmd, a, op.Operator)
	case KindTextObject:
		r, ok = e.objectRegion(cmd)
	}
	if !ok {
		log.Debug(log.CatDispatch, "operator discarded", "op", op.ID, "with", cmd.ID)
		return ignored
	}

	oc := &Command{
		ID:   id,
		Kind: KindOperator,
		run: func(e *Engine, _ Args) ExecuteResult {
			return e.operate(op.Operator, r)
		},
	}
	oc.Execute(e, Args{})
	return consumed(id)
}

// motionRegion turns a motion into an operator range from the cursor.
func (e *Engine) motionRegion(cmd *Command, a Args, op Operator) (region, bool) {
	from := e.cur.Position()

	if op == OpChange && cmd.Motion == cursor.WordForward && cmd.seek == nil && !cmd.repeatFind {
		if end, ok := e.changeWordEnd(from, a.N()); ok {
			return region{start: from, end: end}, true
		}
	}

	t, ok := cmd.target(e, a, true)
	if !ok {
		return region{}, false
	}
	// j and k clamped at the first or last line do not move and fail.
	if (cmd.Motion == cursor.LineUp || cmd.Motion == cursor.LineDown) && t.pos.Line == from.Line {
		return region{}, false
	}

	start, end := from, t.pos
	if end.Less(start) {
		start, end = end, start
	}
	if t.linewise {
		return region{start: start, end: end, linewise: true}, true
	}
	if t.inclusive {
		end.Col = min(end.Col+1, e.buf.LineLen(end.Line))
	} else if end.Col == 0 && end.Line > start.Line {
		// An exclusive motion ending at column 0 stops at the end of the
		// previous line, so dw on a line's last word keeps the line break.
		end = buffer.Position{Line: end.Line - 1, Col: e.buf.LineLen(end.Line - 1)}
	}
	return region{start: start, end: end}, true
}

// changeWordEnd implements cw, which acts like ce when the cursor is on a
// word. A cursor already on the last character of a word counts that word
// as the first one.
func (e *Engine) changeWordEnd(from buffer.Position, n int) (buffer.Position, bool) {
	line := e.buf.Runes(from.Line)
	if from.Col >= len(line) || cursor.IsBlank(line[from.Col]) {
		return buffer.Position{}, false
	}
	end := from
	if from.Col+1 >= len(line) || !cursor.SameClass(line[from.Col], line[from.Col+1]) {
		n--
	}
	if n > 0 {
		end, _ = e.cur.OperatorTargetFrom(from, cursor.Motion{Kind: cursor.WordEnd, Count: n})
	}
	end.Col = min(end.Col+1, e.buf.LineLen(end.Line))
	return end, true
}

func (e *Engine) objectRegion(cmd *Command) (region, bool) {
	finder, ok := textObjects[cmd.Object]
	if !ok {
		return region{}, false
	}
	p := e.cur.Position()
	start, end, found := finder.bounds(e.buf.Runes(p.Line), p.Col, cmd.Inner)
	if !found {
		return region{}, false
	}
	return region{
		start: buffer.Position{Line: p.Line, Col: start},
		end:   buffer.Position{Line: p.Line, Col: end},
	}, true
}

// selectionRegion is the visual selection as an operator range.
func (e *Engine) selectionRegion() region {
	rg := e.cur.Primary().Range()
	if e.modes.Current() == mode.VisualLine {
		return region{start: rg.Start, end: rg.End, linewise: true}
	}
	end := rg.End
	switch n := e.buf.LineLen(end.Line); {
	case end.Col < n:
		end.Col++
	case end.Line < e.buf.LineCount()-1:
		end = buffer.Position{Line: end.Line + 1}
	default:
		end.Col = n
	}
	return region{start: rg.Start, end: end}
}

// operate applies op to r.
func (e *Engine) operate(op Operator, r region) ExecuteResult {
	if r.linewise {
		return e.operateLines(op, r.start.Line, r.end.Line)
	}

	rg := buffer.Range{Start: r.start, End: r.end}
	text, err := e.buf.TextInRange(rg)
	if err != nil {
		log.Debug(log.CatEngine, "operator range rejected", "range", rg.Start.String()+"-"+rg.End.String(), "error", err)
		return Skipped
	}

	switch op {
	case OpYank:
		e.regs.set(text, false)
		e.cur.SetPosition(r.start)
		return Executed
	case OpDelete:
		if rg.IsEmpty() {
			return Skipped
		}
		if _, err := e.buf.Delete(rg); err != nil {
			return Skipped
		}
		e.regs.set(text, false)
		e.cur.SetPosition(r.start)
		return Executed
	case OpChange:
		if !e.setMode(mode.Insert) {
			return Skipped
		}
		if _, err := e.buf.Delete(rg); err != nil {
			return Skipped
		}
		if text != "" {
			e.regs.set(text, false)
		}
		e.cur.SetPosition(r.start)
		return Executed
	}
	return Skipped
}

func (e *Engine) operateLines(op Operator, first, last int) ExecuteResult {
	lines := e.buf.Lines()[first : last+1]
	text := strings.Join(lines, "\n") + "\n"

	switch op {
	case OpYank:
		e.regs.set(text, true)
		if p := e.cur.Position(); p.Line != first {
			e.cur.SetPosition(buffer.Position{Line: first, Col: p.Col})
		}
		return Executed

	case OpDelete:
		e.deleteLines(first, last)
		e.regs.set(text, true)
		line := min(first, e.buf.LineCount()-1)
		e.cur.SetPosition(buffer.Position{Line: line, Col: e.buf.FirstNonBlank(line)})
		return Executed

	case OpChange:
		if !e.setMode(mode.Insert) {
			return Skipped
		}
		rg := buffer.Range{
			Start: buffer.Position{Line: first},
			End:   buffer.Position{Line: last, Col: e.buf.LineLen(last)},
		}
		if _, err := e.buf.Delete(rg); err != nil {
			return Skipped
		}
		e.regs.set(text, true)
		e.cur.SetPosition(buffer.Position{Line: first})
		return Executed
	}
	return Skipped
}

// deleteLines removes whole lines, keeping at least one line in the
// document.
func (e *Engine) deleteLines(first, last int) {
	final := e.buf.LineCount() - 1
	var rg buffer.Range
	switch {
	case last < final:
		rg = buffer.Range{Start: buffer.Position{Line: first}, End: buffer.Position{Line: last + 1}}
	case first > 0:
		rg = buffer.Range{
			Start: buffer.Position{Line: first - 1, Col: e.buf.LineLen(first - 1)},
			End:   buffer.Position{Line: last, Col: e.buf.LineLen(last)},
		}
	default:
		rg = buffer.Range{End: buffer.Position{Line: last, Col: e.buf.LineLen(last)}}
	}
	if _, err := e.buf.Delete(rg); err != nil {
		log.ErrorErr(log.CatEngine, "line delete failed", err, "first", first, "last", last)
	}
}

// paste inserts the unnamed register n times after (p) or before (P) the
// cursor.
func (e *Engine) paste(after bool, n int) ExecuteResult {
	reg := e.regs.unnamed
	if reg.Text == "" {
		return Skipped
	}
	p := e.cur.Position()

	if reg.Linewise {
		body := strings.TrimSuffix(reg.Text, "\n")
		body = strings.Repeat(body+"\n", n)
		body = strings.TrimSuffix(body, "\n")

		line := p.Line
		var err error
		if after {
			_, err = e.buf.Insert(buffer.Position{Line: p.Line, Col: e.buf.LineLen(p.Line)}, "\n"+body)
			line++
		} else {
			_, err = e.buf.Insert(buffer.Position{Line: p.Line}, body+"\n")
		}
		if err != nil {
			return Skipped
		}
		e.cur.SetPosition(buffer.Position{Line: line, Col: e.buf.FirstNonBlank(line)})
		return Executed
	}

	text := strings.Repeat(reg.Text, n)
	at := p
	if after && e.buf.LineLen(p.Line) > 0 {
		at.Col++
	}
	end, err := e.buf.Insert(at, text)
	if err != nil {
		return Skipped
	}
	if strings.Contains(text, "\n") {
		e.cur.SetPosition(at)
	} else {
		e.cur.SetPosition(buffer.Position{Line: end.Line, Col: end.Col - 1})
	}
	return Executed
}
