package engine

import "github.com/Mulraeng/Vim-doc-editor/internal/engine/cursor"

// objectFinder locates a text object around col on one line. The returned
// end is exclusive; an inner object between adjacent delimiters is empty.
type objectFinder interface {
	bounds(line []rune, col int, inner bool) (start, end int, found bool)
}

var textObjects = map[rune]objectFinder{
	'w':  wordObject{},
	'W':  wordObject{big: true},
	'"':  pairObject{open: '"', close: '"'},
	'\'': pairObject{open: '\'', close: '\''},
	'(':  pairObject{open: '(', close: ')'},
	')':  pairObject{open: '(', close: ')'},
	'[':  pairObject{open: '[', close: ']'},
	']':  pairObject{open: '[', close: ']'},
	'{':  pairObject{open: '{', close: '}'},
	'}':  pairObject{open: '{', close: '}'},
	'b':  bracketObject{},
}

// wordObject is iw/aw, or iW/aW when big is set. "a" variants take the
// trailing blanks, or the leading ones when the word ends the line.
type wordObject struct {
	big bool
}

func (w wordObject) bounds(line []rune, col int, inner bool) (int, int, bool) {
	if col >= len(line) || cursor.IsBlank(line[col]) {
		return 0, 0, false
	}

	same := func(i int) bool {
		if w.big {
			return !cursor.IsBlank(line[i])
		}
		return cursor.SameClass(line[i], line[col])
	}

	start, end := col, col+1
	for start > 0 && same(start-1) {
		start--
	}
	for end < len(line) && same(end) {
		end++
	}

	if !inner {
		trail := end
		for trail < len(line) && cursor.IsBlank(line[trail]) {
			trail++
		}
		if trail > end {
			end = trail
		} else {
			for start > 0 && cursor.IsBlank(line[start-1]) {
				start--
			}
		}
	}
	return start, end, true
}

// pairObject is a quote or bracket pair. Delimiters preceded by an odd
// number of backslashes do not count.
type pairObject struct {
	open, close rune
}

func (p pairObject) bounds(line []rune, col int, inner bool) (int, int, bool) {
	if col >= len(line) {
		return 0, 0, false
	}
	var (
		o, c int
		ok   bool
	)
	if p.open == p.close {
		o, c, ok = p.symmetric(line, col)
	} else {
		o, c, ok = p.nested(line, col)
	}
	if !ok {
		return 0, 0, false
	}
	return span(o, c, inner)
}

func span(open, close int, inner bool) (int, int, bool) {
	if inner {
		return open + 1, close, true
	}
	return open, close + 1, true
}

// symmetric pairs quotes left to right. When col is in none of those pairs
// but sits strictly between two quotes, as in `a" "b"` with the cursor on b,
// the nearest quotes either side are used.
func (p pairObject) symmetric(line []rune, col int) (int, int, bool) {
	var quotes []int
	for i, r := range line {
		if r == p.open && !escaped(line, i) {
			quotes = append(quotes, i)
		}
	}
	if len(quotes) < 2 {
		return 0, 0, false
	}

	for i := 0; i+1 < len(quotes); i += 2 {
		if col >= quotes[i] && col <= quotes[i+1] {
			return quotes[i], quotes[i+1], true
		}
	}

	left, right := -1, -1
	for _, q := range quotes {
		if q < col {
			left = q
		} else if q > col && right < 0 {
			right = q
		}
	}
	if left >= 0 && right >= 0 {
		return left, right, true
	}
	return 0, 0, false
}

// nested returns the innermost bracket pair containing col.
func (p pairObject) nested(line []rune, col int) (int, int, bool) {
	var stack []int
	bestO, bestC, found := -1, 0, false
	for i, r := range line {
		if escaped(line, i) {
			continue
		}
		switch r {
		case p.open:
			stack = append(stack, i)
		case p.close:
			if len(stack) == 0 {
				continue
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if col < o || col > i {
				continue
			}
			if !found || i-o < bestC-bestO {
				bestO, bestC, found = o, i, true
			}
		}
	}
	return bestO, bestC, found
}

func escaped(line []rune, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// bracketObject is ib/ab: the innermost (), [] or {} around col.
type bracketObject struct{}

var bracketPairs = []pairObject{
	{open: '(', close: ')'},
	{open: '[', close: ']'},
	{open: '{', close: '}'},
}

func (bracketObject) bounds(line []rune, col int, inner bool) (int, int, bool) {
	if col >= len(line) {
		return 0, 0, false
	}
	bestO, bestC, found := 0, 0, false
	for _, p := range bracketPairs {
		o, c, ok := p.nested(line, col)
		if ok && (!found || c-o < bestC-bestO) {
			bestO, bestC, found = o, c, true
		}
	}
	if !found {
		return 0, 0, false
	}
	return span(bestO, bestC, inner)
}
