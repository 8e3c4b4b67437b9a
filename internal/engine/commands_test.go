package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

func TestInsertEntry(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		script     string
		wantText   string
		wantCursor [2]int
	}{
		{"i inserts before", []string{"abc"}, "lix<esc>", "axbc", [2]int{0, 1}},
		{"a appends after", []string{"abc"}, "lax<esc>", "abxc", [2]int{0, 2}},
		{"a on empty line", []string{""}, "ax<esc>", "x", [2]int{0, 0}},
		{"I skips indent", []string{"  abc"}, "$Ix<esc>", "  xabc", [2]int{0, 2}},
		{"A appends at end", []string{"abc"}, "Ax<esc>", "abcx", [2]int{0, 3}},
		{"o opens below", []string{"abc", "def"}, "ox<esc>", "abc\nx\ndef", [2]int{1, 0}},
		{"O opens above", []string{"abc"}, "Ox<esc>", "x\nabc", [2]int{0, 0}},
		{"cr splits", []string{"abcd"}, "lli<cr><esc>", "ab\ncd", [2]int{1, 0}},
		{"tab", []string{"a"}, "i<tab><esc>", "\ta", [2]int{0, 0}},
		{"bs deletes back", []string{"abc"}, "A<bs><esc>", "ab", [2]int{0, 1}},
		{"bs joins at column 0", []string{"ab", "cd"}, "ji<bs><esc>", "abcd", [2]int{0, 1}},
		{"bs at document start", []string{"ab"}, "i<bs><esc>", "ab", [2]int{0, 0}},
		{"del deletes forward", []string{"abc"}, "i<del><esc>", "bc", [2]int{0, 0}},
		{"del joins at end of line", []string{"ab", "cd"}, "A<del><esc>", "abcd", [2]int{0, 1}},
		{"c-w deletes a word", []string{"foo bar"}, "A<c-w><esc>", "foo ", [2]int{0, 3}},
		{"c-w eats blanks first", []string{"foo bar  "}, "A<c-w><esc>", "foo ", [2]int{0, 3}},
		{"c-u deletes to line start", []string{"foo bar"}, "A<c-u><esc>", "", [2]int{0, 0}},
		{"arrows move", []string{"abc"}, "i<right><right>x<esc>", "abxc", [2]int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, Config{}, tt.lines...)

			run(t, e, tt.script)

			require.Equal(t, tt.wantText, e.Text())
			require.Equal(t, pos(tt.wantCursor[0], tt.wantCursor[1]), e.Cursor())
			require.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestInsert_OpenLineUndoesAtOnce(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "abc")

	run(t, e, "oxyz<esc>")
	require.Equal(t, 1, e.HistoryDepth())

	run(t, e, "u")
	require.Equal(t, "abc", e.Text())
}

func TestInsert_ArrowStartsNewUndoStep(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "")

	run(t, e, "iab<left>c<esc>")
	require.Equal(t, "acb", e.Text())
	require.Equal(t, 2, e.HistoryDepth())

	run(t, e, "u")
	require.Equal(t, "ab", e.Text())
}

func TestInsert_OutcomeOfTypedText(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "")

	run(t, e, "i")
	require.Equal(t, consumed("insert.text"), e.HandleKey(Key("é")))
	require.Equal(t, Ignored, e.HandleKey(Key("<c-q>")).Kind)
	require.Equal(t, "é", e.Text())
}

func TestReplaceMode(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		script     string
		wantText   string
		wantCursor int
	}{
		{"overwrites", "abc", "Rxy<esc>", "xyc", 1},
		{"appends past the end", "ab", "lRxyz<esc>", "axyz", 3},
		{"backspace restores", "abc", "Rxy<bs><bs><esc>", "abc", 0},
		{"backspace removes appended", "ab", "lRxyz<bs><esc>", "axy", 2},
		{"backspace with nothing typed only moves", "abc", "$R<bs><bs><esc>", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, Config{}, tt.line)

			run(t, e, tt.script)

			require.Equal(t, tt.wantText, e.Text())
			require.Equal(t, pos(0, tt.wantCursor), e.Cursor())
			require.Equal(t, mode.Normal, e.Mode())
		})
	}
}

func TestReplaceMode_OneUndoStep(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "abc")

	run(t, e, "Rxyz<esc>")
	require.Equal(t, "xyz", e.Text())
	require.Equal(t, 1, e.HistoryDepth())

	run(t, e, "u")
	require.Equal(t, "abc", e.Text())
}

func TestReplaceChar(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "abcd")

	require.Equal(t, consumed("replace.char"), run(t, e, "rx"))
	require.Equal(t, "xbcd", e.Text())

	run(t, e, "l2ry")
	require.Equal(t, "xyyd", e.Text())
	require.Equal(t, pos(0, 2), e.Cursor())

	run(t, e, "5rz")
	require.Equal(t, "xyyd", e.Text(), "count overruns the line")

	run(t, e, "r<esc>")
	require.Equal(t, "xyyd", e.Text())
	require.Empty(t, e.Snapshot().Pending)
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		script     string
		wantText   string
		wantCursor int
	}{
		{"single space", []string{"abc", "   def"}, "J", "abc def", 3},
		{"count", []string{"a", "b", "c", "d"}, "3J", "a b c\nd", 3},
		{"empty next line", []string{"abc", ""}, "J", "abc", 2},
		{"last line", []string{"abc"}, "J", "abc", 0},
		{"visual", []string{"a", "b", "c"}, "VjJ", "a b\nc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, Config{}, tt.lines...)

			run(t, e, tt.script)

			require.Equal(t, tt.wantText, e.Text())
			require.Equal(t, pos(0, tt.wantCursor), e.Cursor())
		})
	}
}

func TestVisualMode(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		script     string
		wantText   string
		wantReg    Register
		wantMode   mode.Mode
		wantCursor [2]int
	}{
		{"vld", []string{"abcd"}, "vld", "cd", Register{Text: "ab"}, mode.Normal, [2]int{0, 0}},
		{"backwards selection", []string{"abcd"}, "$vhhx", "a", Register{Text: "bcd"}, mode.Normal, [2]int{0, 0}},
		{"Vjd", []string{"a", "b", "c"}, "Vjd", "c", Register{Text: "a\nb\n", Linewise: true}, mode.Normal, [2]int{0, 0}},
		{"vjy", []string{"ab", "cd"}, "lvjy", "ab\ncd", Register{Text: "b\ncd"}, mode.Normal, [2]int{0, 1}},
		{"vc enters Insert", []string{"abc"}, "vlcX", "Xc", Register{Text: "ab"}, mode.Insert, [2]int{0, 1}},
		{"Vc keeps a line", []string{"abc", "d"}, "VcX", "X\nd", Register{Text: "abc\n", Linewise: true}, mode.Insert, [2]int{0, 1}},
		{"viw selects a word", []string{"foo bar"}, "wviwd", "foo ", Register{Text: "bar"}, mode.Normal, [2]int{0, 3}},
		{"vi( selects inside", []string{"f(ab)"}, "fav" + "i(y", "f(ab)", Register{Text: "ab"}, mode.Normal, [2]int{0, 2}},
		{"o swaps ends", []string{"abcd"}, "lvlohd", "d", Register{Text: "abc"}, mode.Normal, [2]int{0, 0}},
		{"v on empty line takes the break", []string{"", "x"}, "vd", "x", Register{Text: "\n"}, mode.Normal, [2]int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, Config{}, tt.lines...)

			run(t, e, tt.script)

			require.Equal(t, tt.wantText, e.Text())
			require.Equal(t, tt.wantReg, e.Register())
			require.Equal(t, tt.wantMode, e.Mode())
			require.Equal(t, pos(tt.wantCursor[0], tt.wantCursor[1]), e.Cursor())
		})
	}
}

func TestVisualMode_Toggles(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "abc")

	run(t, e, "v")
	require.Equal(t, mode.Visual, e.Mode())
	run(t, e, "V")
	require.Equal(t, mode.VisualLine, e.Mode())
	run(t, e, "v")
	require.Equal(t, mode.Visual, e.Mode())
	run(t, e, "v")
	require.Equal(t, mode.Normal, e.Mode())

	run(t, e, "vl<esc>")
	require.Equal(t, mode.Normal, e.Mode())
	require.True(t, e.cur.Primary().IsPoint())
	require.Equal(t, pos(0, 1), e.Cursor())
}

func TestVisualMode_SnapshotSelection(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "abc", "def")

	run(t, e, "vj")
	require.Equal(t, []buffer.Range{{Start: pos(0, 0), End: pos(1, 1)}}, e.Snapshot().Selections)

	run(t, e, "V")
	require.Equal(t, []buffer.Range{{Start: pos(0, 0), End: pos(1, 3)}}, e.Snapshot().Selections)

	run(t, e, "<esc>")
	require.Empty(t, e.Snapshot().Selections)
}

func TestVisualMode_SearchExtends(t *testing.T) {
	e, _ := newTestEngine(t, Config{}, "hello world")

	run(t, e, "v/wo<cr>d")

	require.Equal(t, "orld", e.Text())
}
