package search

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
)

func pos(l, c int) buffer.Position { return buffer.Position{Line: l, Col: c} }

func TestFind_ForwardFromOrigin(t *testing.T) {
	doc := buffer.New("hello world")
	e := New(Options{})

	got, err := e.Find(doc, "wo", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 6), got)
}

func TestFind_StartsAfterCursor(t *testing.T) {
	doc := buffer.New("ab ab ab")
	e := New(Options{})

	got, err := e.Find(doc, "ab", pos(0, 3), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 6), got)

	got, err = e.Find(doc, "ab", pos(0, 3), Backward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)
}

func TestFind_OverlappingMatches(t *testing.T) {
	doc := buffer.New("aaaa")
	e := New(Options{})

	got, err := e.Find(doc, "aa", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 1), got)

	got, err = e.Next(doc, got, false)
	require.NoError(t, err)
	require.Equal(t, pos(0, 2), got)

	got, err = e.Find(doc, "aa", pos(0, 2), Backward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 1), got)
}

func TestFind_OverlappingKeepsLineContext(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		from    buffer.Position
		dir     Direction
		want    buffer.Position
	}{
		{"anchor only at line start", "aaa\nx", "^a", pos(0, 0), Forward, pos(0, 0)},
		{"word boundary skips inner", "foofoo foo", `\bfoo`, pos(0, 0), Forward, pos(0, 7)},
		{"non boundary inside word", "aaa", `\Ba`, pos(0, 0), Forward, pos(0, 1)},
		{"end anchor", "abab", "ab$", pos(0, 0), Forward, pos(0, 2)},
		{"wide runes", "日日日", "日日", pos(0, 2), Backward, pos(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(Options{}).Find(buffer.New(tt.text), tt.pattern, tt.from, tt.dir)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFind_WrapsOnce(t *testing.T) {
	doc := buffer.New("target\nmiddle\nend")
	e := New(Options{})

	got, err := e.Find(doc, "target", pos(1, 2), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)

	got, err = e.Find(doc, "end", pos(1, 0), Backward)
	require.NoError(t, err)
	require.Equal(t, pos(2, 0), got)
}

func TestFind_OnlyMatchUnderCursor(t *testing.T) {
	doc := buffer.New("one\nx")
	e := New(Options{})

	got, err := e.Find(doc, "one", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)

	got, err = e.Find(doc, "one", pos(0, 0), Backward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)
}

func TestFind_NotFound(t *testing.T) {
	doc := buffer.New("abc")
	e := New(Options{})

	got, err := e.Find(doc, "zzz", pos(0, 1), Forward)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, pos(0, 1), got)

	last, dir := e.Last()
	require.Equal(t, "zzz", last)
	require.Equal(t, Forward, dir)
}

func TestFind_InvalidPattern(t *testing.T) {
	e := New(Options{})

	_, err := e.Find(buffer.New("abc"), "(", pos(0, 0), Forward)
	require.ErrorIs(t, err, ErrInvalidPattern)
	require.Zero(t, e.CacheStats().Entries)

	last, _ := e.Last()
	require.Empty(t, last)
}

func TestFind_Literal(t *testing.T) {
	doc := buffer.New("a.c abc")

	got, err := New(Options{}).Find(doc, "a.c", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 4), got)

	got, err = New(Options{Literal: true}).Find(doc, "a.c", pos(0, 6), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)
}

func TestFind_Case(t *testing.T) {
	doc := buffer.New("x Foo foo")

	got, err := New(Options{}).Find(doc, "foo", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 6), got)

	got, err = New(Options{IgnoreCase: true}).Find(doc, "foo", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 2), got)

	got, err = New(Options{IgnoreCase: true, SmartCase: true}).Find(doc, "foo", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 2), got)

	got, err = New(Options{IgnoreCase: true, SmartCase: true}).Find(doc, "Foo", pos(0, 3), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 2), got, "upper case disables folding, so only the wrapped match is left")
}

func TestFind_RuneColumns(t *testing.T) {
	doc := buffer.New("日本語 text")

	got, err := New(Options{}).Find(doc, "text", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 4), got)
}

func TestNext_RepeatsAndReverses(t *testing.T) {
	doc := buffer.New("a1 a2 a3")
	e := New(Options{})

	_, err := e.Next(doc, pos(0, 0), false)
	require.ErrorIs(t, err, ErrNoPattern)

	got, err := e.Find(doc, "a", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 3), got)

	got, err = e.Next(doc, got, false)
	require.NoError(t, err)
	require.Equal(t, pos(0, 6), got)

	got, err = e.Next(doc, got, true)
	require.NoError(t, err)
	require.Equal(t, pos(0, 3), got)

	_, dir := e.Last()
	require.Equal(t, Forward, dir, "N does not change the remembered direction")
}

func TestFind_EmptyPatternReusesLast(t *testing.T) {
	doc := buffer.New("ab ab")
	e := New(Options{})

	_, err := e.Find(doc, "", pos(0, 0), Forward)
	require.ErrorIs(t, err, ErrNoPattern)

	_, err = e.Find(doc, "ab", pos(0, 0), Forward)
	require.NoError(t, err)
	got, err := e.Find(doc, "", pos(0, 3), Backward)
	require.NoError(t, err)
	require.Equal(t, pos(0, 0), got)
}

func TestFind_CachesCompiledPatterns(t *testing.T) {
	doc := buffer.New("abc")
	e := New(Options{})

	for range 3 {
		_, err := e.Find(doc, "b", pos(0, 0), Forward)
		require.NoError(t, err)
	}
	stats := e.CacheStats()
	require.Equal(t, 1, stats.Entries)
	require.Equal(t, 2, stats.Hits)
	require.Equal(t, 1, stats.Misses)

	folded := New(Options{IgnoreCase: true})
	for _, p := range []string{"b", "B"} {
		_, err := folded.Find(doc, p, pos(0, 0), Forward)
		require.NoError(t, err)
	}
	require.Equal(t, 2, folded.CacheStats().Entries)

	uncached := New(Options{NoCache: true})
	_, err := uncached.Find(doc, "b", pos(0, 0), Forward)
	require.NoError(t, err)
	require.Zero(t, uncached.CacheStats().Entries)
}

// A literal search for text taken from the document always finds a match
// inside the document.
func TestFind_FindsExistingText_Property(t *testing.T) {
	alphabet := rapid.SampledFrom([]rune{'a', 'b', ' ', '\n', 'é'})

	rapid.Check(t, func(t *rapid.T) {
		text := string(rapid.SliceOfN(alphabet, 1, 40).Draw(t, "text"))
		doc := buffer.New(text)
		line := rapid.IntRange(0, doc.LineCount()-1).Draw(t, "line")
		runes := doc.Runes(line)
		if len(runes) == 0 {
			t.Skip("empty line")
		}
		start := rapid.IntRange(0, len(runes)-1).Draw(t, "start")
		end := rapid.IntRange(start+1, len(runes)).Draw(t, "end")
		needle := string(runes[start:end])

		fromLine := rapid.IntRange(0, doc.LineCount()-1).Draw(t, "fromLine")
		from := pos(fromLine, rapid.IntRange(0, doc.LineLen(fromLine)).Draw(t, "fromCol"))
		dir := rapid.SampledFrom([]Direction{Forward, Backward}).Draw(t, "dir")

		got, err := New(Options{Literal: true}).Find(doc, needle, from, dir)
		if err != nil {
			t.Fatalf("find %q: %v", needle, err)
		}
		if !doc.Valid(got) {
			t.Fatalf("match %v outside document", got)
		}
	})
}
