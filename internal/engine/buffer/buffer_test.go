package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_AlwaysHasOneLine(t *testing.T) {
	b := New("")
	require.Equal(t, 1, b.LineCount())
	line, err := b.LineAt(0)
	require.NoError(t, err)
	require.Equal(t, "", line)
}

func TestNew_NormalizesLineBreaks(t *testing.T) {
	b := New("a\r\nb\rc\nd")
	require.Equal(t, []string{"a", "b", "c", "d"}, b.Lines())
}

func TestLineAt_OutOfBounds(t *testing.T) {
	b := New("abc\ndef")

	_, err := b.LineAt(2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = b.LineAt(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestInsert_SingleLine(t *testing.T) {
	b := New("hello")

	pos, err := b.Insert(Position{Line: 0, Col: 5}, " world")
	require.NoError(t, err)
	require.Equal(t, "hello world", b.Text())
	require.Equal(t, Position{Line: 0, Col: 11}, pos)
}

func TestInsert_SplitsLine(t *testing.T) {
	b := New("abcdef")

	pos, err := b.Insert(Position{Line: 0, Col: 3}, "X\nY\nZ")
	require.NoError(t, err)
	require.Equal(t, []string{"abcX", "Y", "Zdef"}, b.Lines())
	require.Equal(t, Position{Line: 2, Col: 1}, pos)
}

func TestInsert_LoneNewline(t *testing.T) {
	b := New("abc")

	pos, err := b.Insert(Position{Line: 0, Col: 3}, "\n")
	require.NoError(t, err)
	require.Equal(t, []string{"abc", ""}, b.Lines())
	require.Equal(t, Position{Line: 1, Col: 0}, pos)
}

func TestInsert_Unicode(t *testing.T) {
	b := New("héllo")

	_, err := b.Insert(Position{Line: 0, Col: 2}, "日本")
	require.NoError(t, err)
	require.Equal(t, "hé日本llo", b.Text())
	require.Equal(t, 7, b.LineLen(0))
}

func TestInsert_OutOfBoundsLeavesBufferUnchanged(t *testing.T) {
	b := New("abc")
	v := b.Version()

	_, err := b.Insert(Position{Line: 0, Col: 4}, "x\ny")
	require.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = b.Insert(Position{Line: 1, Col: 0}, "x")
	require.ErrorIs(t, err, ErrOutOfBounds)

	require.Equal(t, "abc", b.Text())
	require.Equal(t, v, b.Version())
}

func TestInsert_EmptyTextIsNoop(t *testing.T) {
	b := New("abc")
	v := b.Version()

	pos, err := b.Insert(Position{Line: 0, Col: 1}, "")
	require.NoError(t, err)
	require.Equal(t, Position{Line: 0, Col: 1}, pos)
	require.Equal(t, v, b.Version())
}

func TestDelete_OrderIndependent(t *testing.T) {
	a := New("abc\ndef\nghi")
	b := New("abc\ndef\nghi")

	start := Position{Line: 0, Col: 1}
	end := Position{Line: 2, Col: 1}

	got1, err := a.Delete(Range{Start: start, End: end})
	require.NoError(t, err)
	got2, err := b.Delete(Range{Start: end, End: start})
	require.NoError(t, err)

	require.Equal(t, "bc\ndef\ng", got1)
	require.Equal(t, got1, got2)
	require.Equal(t, []string{"ahi"}, a.Lines())
	require.Equal(t, a.Lines(), b.Lines())
}

func TestDelete_JoinsLines(t *testing.T) {
	b := New("abc\ndef")

	removed, err := b.Delete(Range{Start: Position{Line: 0, Col: 3}, End: Position{Line: 1, Col: 0}})
	require.NoError(t, err)
	require.Equal(t, "\n", removed)
	require.Equal(t, []string{"abcdef"}, b.Lines())
}

func TestDelete_WholeDocumentKeepsOneLine(t *testing.T) {
	b := New("abc\ndef")

	_, err := b.Delete(Range{Start: Position{}, End: b.End()})
	require.NoError(t, err)
	require.Equal(t, 1, b.LineCount())
	require.Equal(t, "", b.Text())
}

func TestDelete_OutOfBounds(t *testing.T) {
	b := New("abc")

	_, err := b.Delete(Range{Start: Position{Line: 0, Col: 0}, End: Position{Line: 0, Col: 9}})
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.Equal(t, "abc", b.Text())
}

func TestClamp(t *testing.T) {
	b := New("abc\nde")

	require.Equal(t, Position{Line: 1, Col: 2}, b.Clamp(Position{Line: 7, Col: 9}))
	require.Equal(t, Position{Line: 0, Col: 0}, b.Clamp(Position{Line: -1, Col: -3}))
	require.Equal(t, Position{Line: 0, Col: 3}, b.Clamp(Position{Line: 0, Col: 3}))
}

func TestFirstNonBlank(t *testing.T) {
	b := New("  \tfoo\n   \n")

	require.Equal(t, 3, b.FirstNonBlank(0))
	require.Equal(t, 3, b.FirstNonBlank(1))
	require.Equal(t, 0, b.FirstNonBlank(2))
}

// Inserting text then deleting exactly the inserted region restores the
// original document.
func TestInsertDeleteRoundTrip_Property(t *testing.T) {
	alphabet := rapid.SampledFrom([]rune{'a', 'b', ' ', '\n', 'é', '日'})

	rapid.Check(t, func(t *rapid.T) {
		orig := string(rapid.SliceOfN(alphabet, 0, 40).Draw(t, "orig"))
		ins := string(rapid.SliceOfN(alphabet, 1, 20).Draw(t, "ins"))

		b := New(orig)
		line := rapid.IntRange(0, b.LineCount()-1).Draw(t, "line")
		col := rapid.IntRange(0, b.LineLen(line)).Draw(t, "col")
		at := Position{Line: line, Col: col}

		end, err := b.Insert(at, ins)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		removed, err := b.Delete(Range{Start: at, End: end})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if removed != ins {
			t.Fatalf("removed %q, inserted %q", removed, ins)
		}
		if b.Text() != orig {
			t.Fatalf("got %q, want %q", b.Text(), orig)
		}
		if b.LineCount() < 1 {
			t.Fatalf("document lost its last line")
		}
	})
}
