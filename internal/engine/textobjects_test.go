package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextObjectBounds(t *testing.T) {
	tests := []struct {
		name       string
		object     rune
		line       string
		col        int
		inner      bool
		start, end int
		found      bool
	}{
		{"iw", 'w', "foo bar baz", 5, true, 4, 7, true},
		{"aw takes trailing blanks", 'w', "foo bar baz", 5, false, 4, 8, true},
		{"aw at line end takes leading blanks", 'w', "foo bar baz", 9, false, 7, 11, true},
		{"iw stops at punctuation", 'w', "foo.bar", 1, true, 0, 3, true},
		{"iW spans punctuation", 'W', "x foo.bar y", 3, true, 2, 9, true},
		{"iw on blank", 'w', "a  b", 1, true, 0, 0, false},
		{"i\"", '"', `say "hi" now`, 5, true, 5, 7, true},
		{"a\"", '"', `say "hi" now`, 5, false, 4, 8, true},
		{"i\" on the quote", '"', `say "hi" now`, 4, true, 5, 7, true},
		{"i\" between pairs", '"', `"a" x "b"`, 4, true, 3, 6, true},
		{"i\" skips escaped quotes", '"', `"a\"b"`, 1, true, 1, 5, true},
		{"i\" without pair", '"', `say "hi`, 5, true, 0, 0, false},
		{"i' single quotes", '\'', `it 'is' so`, 4, true, 4, 6, true},
		{"i( innermost", '(', "f(a(b)c)", 4, true, 4, 5, true},
		{"i( outer", '(', "f(a(b)c)", 2, true, 2, 7, true},
		{"a) around", ')', "f(a(b)c)", 2, false, 1, 8, true},
		{"i( empty", '(', "()", 0, true, 1, 1, true},
		{"i( none", '(', "abc", 1, true, 0, 0, false},
		{"i[", '[', "x[ab]", 3, true, 2, 4, true},
		{"i{", '{', "{ a }", 2, true, 1, 4, true},
		{"ib picks the innermost bracket", 'b', "x[a(b)]", 2, true, 2, 6, true},
		{"ib inside parens", 'b', "x[a(b)]", 4, true, 4, 5, true},
		{"past the end", '(', "(a)", 3, true, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, found := textObjects[tt.object].bounds([]rune(tt.line), tt.col, tt.inner)
			require.Equal(t, tt.found, found)
			if tt.found {
				require.Equal(t, tt.start, start, "start")
				require.Equal(t, tt.end, end, "end")
			}
		})
	}
}
