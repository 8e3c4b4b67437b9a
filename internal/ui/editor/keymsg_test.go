package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
)

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []string
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, []string{"a"}},
		{"burst", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dw")}, []string{"d", "w"}},
		{"pasted newline", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb"), Paste: true}, []string{"a", "<cr>", "b"}},
		{"pasted tab", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\t")}, []string{"<tab>"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, []string{"<a-x>"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, []string{" "}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []string{"<esc>"}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []string{"<cr>"}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []string{"<bs>"}},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, []string{"<del>"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []string{"<tab>"}},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, []string{"<left>"}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, []string{"<home>"}},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, []string{"<c-r>"}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []string{"<c-c>"}},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ev := range keyEvents(tt.msg) {
				got = append(got, ev.Notation())
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestKeyEvents_ParseRoundTrip(t *testing.T) {
	evs := keyEvents(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d2w")})
	require.Equal(t, engine.MustParseKeys("d2w"), evs)
}
