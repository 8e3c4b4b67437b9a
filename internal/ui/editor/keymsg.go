package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
)

var namedKeys = map[tea.KeyType]string{
	tea.KeyEsc:       "<esc>",
	tea.KeyEnter:     "<cr>",
	tea.KeyBackspace: "<bs>",
	tea.KeyDelete:    "<del>",
	tea.KeyTab:       "<tab>",
	tea.KeySpace:     " ",
	tea.KeyUp:        "<up>",
	tea.KeyDown:      "<down>",
	tea.KeyLeft:      "<left>",
	tea.KeyRight:     "<right>",
	tea.KeyHome:      "<home>",
	tea.KeyEnd:       "<end>",
}

// keyEvents converts a Bubble Tea key message into engine key events. A
// paste or a burst of typed runes yields one event per rune. Keys the
// engine has no notation for yield nothing.
func keyEvents(msg tea.KeyMsg) []engine.KeyEvent {
	var mods engine.Modifier
	if msg.Alt {
		mods = engine.ModAlt
	}

	if msg.Type == tea.KeyRunes {
		out := make([]engine.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				out = append(out, engine.Key("<cr>"))
			case '\t':
				out = append(out, engine.Key("<tab>"))
			default:
				out = append(out, engine.KeyEvent{Key: string(r), Mods: mods})
			}
		}
		return out
	}

	if n, ok := namedKeys[msg.Type]; ok {
		return []engine.KeyEvent{{Key: n, Mods: mods}}
	}

	if c, ok := strings.CutPrefix(msg.String(), "ctrl+"); ok && len(c) == 1 {
		return []engine.KeyEvent{{Key: c, Mods: engine.ModCtrl}}
	}
	return nil
}
