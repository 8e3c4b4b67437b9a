// Package keys contains the editor shell keybindings. Everything else a
// user types goes to the modal engine.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings handled by the shell before the engine sees
// a key.
type KeyMap struct {
	Save       key.Binding
	Quit       key.Binding
	ToggleHelp key.Binding
	ToggleLog  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "log"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.ToggleHelp}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit},
		{k.ToggleHelp, k.ToggleLog},
	}
}

// Editor is the shared default keymap.
var Editor = DefaultKeyMap()
