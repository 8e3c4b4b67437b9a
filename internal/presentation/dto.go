package presentation

import (
	"github.com/Mulraeng/Vim-doc-editor/internal/engine"
	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

// PositionDTO is a zero-based cursor position.
type PositionDTO struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// ReplayDTO is the result of running a key script.
type ReplayDTO struct {
	Text         string      `json:"text"`
	Mode         string      `json:"mode"`
	Cursor       PositionDTO `json:"cursor"`
	Pending      string      `json:"pending,omitempty"`
	Message      string      `json:"message,omitempty"`
	Outcome      string      `json:"outcome"`
	Keys         int         `json:"keys"`
	HistoryDepth int         `json:"history_depth"`
	CanRedo      bool        `json:"can_redo"`
}

// FromSnapshot builds a replay result from the final engine state.
func FromSnapshot(s engine.Snapshot, last engine.Outcome, keys, depth int) ReplayDTO {
	return ReplayDTO{
		Text:         s.Text,
		Mode:         s.ModeName,
		Cursor:       PositionDTO{Line: s.Cursor.Line, Col: s.Cursor.Col},
		Pending:      s.Pending,
		Message:      s.Message,
		Outcome:      last.String(),
		Keys:         keys,
		HistoryDepth: depth,
		CanRedo:      s.CanRedo,
	}
}

// CommandDTO describes one key binding for the reference listing.
type CommandDTO struct {
	ID    string   `json:"id"`
	Kind  string   `json:"kind"`
	Keys  []string `json:"keys"`
	Modes []string `json:"modes"`
	Help  string   `json:"help"`
}

// FromCommand converts an engine command.
func FromCommand(c *engine.Command) CommandDTO {
	modes := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		modes[i] = m.String()
	}
	keys := c.Keys
	if keys == nil {
		keys = []string{}
	}
	return CommandDTO{
		ID:    c.ID,
		Kind:  c.Kind.String(),
		Keys:  keys,
		Modes: modes,
		Help:  c.Help,
	}
}

// FromCommands converts a command table, keeping its order.
func FromCommands(cmds []*engine.Command) []CommandDTO {
	out := make([]CommandDTO, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, FromCommand(c))
	}
	return out
}

// allModes reports whether modes names every mode.
func allModes(modes []string) bool {
	return len(modes) == len(mode.All)
}
