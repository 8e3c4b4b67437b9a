// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1E1E1E", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"}

	// Status
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	// Mode badge backgrounds (Catppuccin)
	ModeNormalColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	ModeInsertColor  = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	ModeVisualColor  = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	ModeReplaceColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red
	ModeTextColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

	StatusBarBgColor = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#313244"}
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#ACB0BE", Dark: "#45475A"}

	TextStyle   = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	GutterStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	HelpStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	LogStyle    = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	CursorStyle    = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Background(StatusBarBgColor)

	PendingStyle = StatusBarStyle.Foreground(StatusWarningColor)
	DirtyStyle   = StatusBarStyle.Foreground(StatusWarningColor).Bold(true)
	MessageStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	NoticeStyle  = lipgloss.NewStyle().Foreground(StatusErrorColor)
	PromptStyle  = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)

	baseModeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ModeTextColor)
)

// ModeStyle returns the status bar badge style for m.
func ModeStyle(m mode.Mode) lipgloss.Style {
	switch {
	case m.IsVisual():
		return baseModeStyle.Background(ModeVisualColor)
	case m == mode.Replace:
		return baseModeStyle.Background(ModeReplaceColor)
	case m.IsInsertLike():
		return baseModeStyle.Background(ModeInsertColor)
	default:
		return baseModeStyle.Background(ModeNormalColor)
	}
}
