package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReplay formats a replay result as JSON
func (f *Formatter) FormatReplay(result ReplayDTO) error {
	return f.encode(result)
}

// FormatCommands formats the key reference as JSON
func (f *Formatter) FormatCommands(commands []CommandDTO) error {
	return f.encode(commands)
}

// FormatText writes the document followed by a newline.
func (f *Formatter) FormatText(text string) error {
	_, err := fmt.Fprintln(f.writer, text)
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// kindTitles orders the sections of the markdown reference.
var kindTitles = []struct{ kind, title string }{
	{"motion", "Motions"},
	{"textobject", "Text objects"},
	{"operator", "Operators"},
	{"edit", "Editing"},
	{"mode", "Modes"},
	{"search", "Search"},
	{"history", "Undo"},
}

// KeysMarkdown renders the key reference as markdown tables, one per
// command kind.
func KeysMarkdown(commands []CommandDTO) string {
	var b strings.Builder
	b.WriteString("# Key reference\n")
	for _, k := range kindTitles {
		rows := 0
		for _, c := range commands {
			if c.Kind != k.kind {
				continue
			}
			if rows == 0 {
				fmt.Fprintf(&b, "\n## %s\n\n| Keys | Modes | Action |\n|------|-------|--------|\n", k.title)
			}
			rows++
			fmt.Fprintf(&b, "| %s | %s | %s |\n", keyCell(c.Keys), modeCell(c.Modes), escapeCell(c.Help))
		}
	}
	return b.String()
}

func keyCell(keys []string) string {
	if len(keys) == 0 {
		return "*text*"
	}
	cells := make([]string, len(keys))
	for i, k := range keys {
		cells[i] = "`" + escapeCell(k) + "`"
	}
	return strings.Join(cells, " ")
}

func modeCell(modes []string) string {
	if allModes(modes) {
		return "all"
	}
	return strings.Join(modes, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
