package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/buffer"
	"github.com/Mulraeng/Vim-doc-editor/internal/ui/styles"
)

const (
	tabWidth        = 4
	maxMessageLines = 2
	noName          = "[No Name]"
)

// View implements tea.Model.
func (m Model) View() string {
	footer := m.footer()
	rows := max(m.height-len(footer), 1)
	textWidth := max(m.width-m.gutterWidth(), 1)

	var b strings.Builder
	for row := range rows {
		i := m.top + row
		if i < len(m.snap.Lines) {
			b.WriteString(m.gutter(i))
			b.WriteString(m.renderLine(i, textWidth))
		} else {
			b.WriteString(styles.GutterStyle.Render("~"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Join(footer, "\n"))
	return b.String()
}

// footer returns the lines below the text area, top to bottom.
func (m Model) footer() []string {
	var lines []string
	if m.ui.ShowStatusBar {
		lines = append(lines, m.statusBar())
	}
	lines = append(lines, m.messageLines()...)
	if m.ui.ShowHelp || m.fullHelp {
		h := m.help
		h.ShowAll = m.fullHelp
		lines = append(lines, strings.Split(h.View(m.keys), "\n")...)
	}
	if m.showLog {
		lines = append(lines, ansi.Truncate(styles.LogStyle.Render(m.lastLog), m.width, "…"))
	}
	return lines
}

func (m Model) textRows() int {
	return max(m.height-len(m.footer()), 1)
}

func (m Model) gutterWidth() int {
	if !m.ui.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(len(m.snap.Lines))) + 1
}

func (m Model) gutter(i int) string {
	w := m.gutterWidth()
	if w == 0 {
		return ""
	}
	return styles.GutterStyle.Render(fmt.Sprintf("%*d ", w-1, i+1))
}

// cellWidth is the number of terminal cells r occupies at display column x.
func cellWidth(r rune, x int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	return runewidth.RuneWidth(r)
}

// displayCol converts a rune column to a display column.
func displayCol(line string, col int) int {
	x := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		x += cellWidth(r, x)
	}
	return x
}

// scroll keeps the cursor inside the visible text area.
func (m *Model) scroll() {
	rows := m.textRows()
	cur := m.snap.Cursor
	switch {
	case cur.Line < m.top:
		m.top = cur.Line
	case cur.Line >= m.top+rows:
		m.top = cur.Line - rows + 1
	}
	m.top = max(min(m.top, len(m.snap.Lines)-1), 0)

	if cur.Line >= len(m.snap.Lines) {
		return
	}
	width := max(m.width-m.gutterWidth(), 1)
	x := displayCol(m.snap.Lines[cur.Line], cur.Col)
	switch {
	case x < m.left:
		m.left = x
	case x >= m.left+width:
		m.left = x - width + 1
	}
}

func (m Model) selected(p buffer.Position, empty bool) bool {
	for _, r := range m.snap.Selections {
		if empty {
			if p.Line >= r.Start.Line && p.Line <= r.End.Line {
				return true
			}
			continue
		}
		if !p.Less(r.Start) && p.Less(r.End) {
			return true
		}
	}
	return false
}

// renderLine draws line i clipped to the horizontal scroll window.
func (m Model) renderLine(i, width int) string {
	runes := []rune(m.snap.Lines[i])
	cur := m.snap.Cursor
	right := m.left + width

	var b strings.Builder
	x := 0
	for col, r := range runes {
		w := cellWidth(r, x)
		if x >= right {
			break
		}
		start := x
		x += w
		if x <= m.left {
			continue
		}

		cell := string(r)
		if r == '\t' || start < m.left || x > right {
			cell = strings.Repeat(" ", min(x, right)-max(start, m.left))
		}
		p := buffer.Position{Line: i, Col: col}
		switch {
		case p == cur:
			b.WriteString(styles.CursorStyle.Render(cell))
		case m.selected(p, false):
			b.WriteString(styles.SelectionStyle.Render(cell))
		default:
			b.WriteString(styles.TextStyle.Render(cell))
		}
	}

	if x < right && x >= m.left {
		p := buffer.Position{Line: i, Col: len(runes)}
		switch {
		case p == cur:
			b.WriteString(styles.CursorStyle.Render(" "))
		case len(runes) == 0 && m.selected(p, true):
			b.WriteString(styles.SelectionStyle.Render(" "))
		}
	}
	return b.String()
}

func (m Model) fileName() string {
	if m.path == "" {
		return noName
	}
	return filepath.Base(m.path)
}

func (m Model) statusBar() string {
	snap := m.snap
	badge := styles.ModeStyle(snap.Mode).Render(snap.ModeName)

	pos := fmt.Sprintf("%d:%d", snap.Cursor.Line+1, snap.Cursor.Col+1)
	right := styles.StatusBarStyle.Render(" " + pos + " ")
	if snap.Pending != "" {
		right = styles.PendingStyle.Render(" "+snap.Pending+" ") + right
	}

	dirty := ""
	if m.Dirty() {
		dirty = styles.DirtyStyle.Render(" [+]")
	}

	room := m.width - lipgloss.Width(badge) - lipgloss.Width(right) - lipgloss.Width(dirty) - 1
	name := m.fileName()
	if uniseg.StringWidth(name) > room {
		name = ansi.Truncate(name, max(room, 0), "…")
	}
	left := badge + styles.StatusBarStyle.Render(" "+name) + dirty

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + styles.StatusBarStyle.Render(strings.Repeat(" ", gap)) + right
	return ansi.Truncate(bar, m.width, "")
}

// messageLines renders the command line: the open search prompt, a shell
// notice, or the engine's message, wrapped to at most two lines.
func (m Model) messageLines() []string {
	text, style := m.snap.Message, styles.MessageStyle
	switch {
	case m.snap.Prompt != "":
		text, style = m.snap.Prompt, styles.PromptStyle
	case m.notice != "":
		text, style = m.notice, styles.NoticeStyle
	}
	if text == "" {
		return []string{""}
	}

	lines := strings.Split(wordwrap.String(text, max(m.width, 1)), "\n")
	if len(lines) > maxMessageLines {
		lines = lines[:maxMessageLines]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(style.Render(l), m.width, "…")
	}
	return lines
}
