package engine

import (
	"github.com/atotto/clipboard"

	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// Register is yanked or deleted text. Linewise text holds whole lines and
// pastes above or below the cursor line.
type Register struct {
	Text     string
	Linewise bool
}

// Clipboard receives register contents.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard returns a Clipboard writing to the OS clipboard.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// ClipboardAvailable reports whether the OS clipboard can be used.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}

type registers struct {
	unnamed Register
	sink    Clipboard
}

func (r *registers) set(text string, linewise bool) {
	r.unnamed = Register{Text: text, Linewise: linewise}
	if r.sink == nil {
		return
	}
	if err := r.sink.WriteAll(text); err != nil {
		log.Warn(log.CatEngine, "clipboard write failed", "error", err)
	}
}
