package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is one inbound key. Key is either a single printable character
// ("a", "G", "$") or a named key in angle brackets ("<esc>", "<cr>").
type KeyEvent struct {
	Key  string
	Mods Modifier
}

// Key returns a KeyEvent for a key in vim notation.
func Key(notation string) KeyEvent {
	return KeyEvent{Key: notation}
}

// named maps accepted spellings to the canonical name.
var named = map[string]string{
	"esc":       "<esc>",
	"escape":    "<esc>",
	"cr":        "<cr>",
	"enter":     "<cr>",
	"return":    "<cr>",
	"bs":        "<bs>",
	"backspace": "<bs>",
	"del":       "<del>",
	"delete":    "<del>",
	"tab":       "<tab>",
	"space":     " ",
	"lt":        "<",
	"left":      "<left>",
	"right":     "<right>",
	"up":        "<up>",
	"down":      "<down>",
	"home":      "<home>",
	"end":       "<end>",
}

// Notation returns the canonical vim notation used for keymap lookup.
// Control and alt combine with a single character as "<c-r>" and "<a-x>".
func (k KeyEvent) Notation() string {
	key := k.Key
	if strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">") && len(key) > 2 {
		if n, err := parseName(key[1 : len(key)-1]); err == nil {
			key = n
		}
	}
	if utf8.RuneCountInString(key) == 1 {
		switch {
		case k.Mods&ModCtrl != 0:
			return "<c-" + strings.ToLower(key) + ">"
		case k.Mods&ModAlt != 0:
			return "<a-" + key + ">"
		}
	}
	return key
}

func (k KeyEvent) String() string {
	return k.Notation()
}

// Rune returns the character of a printable key.
func (k KeyEvent) Rune() (rune, bool) {
	if !k.IsPrintable() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(k.Key)
	return r, true
}

// IsPrintable reports whether the key inserts a character in Insert mode.
func (k KeyEvent) IsPrintable() bool {
	if k.Mods&(ModCtrl|ModAlt) != 0 || utf8.RuneCountInString(k.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(k.Key)
	return unicode.IsPrint(r)
}

// IsDigit reports whether the key is an unmodified ASCII digit.
func (k KeyEvent) IsDigit() bool {
	return k.Mods == 0 && len(k.Key) == 1 && k.Key[0] >= '0' && k.Key[0] <= '9'
}

func parseName(name string) (string, error) {
	lower := strings.ToLower(name)
	if n, ok := named[lower]; ok {
		return n, nil
	}
	for _, prefix := range []string{"c-", "ctrl-", "ctrl+"} {
		if rest, ok := strings.CutPrefix(lower, prefix); ok && utf8.RuneCountInString(rest) == 1 {
			return "<c-" + rest + ">", nil
		}
	}
	for _, prefix := range []string{"a-", "m-", "alt-", "alt+"} {
		if rest, ok := strings.CutPrefix(lower, prefix); ok && utf8.RuneCountInString(rest) == 1 {
			return "<a-" + name[len(name)-len(rest):] + ">", nil
		}
	}
	return "", fmt.Errorf("unknown key <%s>", name)
}

// ParseKeys splits a key script such as "d2w", "ihello<esc>" or "<c-r>" into
// events. A "<" with no closing ">" is a literal "<", as is "<lt>"; any other
// unknown name is an error. Line breaks in the script are skipped, so multi-line script
// files need "<cr>" for Enter. A tab character becomes "<tab>".
func ParseKeys(script string) ([]KeyEvent, error) {
	var keys []KeyEvent
	for i := 0; i < len(script); {
		r, size := utf8.DecodeRuneInString(script[i:])
		switch r {
		case '\n', '\r':
			i += size
			continue
		case '\t':
			keys = append(keys, Key("<tab>"))
			i += size
			continue
		case '<':
			if end := strings.IndexByte(script[i:], '>'); end > 1 {
				name := script[i+1 : i+end]
				if !strings.ContainsAny(name, "< ") {
					n, err := parseName(name)
					if err != nil {
						return nil, err
					}
					keys = append(keys, Key(n))
					i += end + 1
					continue
				}
			}
		}
		keys = append(keys, Key(string(r)))
		i += size
	}
	return keys, nil
}

// MustParseKeys is ParseKeys for scripts known to be valid.
func MustParseKeys(script string) []KeyEvent {
	keys, err := ParseKeys(script)
	if err != nil {
		panic(err)
	}
	return keys
}

func notations(keys []KeyEvent) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Notation()
	}
	return out
}

// FormatKeys renders events back into a script.
func FormatKeys(keys []KeyEvent) string {
	var b strings.Builder
	for _, k := range keys {
		n := k.Notation()
		if n == "<" {
			n = "<lt>"
		}
		b.WriteString(n)
	}
	return b.String()
}
