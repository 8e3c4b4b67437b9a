// Package mode tracks the editing mode and enforces which transitions are
// legal. Hooks run on every successful transition so the engine can adjust
// the cursor and history grouping.
package mode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mulraeng/Vim-doc-editor/internal/log"
)

// Mode is one of the editing modes.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
	Replace
)

// All lists every mode in declaration order.
var All = []Mode{Normal, Insert, Visual, VisualLine, Replace}

var names = map[Mode]string{
	Normal:     "NORMAL",
	Insert:     "INSERT",
	Visual:     "VISUAL",
	VisualLine: "V-LINE",
	Replace:    "REPLACE",
}

func (m Mode) String() string {
	if s, ok := names[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Parse maps a configuration name such as "insert" or "visual_line" to a
// Mode.
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal":
		return Normal, nil
	case "insert":
		return Insert, nil
	case "visual":
		return Visual, nil
	case "visual_line", "visual-line", "v-line", "vline":
		return VisualLine, nil
	case "replace":
		return Replace, nil
	}
	return Normal, fmt.Errorf("unknown mode %q", name)
}

// IsVisual reports whether m has an anchored selection.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// IsInsertLike reports whether printable keys edit text in m.
func (m Mode) IsInsertLike() bool {
	return m == Insert || m == Replace
}

var (
	// ErrIllegalTransition is returned for a transition outside the table.
	ErrIllegalTransition = errors.New("illegal mode transition")
	// ErrModeDisabled is returned when the target mode is switched off.
	ErrModeDisabled = errors.New("mode disabled")
)

// legal[from] lists the modes reachable from from.
var legal = map[Mode][]Mode{
	Normal:     {Insert, Visual, VisualLine, Replace},
	Insert:     {Normal},
	Replace:    {Normal},
	Visual:     {Normal, VisualLine},
	VisualLine: {Normal, Visual},
}

// Hook observes a transition.
type Hook func(from, to Mode)

// Controller holds the current mode.
type Controller struct {
	current Mode
	enabled map[Mode]bool

	onExit   map[Mode][]Hook
	onEnter  map[Mode][]Hook
	onChange []Hook
}

// NewController starts in Normal with the given modes enabled. Normal is
// always enabled. With no modes listed, every mode is enabled.
func NewController(enabled ...Mode) *Controller {
	c := &Controller{
		current: Normal,
		enabled: map[Mode]bool{Normal: true},
		onExit:  make(map[Mode][]Hook),
		onEnter: make(map[Mode][]Hook),
	}
	if len(enabled) == 0 {
		enabled = All
	}
	for _, m := range enabled {
		c.enabled[m] = true
	}
	return c
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Enabled reports whether m may be entered.
func (c *Controller) Enabled(m Mode) bool {
	return c.enabled[m]
}

// CanTransition reports whether Transition(to) would succeed.
func (c *Controller) CanTransition(to Mode) error {
	if !c.enabled[to] {
		return fmt.Errorf("%s: %w", to, ErrModeDisabled)
	}
	for _, m := range legal[c.current] {
		if m == to {
			return nil
		}
	}
	return fmt.Errorf("%s -> %s: %w", c.current, to, ErrIllegalTransition)
}

// Transition switches to to. Exit hooks of the old mode run first, then the
// mode changes, then enter hooks of the new mode, then change hooks. A
// rejected transition leaves the mode untouched and runs no hooks.
func (c *Controller) Transition(to Mode) error {
	if err := c.CanTransition(to); err != nil {
		log.Debug(log.CatMode, "transition rejected", "from", c.current, "to", to, "error", err)
		return err
	}

	from := c.current
	for _, h := range c.onExit[from] {
		h(from, to)
	}
	c.current = to
	for _, h := range c.onEnter[to] {
		h(from, to)
	}
	for _, h := range c.onChange {
		h(from, to)
	}

	log.Debug(log.CatMode, "transition", "from", from, "to", to)
	return nil
}

// OnExit registers h to run when leaving m.
func (c *Controller) OnExit(m Mode, h Hook) {
	c.onExit[m] = append(c.onExit[m], h)
}

// OnEnter registers h to run when entering m.
func (c *Controller) OnEnter(m Mode, h Hook) {
	c.onEnter[m] = append(c.onEnter[m], h)
}

// OnChange registers h to run after every transition.
func (c *Controller) OnChange(h Hook) {
	c.onChange = append(c.onChange, h)
}
