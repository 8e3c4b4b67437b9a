package tracing

// Span names.
const (
	SpanHandleKey = "engine.handle_key"
	SpanTick      = "engine.tick"
)

// Span attribute keys.
const (
	AttrKey     = "key"
	AttrMode    = "mode"
	AttrOutcome = "outcome"
	AttrCommand = "command"
	AttrMessage = "message"
)

// Span event names.
const (
	EventModeChanged = "mode.changed"
)
