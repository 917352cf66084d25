package engine

// Result is the tagged outcome of dispatching a line. The reserved
// "type" key discriminates; everything else is up to the handler.
// Read loops switch on the tag to decide what to do next.
type Result map[string]any

// Tags returned by the engine itself. Handlers are free to define
// their own.
const (
	TagHelp           = "help"
	TagExit           = "exit"
	TagUnknownCommand = "unknown_command"
)

// NewResult creates a result carrying the given tag.
func NewResult(tag string) Result {
	return Result{"type": tag}
}

// Type returns the result's tag, or "" when the tag is missing.
func (r Result) Type() string {
	tag, _ := r["type"].(string)
	return tag
}

// Str returns the named entry as a string, or "" when absent or not
// a string.
func (r Result) Str(key string) string {
	s, _ := r[key].(string)
	return s
}
