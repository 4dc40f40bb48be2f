// Package clierr holds the configuration/validation error taxonomy
// (spec.md §7): errors that carry no source position and are reported
// plainly before any analysis runs — an unknown flag, a malformed
// --min value, a missing scan directory, an unparsable config file.
package clierr

import "fmt"

// Error is a plain validation failure. It never carries a source
// position — a fatal error from the AST service itself is reported as
// the diagnostic's own file:line:col-formatted message instead.
type Error struct {
	// Field names the flag, config key, or path at fault, e.g. "--min"
	// or "dittory.config.js".
	Field   string
	Message string
}

func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Newf builds an Error with a formatted message.
func Newf(field, format string, args ...any) *Error {
	return New(field, fmt.Sprintf(format, args...))
}
