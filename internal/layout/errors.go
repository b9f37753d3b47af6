package layout

import (
	"errors"
	"fmt"
)

// Lookup kinds reported by LookupError.
const (
	KindHold   = "hold"
	KindRow    = "row"
	KindColumn = "column"
)

// LookupError reports an identifier, row or column that is not part of the
// loaded dataset or layout. Lookups are deterministic, so callers surface it as
// "not found" and never retry.
type LookupError struct {
	Kind   string
	Label  string
	Family Family // empty when the label was not checked against a grid family
}

func (e *LookupError) Error() string {
	if e.Family != "" {
		return fmt.Sprintf("unknown %s %q for %s grid", e.Kind, e.Label, e.Family)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Label)
}

// ConfigurationError reports a layout or style value that the fixed layout
// expects but is missing or inconsistent. It indicates a data bug rather than a
// user error: the current operation fails, the process keeps running.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("layout configuration: %s: %s", e.Field, e.Reason)
}

// IsLookup reports whether err wraps a *LookupError.
func IsLookup(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// IsConfiguration reports whether err wraps a *ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
