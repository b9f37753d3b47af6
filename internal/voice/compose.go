// Package voice reads hold descriptions aloud.
package voice

import (
	"fmt"
	"strings"

	"github.com/banshee-data/holdmap/internal/wall"
)

// Field names one part of a hold description.
type Field string

const (
	FieldID     Field = "id"
	FieldPanel  Field = "panel"
	FieldGrid   Field = "grid"
	FieldColumn Field = "column"
	FieldRow    Field = "row"
	FieldAngle  Field = "angle"
)

// DefaultFields is the order the display shows them in.
func DefaultFields() []Field {
	return []Field{FieldPanel, FieldGrid, FieldColumn, FieldRow, FieldAngle}
}

// ParseFields validates a configured field order. Names are case-insensitive
// and may not repeat.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	seen := make(map[Field]bool, len(names))
	for _, n := range names {
		f := Field(strings.ToLower(strings.TrimSpace(n)))
		switch f {
		case FieldID, FieldPanel, FieldGrid, FieldColumn, FieldRow, FieldAngle:
		default:
			return nil, fmt.Errorf("unknown voice field %q", n)
		}
		if seen[f] {
			return nil, fmt.Errorf("voice field %q listed twice", n)
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// Compose turns d into one phrase per field, skipping fields with no value.
func Compose(d wall.Description, fields []Field) []string {
	var phrases []string
	for _, f := range fields {
		var p string
		switch f {
		case FieldID:
			if d.ID != "" {
				p = "hold " + spellID(d.ID)
			}
		case FieldPanel:
			if d.Panel != "" {
				p = strings.ToLower(d.Panel) + " panel"
			}
		case FieldGrid:
			if d.Grid != "" {
				p = strings.ToLower(d.Grid) + " grid"
			}
		case FieldColumn:
			p = strings.ToLower(d.Column)
		case FieldRow:
			p = strings.ToLower(d.Row)
		case FieldAngle:
			if d.Angle != "" {
				p = "angle " + d.Angle
			}
		}
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

// spellID separates a leading or trailing letter so "D1100" is read as
// "D 1100" rather than as a word.
func spellID(id string) string {
	var b strings.Builder
	prevDigit := false
	for i, r := range id {
		isDigit := r >= '0' && r <= '9'
		if i > 0 && isDigit != prevDigit {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevDigit = isDigit
	}
	return b.String()
}
