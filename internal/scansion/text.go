package scansion

import (
	"fmt"
	"strings"
)

// EmptyPattern is the text form of a word with no syllables.
const EmptyPattern = "-"

// Parse reads the plain-text scansion format: one poem line per text line,
// word patterns separated by whitespace, EmptyPattern for a word without
// syllables. Blank text lines become empty lines.
func Parse(text string) (Scansion, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return Scansion{}, nil
	}
	rows := strings.Split(text, "\n")
	out := make(Scansion, len(rows))
	for i, row := range rows {
		fields := strings.Fields(row)
		line := make(Line, len(fields))
		for j, f := range fields {
			if f != EmptyPattern {
				line[j] = Pattern(f)
			}
		}
		out[i] = line
	}
	if err := out.Validate(true); err != nil {
		return nil, err
	}
	return out, nil
}

// String renders s in the format accepted by Parse.
func (s Scansion) String() string {
	var b strings.Builder
	for i, line := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, p := range line {
			if j > 0 {
				b.WriteByte(' ')
			}
			if p == "" {
				b.WriteString(EmptyPattern)
				continue
			}
			b.WriteString(string(p))
		}
	}
	return b.String()
}

// Validate checks every symbol against the alphabet. Unknown is accepted only when allowUnknown is set.
func (s Scansion) Validate(allowUnknown bool) error {
	for i, line := range s {
		for j, p := range line {
			for k := 0; k < len(p); k++ {
				switch Stress(p[k]) {
				case Unstressed, Stressed:
				case Unknown:
					if !allowUnknown {
						return fmt.Errorf("line %d word %d syllable %d: %q: %w", i, j, k, p[k], ErrInvalidSymbol)
					}
				default:
					return fmt.Errorf("line %d word %d syllable %d: %q: %w", i, j, k, p[k], ErrInvalidSymbol)
				}
			}
		}
	}
	return nil
}
