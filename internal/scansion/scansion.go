// Package scansion models a poem's metrical scansion and the edits a reader makes to it.
package scansion

import "errors"

// Stress is a single syllable symbol.
type Stress byte

const (
	Unstressed Stress = 'u'
	Stressed   Stress = '/'
	// Unknown appears only in machine scansions for syllables no algorithm could decide.
	Unknown Stress = '?'
)

var (
	ErrOutOfRange    = errors.New("coordinate out of range")
	ErrInvalidSymbol = errors.New("invalid stress symbol")
)

// Pattern is the stress string of one word, one symbol per syllable.
type Pattern string

// Syllables returns the number of syllables in the pattern.
func (p Pattern) Syllables() int {
	return len(p)
}

// Line holds the patterns of a poem line in left-to-right word order.
// An empty line is a structural gap such as a blank line between stanzas.
type Line []Pattern

// Scansion is an ordered sequence of lines.
type Scansion []Line

// Coord addresses a word in a scansion.
type Coord struct {
	Line int
	Word int
}

// Clone returns a deep copy of s.
func (s Scansion) Clone() Scansion {
	if s == nil {
		return nil
	}
	out := make(Scansion, len(s))
	for i, line := range s {
		out[i] = append(Line(nil), line...)
	}
	return out
}

// WordCount returns the number of words across all lines.
func (s Scansion) WordCount() int {
	total := 0
	for _, line := range s {
		total += len(line)
	}
	return total
}

// Pattern returns the pattern at c.
func (s Scansion) Pattern(c Coord) (Pattern, bool) {
	if c.Line < 0 || c.Line >= len(s) {
		return "", false
	}
	line := s[c.Line]
	if c.Word < 0 || c.Word >= len(line) {
		return "", false
	}
	return line[c.Word], true
}

// Blank returns a scansion with the same skeleton and syllable counts as s, every syllable unstressed.
func (s Scansion) Blank() Scansion {
	out := make(Scansion, len(s))
	for i, line := range s {
		blank := make(Line, len(line))
		for j, p := range line {
			blank[j] = Pattern(repeat(Unstressed, len(p)))
		}
		out[i] = blank
	}
	return out
}

// Equal reports whether a and b have identical skeletons and patterns.
func Equal(a, b Scansion) bool {
	if !SameShape(a, b) {
		return false
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// SameShape reports whether a and b have the same line count and words per line.
func SameShape(a, b Scansion) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}

func repeat(s Stress, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(s)
	}
	return out
}
