package scansion

import "fmt"

// Toggle flips the stress of one syllable: unstressed becomes stressed, stressed becomes
// unstressed, and Unknown resolves to unstressed. The pattern length never changes.
func Toggle(s Scansion, line, word, syllable int) (Scansion, error) {
	p, err := patternAt(s, line, word)
	if err != nil {
		return nil, err
	}
	if syllable < 0 || syllable >= len(p) {
		return nil, fmt.Errorf("syllable %d of word %d:%d (%d syllables): %w", syllable, line, word, len(p), ErrOutOfRange)
	}
	next := Unstressed
	if Stress(p[syllable]) == Unstressed {
		next = Stressed
	}
	b := []byte(p)
	b[syllable] = byte(next)
	return replace(s, line, word, Pattern(b)), nil
}

// AddSyllable appends an unstressed syllable to a word.
func AddSyllable(s Scansion, line, word int) (Scansion, error) {
	p, err := patternAt(s, line, word)
	if err != nil {
		return nil, err
	}
	return replace(s, line, word, p+Pattern(Unstressed)), nil
}

// RemoveSyllable drops the last syllable of a word. Removing from an empty word is a no-op.
func RemoveSyllable(s Scansion, line, word int) (Scansion, error) {
	p, err := patternAt(s, line, word)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return s.Clone(), nil
	}
	return replace(s, line, word, p[:len(p)-1]), nil
}

// ResetToNamed returns a fresh copy of a named scansion, discarding any edits.
func ResetToNamed(n Named) Scansion {
	return n.Scansion.Clone()
}

func patternAt(s Scansion, line, word int) (Pattern, error) {
	p, ok := s.Pattern(Coord{Line: line, Word: word})
	if !ok {
		return "", fmt.Errorf("word %d:%d: %w", line, word, ErrOutOfRange)
	}
	return p, nil
}

// replace copies the outer slice and the edited line; untouched lines are shared
// since nothing in this package writes through a Line after construction.
func replace(s Scansion, line, word int, p Pattern) Scansion {
	out := make(Scansion, len(s))
	copy(out, s)
	edited := append(Line(nil), s[line]...)
	edited[word] = p
	out[line] = edited
	return out
}
