// Package grade compares a reader's scansion with a reference and scores the result.
package grade

import (
	"errors"
	"fmt"
	"math"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

var (
	ErrShapeMismatch = errors.New("scansion skeletons differ")
	ErrNoWords       = errors.New("scansion has no words")
)

// Diff is the result of comparing a candidate scansion with a reference.
type Diff struct {
	// Mismatches lists disagreeing words in line, then word order.
	Mismatches []scansion.Coord
	Words      int
	// Percentage is round(100 * len(Mismatches) / Words), halves rounded away from zero.
	Percentage int
}

// Agrees reports whether the word at c matched the reference.
func (d Diff) Agrees(c scansion.Coord) bool {
	for _, m := range d.Mismatches {
		if m == c {
			return false
		}
	}
	return true
}

// Agreement expands the diff into a per-word map shaped like s.
func (d Diff) Agreement(s scansion.Scansion) [][]bool {
	out := make([][]bool, len(s))
	for i, line := range s {
		row := make([]bool, len(line))
		for j := range row {
			row[j] = true
		}
		out[i] = row
	}
	for _, m := range d.Mismatches {
		if m.Line < len(out) && m.Word < len(out[m.Line]) {
			out[m.Line][m.Word] = false
		}
	}
	return out
}

// Compare checks every candidate word against the reference word at the same coordinate.
// A length difference counts as a disagreement. Skeletons must match exactly.
func Compare(reference, candidate scansion.Scansion) (Diff, error) {
	if len(reference) != len(candidate) {
		return Diff{}, fmt.Errorf("reference has %d lines, candidate %d: %w", len(reference), len(candidate), ErrShapeMismatch)
	}
	var diff Diff
	for i, line := range candidate {
		if len(reference[i]) != len(line) {
			return Diff{}, fmt.Errorf("line %d: reference has %d words, candidate %d: %w", i, len(reference[i]), len(line), ErrShapeMismatch)
		}
		for j, p := range line {
			diff.Words++
			if reference[i][j] != p {
				diff.Mismatches = append(diff.Mismatches, scansion.Coord{Line: i, Word: j})
			}
		}
	}
	if diff.Words == 0 {
		return Diff{}, ErrNoWords
	}
	diff.Percentage = Percentage(len(diff.Mismatches), diff.Words)
	return diff, nil
}

// Percentage returns round(100 * part / whole). whole must be positive.
func Percentage(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
