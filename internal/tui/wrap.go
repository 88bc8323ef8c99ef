package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

const cellGap = 2

// cell is one word column: the stress pattern drawn over the word.
type cell struct {
	stress string
	word   string
	width  int
}

// cursor marks the selected word and syllable; line -1 selects nothing.
type cursor struct {
	line     int
	word     int
	syllable int
}

// buildCells renders the words of one poem line. agree may be nil before a submission.
func buildCells(lineIdx int, words []string, patterns scansion.Line, cur cursor, agree []bool) []cell {
	out := make([]cell, 0, len(patterns))
	for j, p := range patterns {
		word := ""
		if j < len(words) {
			word = words[j]
		}
		width := runewidth.StringWidth(word)
		if n := max(p.Syllables(), 1); n > width {
			width = n
		}
		selected := cur.line == lineIdx && cur.word == j

		var stress strings.Builder
		if p.Syllables() == 0 {
			stress.WriteString(emptyPatternStyle.Render("·"))
		}
		for k := 0; k < len(p); k++ {
			style := stressStyle
			if selected && k == cur.syllable {
				style = cursorSyllableStyle
			}
			stress.WriteString(style.Render(string(p[k])))
		}
		stress.WriteString(strings.Repeat(" ", width-max(p.Syllables(), 1)))

		style := wordStyle
		if agree != nil && j < len(agree) {
			if agree[j] {
				style = agreeStyle
			} else {
				style = disagreeStyle
			}
		}
		if selected {
			style = style.Underline(true).Bold(true)
		}
		out = append(out, cell{
			stress: stress.String(),
			word:   style.Render(word) + strings.Repeat(" ", width-runewidth.StringWidth(word)),
			width:  width,
		})
	}
	return out
}

// wrapCells lays cells out in rows no wider than width, returning stress and word rows
// alternately. A line without cells renders as a single empty row.
func wrapCells(cells []cell, width int) []string {
	if len(cells) == 0 {
		return []string{""}
	}
	var rows []string
	var stress, words strings.Builder
	lineWidth := 0
	flush := func() {
		rows = append(rows, stress.String(), words.String())
		stress.Reset()
		words.Reset()
		lineWidth = 0
	}
	for _, c := range cells {
		need := c.width
		if lineWidth > 0 {
			need += cellGap
		}
		if width > 0 && lineWidth > 0 && lineWidth+need > width {
			flush()
			need = c.width
		}
		if lineWidth > 0 {
			gap := strings.Repeat(" ", cellGap)
			stress.WriteString(gap)
			words.WriteString(gap)
		}
		stress.WriteString(c.stress)
		words.WriteString(c.word)
		lineWidth += need
	}
	flush()
	return rows
}

// renderPoem draws every poem line and reports the first row of each line.
func renderPoem(words [][]string, s scansion.Scansion, cur cursor, agreement [][]bool, width int) (string, []int) {
	var rows []string
	starts := make([]int, len(s))
	for i, line := range s {
		starts[i] = len(rows)
		var lineWords []string
		if i < len(words) {
			lineWords = words[i]
		}
		var agree []bool
		if i < len(agreement) {
			agree = agreement[i]
		}
		rows = append(rows, wrapCells(buildCells(i, lineWords, line, cur, agree), width)...)
	}
	return strings.Join(rows, "\n"), starts
}

// Render draws s under the poem's words without a cursor, wrapped to width.
func Render(words [][]string, s scansion.Scansion, width int) string {
	out, _ := renderPoem(words, s, cursor{line: -1}, nil, width)
	return out
}
