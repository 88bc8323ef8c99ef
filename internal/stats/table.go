package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// grid is a plain-text table. Every column is as wide as its widest cell.
type grid struct {
	header []string
	rows   [][]string
	// right marks numeric columns that align to the right edge.
	right map[int]bool
}

func (g grid) columns() []int {
	var widths []int
	measure := func(cells []string) {
		for i, cell := range cells {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	measure(g.header)
	for _, row := range g.rows {
		measure(row)
	}
	return widths
}

func (g grid) lines() []string {
	widths := g.columns()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(g.rows)+1)
	if len(g.header) > 0 {
		out = append(out, g.line(g.header, widths))
	}
	for _, row := range g.rows {
		out = append(out, g.line(row, widths))
	}
	return out
}

func (g grid) line(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if g.right[i] {
			padded[i] = runewidth.FillLeft(cell, w)
		} else {
			padded[i] = runewidth.FillRight(cell, w)
		}
	}
	return strings.Join(padded, " ")
}
