package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiscan/internal/scansion"
)

var noCursor = cursor{line: -1}

func TestBuildCellsPadsToWidestRow(t *testing.T) {
	cells := buildCells(0, []string{"fathom", "I"}, scansion.Line{"/u", "uuu"}, noCursor, nil)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].width != 6 || cells[1].width != 3 {
		t.Fatalf("unexpected widths: %d %d", cells[0].width, cells[1].width)
	}
	for i, c := range cells {
		if lipgloss.Width(c.stress) != c.width || lipgloss.Width(c.word) != c.width {
			t.Fatalf("cell %d rows not padded to %d: %q %q", i, c.width, c.stress, c.word)
		}
	}
	if !strings.HasPrefix(cells[0].stress, stressStyle.Render("/")+stressStyle.Render("u")) {
		t.Fatalf("unexpected stress row: %q", cells[0].stress)
	}
}

func TestBuildCellsCursorAndAgreement(t *testing.T) {
	cur := cursor{line: 2, word: 1, syllable: 1}
	cells := buildCells(2, []string{"thy", "father"}, scansion.Line{"u", "/u"}, cur, []bool{true, false})
	if cells[0].word != agreeStyle.Render("thy") {
		t.Fatalf("expected agree style, got %q", cells[0].word)
	}
	if cells[1].word != disagreeStyle.Underline(true).Bold(true).Render("father") {
		t.Fatalf("expected selected disagree style, got %q", cells[1].word)
	}
	want := stressStyle.Render("/") + cursorSyllableStyle.Render("u") + strings.Repeat(" ", 4)
	if cells[1].stress != want {
		t.Fatalf("expected cursor on second syllable, got %q", cells[1].stress)
	}
}

func TestBuildCellsEmptyPattern(t *testing.T) {
	cells := buildCells(0, []string{"a"}, scansion.Line{""}, noCursor, nil)
	if cells[0].width != 1 || cells[0].stress != emptyPatternStyle.Render("·") {
		t.Fatalf("unexpected empty pattern cell: %+v", cells[0])
	}
}

func TestWrapCellsBreaksOnWidth(t *testing.T) {
	cells := []cell{
		{stress: "u   ", word: "four", width: 4},
		{stress: "/   ", word: "five", width: 4},
		{stress: "u   ", word: "nine", width: 4},
	}
	rows := wrapCells(cells, 10)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %q", len(rows), rows)
	}
	if rows[1] != "four  five" {
		t.Fatalf("unexpected first word row: %q", rows[1])
	}
	if rows[0] != "u     /   " {
		t.Fatalf("unexpected first stress row: %q", rows[0])
	}
	if rows[3] != "nine" {
		t.Fatalf("unexpected second word row: %q", rows[3])
	}
}

func TestWrapCellsOversizedCellStaysWhole(t *testing.T) {
	rows := wrapCells([]cell{{stress: "uuuuuu", word: "abcdef", width: 6}}, 3)
	if len(rows) != 2 || rows[1] != "abcdef" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestWrapCellsEmptyLine(t *testing.T) {
	rows := wrapCells(nil, 10)
	if len(rows) != 1 || rows[0] != "" {
		t.Fatalf("expected one blank row, got %q", rows)
	}
}

func TestRenderPoemLineStarts(t *testing.T) {
	words := [][]string{{"one", "two"}, {}, {"three"}}
	s := scansion.Scansion{{"u", "/"}, {}, {"/"}}
	out, starts := renderPoem(words, s, noCursor, nil, 0)
	if len(starts) != 3 || starts[0] != 0 || starts[1] != 2 || starts[2] != 3 {
		t.Fatalf("unexpected line starts: %v", starts)
	}
	if got := strings.Count(out, "\n"); got != 4 {
		t.Fatalf("expected 5 rows, got %d newlines:\n%s", got, out)
	}
}
