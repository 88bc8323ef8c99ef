// Package stats reports a reader's submission history.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuiscan/internal/grade"
	"github.com/verte-zerg/tuiscan/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Agreement converts a mismatch percentage into the share of words that agreed.
func Agreement(percentage int) float64 {
	return float64(100 - percentage)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders percentages on a fixed 0..100 scale, one character per value.
func Sparkline(values []float64) string {
	var b strings.Builder
	top := float64(len(sparkChars) - 1)
	for _, v := range values {
		v = math.Max(0, math.Min(100, v))
		b.WriteByte(sparkChars[int(math.Round(v/100*top))])
	}
	return b.String()
}

// RenderSummary prints the reader's totals.
func RenderSummary(w io.Writer, report Report) error {
	subs := report.Submissions
	lines := []string{
		fmt.Sprintf("Reader: %s", report.User.Name),
		fmt.Sprintf("Score: %d", report.User.Score),
	}
	if report.User.Promoted() {
		lines = append(lines, "Status: promoted (submissions are recorded as corrections)")
	} else {
		lines = append(lines, fmt.Sprintf("Status: %d more to promotion", model.PromotionThreshold-report.User.Score))
	}
	if len(subs) == 0 {
		lines = append(lines, "No submissions found.")
	} else {
		var (
			total           float64
			best            = math.Inf(-1)
			won, kept, lost int
		)
		for _, s := range subs {
			a := Agreement(s.Percentage)
			total += a
			best = math.Max(best, a)
			switch grade.Points(s.Points) {
			case grade.Won:
				won++
			case grade.Lost:
				lost++
			default:
				kept++
			}
		}
		lines = append(lines,
			fmt.Sprintf("Submissions: %d", len(subs)),
			fmt.Sprintf("Avg Agreement: %.1f%%", total/float64(len(subs))),
			fmt.Sprintf("Best Agreement: %.0f%%", best),
			fmt.Sprintf("Points: +%d / =%d / -%d", won, kept, lost),
		)
	}
	return writeLines(w, "Summary", lines)
}

// RenderCurve prints the agreement trend smoothed over window submissions.
func RenderCurve(w io.Writer, subs []model.Submission, window int) error {
	if len(subs) == 0 {
		return nil
	}
	values := make([]float64, len(subs))
	for i, s := range subs {
		values[i] = Agreement(s.Percentage)
	}
	smoothed := MovingAverage(values, window)
	line := fmt.Sprintf("[%s] %.0f%% -> %.0f%%", Sparkline(smoothed), smoothed[0], smoothed[len(smoothed)-1])
	return writeLines(w, "Agreement Curve", []string{line})
}

// RenderHistory prints one row per submission, oldest first.
func RenderHistory(w io.Writer, subs []model.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	g := grid{
		header: []string{"Date", "Poem", "Agreement", "Points"},
		rows:   make([][]string, 0, len(subs)),
		right:  map[int]bool{1: true, 2: true, 3: true},
	}
	for _, s := range subs {
		g.rows = append(g.rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("#%d", s.PoemID),
			fmt.Sprintf("%.0f%%", Agreement(s.Percentage)),
			fmt.Sprintf("%+d", s.Points),
		})
	}
	return writeLines(w, "History", g.lines())
}

func writeLines(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
