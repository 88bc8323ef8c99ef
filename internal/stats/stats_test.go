package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuiscan/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	flat := MovingAverage([]float64{1, 2}, 0)
	if flat[0] != 1 || flat[1] != 2 {
		t.Fatalf("expected copy for window 0, got %v", flat)
	}
}

func TestSparklineFixedScale(t *testing.T) {
	got := Sparkline([]float64{0, 50, 100, 120, -5})
	if got != " +@@ " {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummary(t *testing.T) {
	report := Report{
		User: model.User{Name: "ariel", Score: 4},
		Submissions: []model.Submission{
			{Points: 1, Percentage: 0},
			{Points: 0, Percentage: 20},
			{Points: -1, Percentage: 70},
		},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Reader: ariel",
		"Score: 4",
		"6 more to promotion",
		"Submissions: 3",
		"Avg Agreement: 70.0%",
		"Best Agreement: 100%",
		"Points: +1 / =1 / -1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryPromotedWithoutSubmissions(t *testing.T) {
	var buf bytes.Buffer
	report := Report{User: model.User{Name: "prospero", Score: model.PromotionThreshold}}
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "promoted") || !strings.Contains(buf.String(), "No submissions found.") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
}

func TestRenderCurveAndHistory(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.Local)
	subs := []model.Submission{
		{PoemID: 3, Points: -1, Percentage: 50, CreatedAt: at},
		{PoemID: 7, Points: 1, Percentage: 10, CreatedAt: at.Add(time.Hour)},
	}
	var buf bytes.Buffer
	if err := RenderCurve(&buf, subs, 1); err != nil {
		t.Fatalf("curve: %v", err)
	}
	if !strings.Contains(buf.String(), "50% -> 90%") {
		t.Fatalf("unexpected curve:\n%s", buf.String())
	}

	buf.Reset()
	if err := RenderHistory(&buf, subs); err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "2026-05-01 09:30") || !strings.HasSuffix(lines[2], "-1") {
		t.Fatalf("unexpected row: %q", lines[2])
	}
	if !strings.Contains(lines[3], "#7") || !strings.Contains(lines[3], "90%") {
		t.Fatalf("unexpected row: %q", lines[3])
	}
}

func TestRenderEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurve(&buf, nil, 3); err != nil {
		t.Fatalf("curve: %v", err)
	}
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("history: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
