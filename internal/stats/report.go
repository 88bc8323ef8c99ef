package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/tuiscan/internal/model"
)

// Source is the storage the report reads from.
type Source interface {
	GetUser(ctx context.Context, name string) (model.User, error)
	ListSubmissions(ctx context.Context, cfg model.StatsConfig) ([]model.Submission, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	User        model.User
	Submissions []model.Submission
	CurveWindow int
}

// BuildReport loads the reader and their submissions.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	user, err := src.GetUser(ctx, cfg.User)
	if err != nil {
		return Report{}, err
	}
	subs, err := src.ListSubmissions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{User: user, Submissions: subs, CurveWindow: cfg.CurveWindow}, nil
}

// Render writes the full report.
func Render(w io.Writer, report Report) error {
	if err := RenderSummary(w, report); err != nil {
		return err
	}
	if err := RenderCurve(w, report.Submissions, report.CurveWindow); err != nil {
		return err
	}
	return RenderHistory(w, report.Submissions)
}
