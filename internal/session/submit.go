package session

import (
	"context"
	"fmt"

	"github.com/verte-zerg/tuiscan/internal/grade"
	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// Kind identifies which feedback a submission produced.
type Kind int

const (
	KindCorrection Kind = iota
	KindOwnPoem
	KindScored
	KindUnchanged
	KindHypothetical
)

func (k Kind) String() string {
	switch k {
	case KindCorrection:
		return "correction"
	case KindOwnPoem:
		return "own-poem"
	case KindScored:
		return "scored"
	case KindUnchanged:
		return "unchanged"
	case KindHypothetical:
		return "hypothetical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Receipt reports what a dispatch delivered.
type Receipt struct {
	Scored    bool
	Update    model.ScoreUpdate
	Corrected bool
}

// Dispatch delivers a submission to a sink. It is fire-and-forget: a failure
// never changes the session's outcome and is not retried.
type Dispatch func(ctx context.Context) (Receipt, error)

// Outcome is the locally computed result of a submission.
type Outcome struct {
	Kind    Kind
	Message string
	Diff    grade.Diff
	Points  grade.Points
	// Dispatch is nil when nothing has to be sent.
	Dispatch Dispatch
}

// Submit compares the working copy with the poem's reference, picks the feedback message
// and prepares the dispatch. The snapshot is captured before Submit returns, so later edits
// never leak into a pending dispatch. After a successful comparison the session counts as submitted.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	if !s.loaded {
		return Outcome{}, ErrNoPoem
	}
	snapshot := s.current.Clone()
	reference, err := s.poem.Reference()
	if err != nil {
		return Outcome{}, fmt.Errorf("submit: %w", err)
	}
	diff, err := grade.Compare(reference, snapshot)
	if err != nil {
		return Outcome{}, fmt.Errorf("submit: %w", err)
	}
	points := grade.Score(diff.Percentage)

	authenticated := s.identity.IsAuthenticated(ctx)
	promoted := authenticated && s.identity.IsPromoted(ctx)

	kind := decide(authenticated, promoted, s.own, s.submitted)
	out := Outcome{
		Kind:    kind,
		Message: Message(kind, diff.Percentage, points),
		Diff:    diff,
		Points:  points,
	}
	switch {
	case authenticated && promoted:
		out.Dispatch = s.correctionDispatch(snapshot, diff)
	case authenticated && !s.submitted && !s.own:
		out.Dispatch = s.scoreDispatch(points, diff.Percentage)
	}

	s.log.Info("scansion submitted",
		"session_id", s.id,
		"poem_id", s.poem.ID,
		"kind", kind.String(),
		"percentage", diff.Percentage,
		"points", int(points),
		"dispatch", out.Dispatch != nil,
	)
	s.submitted = true
	return out, nil
}

// decide applies the feedback precedence; the first matching rule wins.
func decide(authenticated, promoted, own, submitted bool) Kind {
	switch {
	case authenticated && promoted:
		return KindCorrection
	case own:
		return KindOwnPoem
	case authenticated && !submitted:
		return KindScored
	case authenticated || submitted:
		return KindUnchanged
	default:
		return KindHypothetical
	}
}

func (s *Session) scoreDispatch(points grade.Points, percentage int) Dispatch {
	if s.scores == nil {
		return nil
	}
	entry := model.ScoreEntry{
		SessionID:  s.id,
		User:       s.user,
		PoemID:     s.poem.ID,
		Points:     points,
		Percentage: percentage,
	}
	sink, log := s.scores, s.log
	return func(ctx context.Context) (Receipt, error) {
		update, err := sink.RecordScore(ctx, entry)
		if err != nil {
			log.Error("failed to record score", "session_id", entry.SessionID, "poem_id", entry.PoemID, "error", err)
			return Receipt{}, fmt.Errorf("record score: %w", err)
		}
		return Receipt{Scored: true, Update: update}, nil
	}
}

func (s *Session) correctionDispatch(snapshot scansion.Scansion, diff grade.Diff) Dispatch {
	if s.corrections == nil {
		return nil
	}
	c := model.Correction{
		SessionID: s.id,
		User:      s.user,
		PoemText:  s.poem.Text,
		Scansion:  snapshot,
		Diff:      diff,
	}
	if !s.own {
		c.PoemID = s.poem.ID
	}
	sink, log := s.corrections, s.log
	return func(ctx context.Context) (Receipt, error) {
		if err := sink.RecordCorrection(ctx, c); err != nil {
			log.Error("failed to record correction", "session_id", c.SessionID, "poem_id", c.PoemID, "error", err)
			return Receipt{}, fmt.Errorf("record correction: %w", err)
		}
		return Receipt{Corrected: true}, nil
	}
}
