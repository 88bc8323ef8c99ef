// Package session holds one reader's editing session and decides what a submission does.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// ErrNoPoem is returned by edits and submissions before a poem is loaded.
var ErrNoPoem = errors.New("no poem loaded")

// Identity answers who is editing.
type Identity interface {
	IsAuthenticated(ctx context.Context) bool
	// IsPromoted implies IsAuthenticated.
	IsPromoted(ctx context.Context) bool
}

// ScoreSink records a scored submission and returns the user's new standing.
type ScoreSink interface {
	RecordScore(ctx context.Context, entry model.ScoreEntry) (model.ScoreUpdate, error)
}

// CorrectionSink records a promoted user's scansion as a correction.
type CorrectionSink interface {
	RecordCorrection(ctx context.Context, c model.Correction) error
}

// Anonymous is the identity of a reader who is not logged in.
type Anonymous struct{}

func (Anonymous) IsAuthenticated(context.Context) bool { return false }
func (Anonymous) IsPromoted(context.Context) bool      { return false }

// Session is a single editor's working copy of a poem's scansion.
// It is not safe for concurrent use; the editor owns it exclusively.
type Session struct {
	user        string
	identity    Identity
	scores      ScoreSink
	corrections CorrectionSink
	log         *slog.Logger

	id        uuid.UUID
	poem      scansion.Poem
	loaded    bool
	own       bool
	start     string
	current   scansion.Scansion
	submitted bool
}

// New creates a session for user. A nil identity is treated as Anonymous.
func New(log *slog.Logger, user string, identity Identity, scores ScoreSink, corrections CorrectionSink) *Session {
	if identity == nil {
		identity = Anonymous{}
	}
	return &Session{
		user:        user,
		identity:    identity,
		scores:      scores,
		corrections: corrections,
		log:         log.With("component", "session"),
	}
}

// Load starts a new session on poem from the Blank Slate. own marks a reader-supplied poem.
func (s *Session) Load(poem scansion.Poem, own bool) error {
	blank, err := poem.BlankSlate()
	if err != nil {
		return fmt.Errorf("load poem %d: %w", poem.ID, err)
	}
	s.id = uuid.New()
	s.poem = poem
	s.loaded = true
	s.own = own
	s.start = scansion.BlankSlate
	s.current = scansion.ResetToNamed(blank)
	s.submitted = false
	s.log.Debug("poem loaded", "session_id", s.id, "poem_id", poem.ID, "own", own)
	return nil
}

// SelectStart replaces the working copy with the named scansion, undoing all edits.
func (s *Session) SelectStart(label string) error {
	if !s.loaded {
		return ErrNoPoem
	}
	n, err := s.poem.Named(label)
	if err != nil {
		return fmt.Errorf("select %q: %w", label, err)
	}
	s.start = label
	s.current = scansion.ResetToNamed(n)
	return nil
}

// Toggle flips one syllable of the word at c.
func (s *Session) Toggle(c scansion.Coord, syllable int) error {
	return s.apply(func(cur scansion.Scansion) (scansion.Scansion, error) {
		return scansion.Toggle(cur, c.Line, c.Word, syllable)
	})
}

// AddSyllable appends an unstressed syllable to the word at c.
func (s *Session) AddSyllable(c scansion.Coord) error {
	return s.apply(func(cur scansion.Scansion) (scansion.Scansion, error) {
		return scansion.AddSyllable(cur, c.Line, c.Word)
	})
}

// RemoveSyllable drops the last syllable of the word at c.
func (s *Session) RemoveSyllable(c scansion.Coord) error {
	return s.apply(func(cur scansion.Scansion) (scansion.Scansion, error) {
		return scansion.RemoveSyllable(cur, c.Line, c.Word)
	})
}

func (s *Session) apply(edit func(scansion.Scansion) (scansion.Scansion, error)) error {
	if !s.loaded {
		return ErrNoPoem
	}
	next, err := edit(s.current)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// ID returns the session id, regenerated on every Load.
func (s *Session) ID() uuid.UUID { return s.id }

// Poem returns the loaded poem.
func (s *Session) Poem() scansion.Poem { return s.poem }

// Own reports whether the loaded poem is reader-supplied.
func (s *Session) Own() bool { return s.own }

// Start returns the label the working copy was last reset to.
func (s *Session) Start() string { return s.start }

// Submitted reports whether a submission already happened since Load.
func (s *Session) Submitted() bool { return s.submitted }

// Current returns a copy of the working scansion.
func (s *Session) Current() scansion.Scansion { return s.current.Clone() }
