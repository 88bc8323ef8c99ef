// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuiscan/internal/grade"
	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// PromotionThreshold is the cumulative score at which a user may record corrections.
const PromotionThreshold = 10

// Config defines editor settings.
type Config struct {
	User              string
	Start             string
	PoemID            int64
	OwnPoemPath       string
	OnlyAuthoritative bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	User        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// PoemFilter narrows a catalog listing.
type PoemFilter struct {
	Poet              string
	OnlyAuthoritative bool
	Limit             int
}

// PoemSummary is a catalog listing row.
type PoemSummary struct {
	ID               int64
	Title            string
	Poet             string
	FirstLine        string
	HasAuthoritative bool
	Scansions        int
}

// User is a registered reader.
type User struct {
	ID        int64
	Name      string
	Score     int
	CreatedAt time.Time
}

// Promoted reports whether the user reached the correction tier.
func (u User) Promoted() bool {
	return u.Score >= PromotionThreshold
}

// ScoreEntry is sent to the score sink after a scored submission.
type ScoreEntry struct {
	SessionID  uuid.UUID
	User       string
	PoemID     int64
	Points     grade.Points
	Percentage int
}

// ScoreUpdate is the score sink's answer.
type ScoreUpdate struct {
	Score    int
	Promoted bool
}

// Correction is a promoted user's scansion offered as the canonical record.
type Correction struct {
	SessionID uuid.UUID
	User      string
	// PoemID is zero for a reader's own poem, which is not in the catalog.
	PoemID   int64
	PoemText string
	Scansion scansion.Scansion
	Diff     grade.Diff
}

// Submission is a stored scored submission.
type Submission struct {
	ID         int64
	SessionID  string
	User       string
	PoemID     int64
	Points     int
	Percentage int
	CreatedAt  time.Time
}
