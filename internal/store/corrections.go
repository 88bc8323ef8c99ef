package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuiscan/internal/catalog"
	"github.com/verte-zerg/tuiscan/internal/model"
)

type mismatchJSON struct {
	Line int `json:"line"`
	Word int `json:"word"`
}

// RecordCorrection stores a promoted reader's scansion. For a catalog poem the
// scansion also replaces the poem's authoritative scansion and must line up with its words.
func (s *Store) RecordCorrection(ctx context.Context, c model.Correction) (err error) {
	mismatches := make([]mismatchJSON, 0, len(c.Diff.Mismatches))
	for _, m := range c.Diff.Mismatches {
		mismatches = append(mismatches, mismatchJSON{Line: m.Line, Word: m.Word})
	}
	diffs, err := json.Marshal(mismatches)
	if err != nil {
		return err
	}
	var poemID sql.NullInt64
	if c.PoemID != 0 {
		poemID = sql.NullInt64{Int64: c.PoemID, Valid: true}
	}
	text := c.Scansion.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollback(tx)
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO corrections (id, session_id, user_name, poem_id, poem_text, scansion, diffs, percentage, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), c.SessionID.String(), c.User, poemID, c.PoemText, text, string(diffs), c.Diff.Percentage, s.timestamp(),
	); err != nil {
		return err
	}
	if poemID.Valid {
		var poemText string
		err = tx.QueryRowContext(ctx, `SELECT text FROM poems WHERE id = ?`, c.PoemID).Scan(&poemText)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("poem %d: %w", c.PoemID, ErrPoemNotFound)
		}
		if err != nil {
			return err
		}
		if err = catalog.CheckSkeleton(catalog.Words(poemText), c.Scansion); err != nil {
			return fmt.Errorf("poem %d correction: %w", c.PoemID, err)
		}
		if _, err = tx.ExecContext(ctx, `UPDATE poems SET authoritative = ? WHERE id = ?`, text, c.PoemID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountCorrections returns how many corrections were recorded for a catalog poem.
func (s *Store) CountCorrections(ctx context.Context, poemID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corrections WHERE poem_id = ?`, poemID).Scan(&n)
	return n, err
}
