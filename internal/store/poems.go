package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/tuiscan/internal/catalog"
	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
)

// InsertPoem stores a poem with its named scansions and returns its id.
func (s *Store) InsertPoem(ctx context.Context, poem scansion.Poem) (int64, error) {
	ids, err := s.InsertPoems(ctx, []scansion.Poem{poem})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// InsertPoems stores poems in one transaction: either all of them land or none do.
func (s *Store) InsertPoems(ctx context.Context, poems []scansion.Poem) (ids []int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			rollback(tx)
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO poem_scansions (poem_id, label, about, preferred, scansion) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	ids = make([]int64, 0, len(poems))
	for i, poem := range poems {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO poems (title, poet, text, authoritative) VALUES (?, ?, ?, ?)`,
			poem.Title, poem.Poet, poem.Text, poem.Authoritative.String(),
		)
		if err != nil {
			return nil, fmt.Errorf("poem %d %q: %w", i+1, poem.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		for _, label := range poem.Labels() {
			n, ok := poem.Scansions[label]
			if !ok {
				continue
			}
			if _, err := stmt.ExecContext(ctx, id, n.Label, n.About, n.Preferred, n.Scansion.String()); err != nil {
				return nil, fmt.Errorf("poem %d %q scansion %q: %w", i+1, poem.Title, label, err)
			}
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetPoem loads a poem with all of its named scansions.
func (s *Store) GetPoem(ctx context.Context, id int64) (scansion.Poem, error) {
	var (
		poem          scansion.Poem
		authoritative string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, poet, text, authoritative FROM poems WHERE id = ?`, id,
	).Scan(&poem.ID, &poem.Title, &poem.Poet, &poem.Text, &authoritative)
	if errors.Is(err, sql.ErrNoRows) {
		return scansion.Poem{}, fmt.Errorf("poem %d: %w", id, ErrPoemNotFound)
	}
	if err != nil {
		return scansion.Poem{}, err
	}
	poem.Words = catalog.Words(poem.Text)
	if poem.Authoritative, err = scansion.Parse(authoritative); err != nil {
		return scansion.Poem{}, fmt.Errorf("poem %d authoritative scansion: %w", id, err)
	}
	if len(poem.Authoritative) == 0 {
		poem.Authoritative = nil
	} else if err := catalog.CheckSkeleton(poem.Words, poem.Authoritative); err != nil {
		return scansion.Poem{}, fmt.Errorf("poem %d authoritative scansion: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, about, preferred, scansion FROM poem_scansions WHERE poem_id = ?`, id)
	if err != nil {
		return scansion.Poem{}, err
	}
	defer closeRows(rows)

	poem.Scansions = map[string]scansion.Named{}
	for rows.Next() {
		var (
			n    scansion.Named
			text string
		)
		if err := rows.Scan(&n.Label, &n.About, &n.Preferred, &text); err != nil {
			return scansion.Poem{}, err
		}
		if n.Scansion, err = scansion.Parse(text); err != nil {
			return scansion.Poem{}, fmt.Errorf("poem %d scansion %q: %w", id, n.Label, err)
		}
		if err := catalog.CheckSkeleton(poem.Words, n.Scansion); err != nil {
			return scansion.Poem{}, fmt.Errorf("poem %d scansion %q: %w", id, n.Label, err)
		}
		poem.Scansions[n.Label] = n
	}
	if err := rows.Err(); err != nil {
		return scansion.Poem{}, err
	}
	return poem, nil
}

// ListPoems returns catalog rows ordered by poet and title.
func (s *Store) ListPoems(ctx context.Context, filter model.PoemFilter) ([]model.PoemSummary, error) {
	q := builder.
		Select("p.id", "p.title", "p.poet", "p.text", "p.authoritative != ''",
			"(SELECT COUNT(*) FROM poem_scansions ps WHERE ps.poem_id = p.id)").
		From("poems p").
		OrderBy("p.poet", "p.title", "p.id")
	q = applyPoemFilter(q, filter)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.PoemSummary
	for rows.Next() {
		var (
			row  model.PoemSummary
			text string
		)
		if err := rows.Scan(&row.ID, &row.Title, &row.Poet, &text, &row.HasAuthoritative, &row.Scansions); err != nil {
			return nil, err
		}
		row.FirstLine = catalog.FirstLine(text)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RandomPoemID picks a poem at random, optionally only among poems with an authoritative scansion.
func (s *Store) RandomPoemID(ctx context.Context, onlyAuthoritative bool) (int64, error) {
	q := builder.Select("p.id").From("poems p").OrderBy("RANDOM()").Limit(1)
	q = applyPoemFilter(q, model.PoemFilter{OnlyAuthoritative: onlyAuthoritative})
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPoemNotFound
	}
	return id, err
}

// CountPoems returns the number of catalog poems.
func (s *Store) CountPoems(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM poems`).Scan(&n)
	return n, err
}

// SeedIfEmpty inserts poem when the catalog has no poems yet.
func (s *Store) SeedIfEmpty(ctx context.Context, poem scansion.Poem) (bool, error) {
	n, err := s.CountPoems(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.InsertPoem(ctx, poem); err != nil {
		return false, err
	}
	return true, nil
}

func applyPoemFilter(q sq.SelectBuilder, filter model.PoemFilter) sq.SelectBuilder {
	if filter.Poet != "" {
		q = q.Where(sq.Expr("p.poet = ? COLLATE NOCASE", filter.Poet))
	}
	if filter.OnlyAuthoritative {
		q = q.Where(sq.NotEq{"p.authoritative": ""})
	}
	return q
}
