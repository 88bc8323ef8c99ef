package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/tuiscan/internal/model"
)

// Register creates a user with a zero score.
func (s *Store) Register(ctx context.Context, name string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, fmt.Errorf("user name is empty")
	}
	if _, err := s.GetUser(ctx, name); err == nil {
		return model.User{}, fmt.Errorf("%s: %w", name, ErrUserExists)
	} else if !errors.Is(err, ErrUserNotFound) {
		return model.User{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, score, created_at) VALUES (?, 0, ?)`, name, s.timestamp(),
	); err != nil {
		return model.User{}, err
	}
	return s.GetUser(ctx, name)
}

// GetUser loads a user by name.
func (s *Store) GetUser(ctx context.Context, name string) (model.User, error) {
	var (
		user    model.User
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, score, created_at FROM users WHERE name = ?`, name,
	).Scan(&user.ID, &user.Name, &user.Score, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("%s: %w", name, ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, err
	}
	if user.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// RecordScore applies the submission's points to the user and stores the submission.
func (s *Store) RecordScore(ctx context.Context, entry model.ScoreEntry) (update model.ScoreUpdate, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ScoreUpdate{}, err
	}
	defer func() {
		if err != nil {
			rollback(tx)
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET score = score + ? WHERE name = ?`, int(entry.Points), entry.User)
	if err != nil {
		return model.ScoreUpdate{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.ScoreUpdate{}, err
	} else if n == 0 {
		return model.ScoreUpdate{}, fmt.Errorf("%s: %w", entry.User, ErrUserNotFound)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO submissions (session_id, user_name, poem_id, points, percentage, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID.String(), entry.User, entry.PoemID, int(entry.Points), entry.Percentage, s.timestamp(),
	); err != nil {
		return model.ScoreUpdate{}, err
	}

	if err = tx.QueryRowContext(ctx,
		`SELECT score FROM users WHERE name = ?`, entry.User,
	).Scan(&update.Score); err != nil {
		return model.ScoreUpdate{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.ScoreUpdate{}, err
	}
	update.Promoted = update.Score >= model.PromotionThreshold
	return update, nil
}

// ListSubmissions returns a user's scored submissions, oldest first.
func (s *Store) ListSubmissions(ctx context.Context, cfg model.StatsConfig) ([]model.Submission, error) {
	q := builder.
		Select("id", "session_id", "user_name", "poem_id", "points", "percentage", "created_at").
		From("submissions").
		Where(sq.Eq{"user_name": cfg.User}).
		OrderBy("created_at ASC", "id ASC")
	if cfg.Since != nil {
		q = q.Where(sq.GtOrEq{"created_at": cfg.Since.UTC().Format(timeLayout)})
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

	var result []model.Submission
	for rows.Next() {
		var (
			sub     model.Submission
			created string
		)
		if err := rows.Scan(&sub.ID, &sub.SessionID, &sub.User, &sub.PoemID, &sub.Points, &sub.Percentage, &created); err != nil {
			return nil, err
		}
		if sub.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(result) > cfg.Last {
		result = result[len(result)-cfg.Last:]
	}
	return result, nil
}
