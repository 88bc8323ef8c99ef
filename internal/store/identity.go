package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/verte-zerg/tuiscan/internal/model"
)

// Identity answers who the local reader is from the users table.
// An empty name is an anonymous reader.
type Identity struct {
	store *Store
	name  string
	log   *slog.Logger
}

// NewIdentity returns the identity of the named reader.
func NewIdentity(st *Store, name string, log *slog.Logger) *Identity {
	if log == nil {
		log = slog.Default()
	}
	return &Identity{store: st, name: name, log: log}
}

// Name returns the reader's name.
func (i *Identity) Name() string {
	return i.name
}

// User loads the reader's record. It reports false for anonymous or unknown readers.
func (i *Identity) User(ctx context.Context) (model.User, bool) {
	if i.name == "" {
		return model.User{}, false
	}
	user, err := i.store.GetUser(ctx, i.name)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			i.log.ErrorContext(ctx, "failed to load user", "user", i.name, "error", err)
		}
		return model.User{}, false
	}
	return user, true
}

// IsAuthenticated reports whether the reader is registered.
func (i *Identity) IsAuthenticated(ctx context.Context) bool {
	_, ok := i.User(ctx)
	return ok
}

// IsPromoted reports whether the reader may record corrections.
func (i *Identity) IsPromoted(ctx context.Context) bool {
	user, ok := i.User(ctx)
	return ok && user.Promoted()
}
