package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/leerkit/internal/wizard"
)

// SessionRepo persists serialized wizard state by key. It implements
// wizard.Store.
type SessionRepo struct {
	db *sql.DB
}

var _ wizard.Store = (*SessionRepo)(nil)

func (r *SessionRepo) Load(ctx context.Context, key string) ([]byte, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table(sessionStatesTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wizard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", key, err)
	}
	return data, nil
}

func (r *SessionRepo) Save(ctx context.Context, key string, data []byte) error {
	query, args := builder().
		Insert(sessionStatesTable).
		Columns("key", "data", "updated_at").
		Values(key, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session %q: %w", key, err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(sessionStatesTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last saved, or the zero time if absent.
func (r *SessionRepo) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	query, args := builder().
		Select("updated_at").
		From(entsql.Table(sessionStatesTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var t time.Time
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("session %q timestamp: %w", key, err)
	}
	return t, nil
}
