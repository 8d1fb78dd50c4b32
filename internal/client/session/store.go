// Package session keeps the CLI login in a local SQLite file so a restart
// does not require logging in again.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/matcheat/internal/client/api"
	"github.com/dmitrijs2005/matcheat/internal/client/session/migrations"
	"github.com/dmitrijs2005/matcheat/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const sessionKey = "session"

type Store struct {
	db   *sql.DB
	meta *metadataRepository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, meta: &metadataRepository{db: db}}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, sess *api.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.meta.set(ctx, sessionKey, b)
}

// Load returns the stored session, or nil when there is none.
func (s *Store) Load(ctx context.Context) (*api.Session, error) {
	b, err := s.meta.get(ctx, sessionKey)
	if err != nil || b == nil {
		return nil, err
	}

	var sess api.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("stored session is corrupt: %w", err)
	}
	return &sess, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.meta.delete(ctx, sessionKey)
}
