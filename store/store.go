// Package store keeps project documents in SQLite database under string
// keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"pagecraft/catalog"
	"pagecraft/project"
)

// ErrNotFound is returned when key is not in the store.
var ErrNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	key          TEXT PRIMARY KEY,
	id           TEXT NOT NULL,
	name         TEXT NOT NULL,
	content_type TEXT NOT NULL,
	items        INTEGER NOT NULL,
	document     BLOB NOT NULL,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL,
	saved_at     INTEGER NOT NULL
);
`

// Entry describes stored project without loading it.
type Entry struct {
	Key         string    `json:"key"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Items       int       `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	SavedAt     time.Time `json:"savedAt"`
}

// Store owns single connection, access is serialized.
type Store struct {
	mu   sync.Mutex
	conn *sqlite.Conn
	now  func() time.Time
	log  *zap.Logger
}

// Open opens (creating when necessary) database at path. Use ":memory:"
// for throw away store.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if path == ":memory:" {
		flags = append(flags, sqlite.OpenMemory)
	} else {
		flags = append(flags, sqlite.OpenWAL)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to initialize store %q: %w", path, err)
	}
	s := &Store{conn: conn, now: time.Now, log: log.Named("store")}
	s.log.Debug("Store opened", zap.String("path", path))
	return s, nil
}

// Close releases database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// acquire locks connection and makes running statements interruptible by
// context.
func (s *Store) acquire(ctx context.Context) (*sqlite.Conn, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	if s.conn == nil {
		s.mu.Unlock()
		return nil, nil, errors.New("store is closed")
	}
	s.conn.SetInterrupt(ctx.Done())
	return s.conn, func() {
		s.conn.SetInterrupt(nil)
		s.mu.Unlock()
	}, nil
}

// Save writes project under key replacing previous document.
func (s *Store) Save(ctx context.Context, key string, p *project.Project) error {
	if key == "" {
		return errors.New("store key is empty")
	}
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("unable to encode project: %w", err)
	}

	conn, release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	err = sqlitex.Execute(conn, `
INSERT INTO projects (key, id, name, content_type, items, document, created_at, updated_at, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
	id = excluded.id,
	name = excluded.name,
	content_type = excluded.content_type,
	items = excluded.items,
	document = excluded.document,
	created_at = excluded.created_at,
	updated_at = excluded.updated_at,
	saved_at = excluded.saved_at`,
		&sqlitex.ExecOptions{Args: []any{
			key, p.ID(), p.Name(), p.ContentType().String(), p.Len(), data,
			p.CreatedAt().UnixMilli(), p.UpdatedAt().UnixMilli(), s.now().UnixMilli(),
		}})
	if err != nil {
		return fmt.Errorf("unable to save project %q: %w", key, err)
	}
	s.log.Debug("Project saved", zap.String("key", key), zap.String("id", p.ID()), zap.Int("bytes", len(data)))
	return nil
}

// Load reads project stored under key and binds it to catalog.
func (s *Store) Load(ctx context.Context, key string, cat *catalog.Catalog, opts ...project.Option) (*project.Project, error) {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = sqlitex.Execute(conn, `SELECT document FROM projects WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, data)
				return nil
			},
		})
	release()
	if err != nil {
		return nil, fmt.Errorf("unable to load project %q: %w", key, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	p, err := project.Unmarshal(data, cat, opts...)
	if err != nil {
		return nil, fmt.Errorf("stored project %q is damaged: %w", key, err)
	}
	return p, nil
}

// List returns stored projects, most recently saved first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var entries []Entry
	err = sqlitex.Execute(conn, `
SELECT key, id, name, content_type, items, created_at, updated_at, saved_at
FROM projects ORDER BY saved_at DESC, key`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			entries = append(entries, Entry{
				Key:         stmt.ColumnText(0),
				ID:          stmt.ColumnText(1),
				Name:        stmt.ColumnText(2),
				ContentType: stmt.ColumnText(3),
				Items:       stmt.ColumnInt(4),
				CreatedAt:   time.UnixMilli(stmt.ColumnInt64(5)).UTC(),
				UpdatedAt:   time.UnixMilli(stmt.ColumnInt64(6)).UTC(),
				SavedAt:     time.UnixMilli(stmt.ColumnInt64(7)).UTC(),
			})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list projects: %w", err)
	}
	return entries, nil
}

// Delete removes project, deleting absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	if err := sqlitex.Execute(conn, `DELETE FROM projects WHERE key = ?`, &sqlitex.ExecOptions{Args: []any{key}}); err != nil {
		return false, fmt.Errorf("unable to delete project %q: %w", key, err)
	}
	return conn.Changes() > 0, nil
}

// Persister returns function suitable as tool surface persistence hook.
func (s *Store) Persister(ctx context.Context, key string) func(*project.Project) error {
	return func(p *project.Project) error {
		return s.Save(ctx, key, p)
	}
}
