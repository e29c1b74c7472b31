package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"

	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store"
)

// DefaultPath is the database file used when nothing else is configured.
const DefaultPath = "todo.db"

const schema = `
CREATE TABLE
IF NOT EXISTS
lists (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`

var _ store.Store = (*Store)(nil)

// Store is a store.Store over a single SQLite connection.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger

	closeMx sync.Mutex
	closed  bool
}

// Open connects to the database at path and makes sure the lists table exists.
// path may be ":memory:".
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite (%s): %w", path, err)
	}
	// One connection for the process lifetime; also keeps :memory: a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	log.Debug().Str("path", path).Msg("sqlite store opened")
	return &Store{db: db, log: log}, nil
}

func (s *Store) isClosed() bool {
	s.closeMx.Lock()
	defer s.closeMx.Unlock()
	return s.closed
}

// Close releases the connection. Calling it again is a no-op.
func (s *Store) Close() error {
	s.closeMx.Lock()
	defer s.closeMx.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	s.log.Debug().Msg("sqlite store closed")
	return nil
}

func (s *Store) Insert(ctx context.Context, name string) (model.Item, error) {
	if s.isClosed() {
		return model.Item{}, store.ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO lists (name) VALUES (?)`, name)
	if err != nil {
		return model.Item{}, fmt.Errorf("insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Item{}, fmt.Errorf("insert: last id: %w", err)
	}
	s.log.Debug().Int64("id", id).Str("name", name).Msg("inserted")
	return model.Item{ID: id, Name: name}, nil
}

func (s *Store) UpdateByName(ctx context.Context, oldName, newName string) (int64, error) {
	if s.isClosed() {
		return 0, store.ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("update by name: %w", err)
	}
	return affected(res, "update by name")
}

func (s *Store) DeleteByName(ctx context.Context, name string) (int64, error) {
	if s.isClosed() {
		return 0, store.ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete by name: %w", err)
	}
	return affected(res, "delete by name")
}

func (s *Store) ListAll(ctx context.Context) ([]string, error) {
	if s.isClosed() {
		return nil, store.ErrClosed
	}
	names := []string{}
	if err := s.db.SelectContext(ctx, &names, `SELECT COALESCE(name, '') FROM lists`); err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	return names, nil
}

func (s *Store) Rename(ctx context.Context, id int64, name string) error {
	if s.isClosed() {
		return store.ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename %d: %w", id, err)
	}
	return requireOne(res, id, "rename")
}

func (s *Store) Remove(ctx context.Context, id int64) error {
	if s.isClosed() {
		return store.ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove %d: %w", id, err)
	}
	return requireOne(res, id, "remove")
}

func (s *Store) Items(ctx context.Context) ([]model.Item, error) {
	if s.isClosed() {
		return nil, store.ErrClosed
	}
	items := []model.Item{}
	if err := s.db.SelectContext(ctx, &items, `SELECT id, COALESCE(name, '') AS name FROM lists ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func affected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}

func requireOne(res sql.Result, id int64, op string) error {
	n, err := affected(res, op)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, store.ErrNotFound)
	}
	return nil
}
