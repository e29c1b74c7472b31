// Package store defines the persistence contract for todo items.
//
// Implementations live in subpackages: sqlitestore is the file-backed store
// used by the program, memstore is an in-memory stand-in for tests.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/dailytasks/internal/model"
)

var (
	// ErrNotFound is returned by identity-keyed operations when no row has the id.
	ErrNotFound = errors.New("store: item not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store: closed")
)

// Store persists todo items. Every mutating call commits before returning.
type Store interface {
	// Insert appends a row and returns it with its assigned id.
	Insert(ctx context.Context, name string) (model.Item, error)
	// UpdateByName rewrites every row named oldName and reports how many changed.
	UpdateByName(ctx context.Context, oldName, newName string) (int64, error)
	// DeleteByName removes every row named name and reports how many went.
	DeleteByName(ctx context.Context, name string) (int64, error)
	// ListAll returns every row's name in storage order.
	ListAll(ctx context.Context) ([]string, error)

	// Rename sets the name of the row with the given id.
	Rename(ctx context.Context, id int64, name string) error
	// Remove deletes the row with the given id.
	Remove(ctx context.Context, id int64) error
	// Items returns every row ordered by id.
	Items(ctx context.Context) ([]model.Item, error)

	Close() error
}
