package memstore

import (
	"context"

	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store"
)

// Store keeps rows in a slice, in insertion order. Not safe for concurrent use.
type Store struct {
	rows   []model.Item
	nextID int64
	closed bool

	// Fail, when set, is returned by every operation except Close.
	Fail error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

func (m *Store) check() error {
	if m.closed {
		return store.ErrClosed
	}
	return m.Fail
}

func (m *Store) Insert(_ context.Context, name string) (model.Item, error) {
	if err := m.check(); err != nil {
		return model.Item{}, err
	}
	it := model.Item{ID: m.nextID, Name: name}
	m.nextID++
	m.rows = append(m.rows, it)
	return it, nil
}

func (m *Store) UpdateByName(_ context.Context, oldName, newName string) (int64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	var n int64
	for i := range m.rows {
		if m.rows[i].Name == oldName {
			m.rows[i].Name = newName
			n++
		}
	}
	return n, nil
}

func (m *Store) DeleteByName(_ context.Context, name string) (int64, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	kept := m.rows[:0]
	var n int64
	for _, it := range m.rows {
		if it.Name == name {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.rows = kept
	return n, nil
}

func (m *Store) ListAll(_ context.Context) ([]string, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.rows))
	for _, it := range m.rows {
		names = append(names, it.Name)
	}
	return names, nil
}

func (m *Store) Rename(_ context.Context, id int64, name string) error {
	if err := m.check(); err != nil {
		return err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Name = name
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *Store) Remove(_ context.Context, id int64) error {
	if err := m.check(); err != nil {
		return err
	}
	for i, it := range m.rows {
		if it.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *Store) Items(_ context.Context) ([]model.Item, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]model.Item, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *Store) Close() error {
	m.closed = true
	return nil
}
