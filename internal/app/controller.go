// Package app holds the toolkit-independent side of the todo window: the
// visual list, the current selection and the three intents (add, update,
// delete) that views forward to it. Views only render what it exposes.
//
// A Controller is driven from one UI event loop and is not safe for
// concurrent use.
package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store"
)

// Controller keeps the visual list in step with the store.
type Controller struct {
	store store.Store
	log   zerolog.Logger

	items    []model.Item
	selected int // -1 when nothing is selected
	err      error
}

func New(s store.Store, log zerolog.Logger) *Controller {
	return &Controller{store: s, log: log, selected: -1}
}

// Load replaces the visual list with the stored rows and clears the selection.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.store.Items(ctx)
	if err != nil {
		return c.fail("load", err)
	}
	c.items = items
	c.selected = -1
	c.err = nil
	c.log.Debug().Int("count", len(items)).Msg("loaded")
	return nil
}

// Items returns a copy of the visual list.
func (c *Controller) Items() []model.Item {
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller) Len() int { return len(c.items) }

// Item returns the entry at visual position i.
func (c *Controller) Item(i int) (model.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return model.Item{}, false
	}
	return c.items[i], true
}

// Select marks visual position i as selected. Out of range clears the selection.
func (c *Controller) Select(i int) {
	if i < 0 || i >= len(c.items) {
		c.selected = -1
		return
	}
	c.selected = i
}

func (c *Controller) Unselect() { c.selected = -1 }

// Selected reports the selected position, if any.
func (c *Controller) Selected() (int, bool) {
	return c.selected, c.selected >= 0
}

// Err is the last storage failure, cleared by the next successful intent.
func (c *Controller) Err() error { return c.err }

// Add inserts text as a new item. Blank text is ignored.
// applied tells the view whether to clear its entry.
func (c *Controller) Add(ctx context.Context, text string) (applied bool, err error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return false, nil
	}
	it, err := c.store.Insert(ctx, name)
	if err != nil {
		return false, c.fail("add", err)
	}
	c.items = append(c.items, it)
	c.err = nil
	c.log.Info().Int64("id", it.ID).Str("name", name).Msg("added")
	return true, nil
}

// Update renames the selected item to text. It needs a selection and
// non-blank text; otherwise nothing happens. The selection is kept.
func (c *Controller) Update(ctx context.Context, text string) (applied bool, err error) {
	i, ok := c.Selected()
	if !ok {
		return false, nil
	}
	name := strings.TrimSpace(text)
	if name == "" {
		return false, nil
	}
	id := c.items[i].ID
	if err := c.store.Rename(ctx, id, name); err != nil {
		return false, c.fail("update", err)
	}
	c.items[i].Name = name
	c.err = nil
	c.log.Info().Int64("id", id).Str("name", name).Msg("updated")
	return true, nil
}

// Delete removes the selected item and clears the selection.
func (c *Controller) Delete(ctx context.Context) (applied bool, err error) {
	i, ok := c.Selected()
	if !ok {
		return false, nil
	}
	id := c.items[i].ID
	if err := c.store.Remove(ctx, id); err != nil {
		return false, c.fail("delete", err)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.selected = -1
	c.err = nil
	c.log.Info().Int64("id", id).Msg("deleted")
	return true, nil
}

// Close releases the store.
func (c *Controller) Close() error {
	return c.store.Close()
}

func (c *Controller) fail(op string, err error) error {
	c.err = &OpError{Op: op, Err: err}
	c.log.Error().Err(err).Str("op", op).Msg("storage failure")
	return c.err
}
