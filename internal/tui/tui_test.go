package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dailytasks/internal/app"
	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store/memstore"
)

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newModel(t *testing.T, seed ...string) (Model, *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()
	for _, n := range seed {
		_, err := s.Insert(ctx, n)
		require.NoError(t, err)
	}
	c := app.New(s, zerolog.Nop())
	require.NoError(t, c.Load(ctx))
	return New(ctx, c, zerolog.Nop()), s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func storedNames(t *testing.T, s *memstore.Store) []string {
	t.Helper()
	names, err := s.ListAll(context.Background())
	require.NoError(t, err)
	return names
}

func TestStartupLoadsStoredItems(t *testing.T) {
	m, _ := newModel(t, "one", "two")
	require.Len(t, m.list.Items(), 2)
	assert.Equal(t, "one", m.list.Items()[0].(listItem).Name)
	assert.Contains(t, m.View(), "two")
}

func TestAddThroughInput(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, keys("a"))
	assert.Equal(t, adding, m.mode)

	m = send(t, m, keys("Buy milk"), enter)
	assert.Equal(t, browsing, m.mode)
	assert.Equal(t, []string{"Buy milk"}, storedNames(t, s))
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "", m.ti.Value(), "input cleared")
}

func TestBlankAddKeepsPromptOpen(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, keys("a"), keys("   "), enter)
	assert.Equal(t, adding, m.mode)
	assert.Empty(t, storedNames(t, s))
	assert.Empty(t, m.status, "blank input is silent")

	m = send(t, m, esc)
	assert.Equal(t, browsing, m.mode)
}

func TestUpdateSelectedKeepsID(t *testing.T) {
	m, s := newModel(t, "Buy milk", "Call mom")

	m = send(t, m, keys("e"))
	require.Equal(t, editing, m.mode)
	assert.Equal(t, "Buy milk", m.ti.Value(), "edit starts from the current name")

	m.ti.SetValue("Buy oat milk")
	m = send(t, m, enter)

	items, err := s.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 1, Name: "Buy oat milk"}, {ID: 2, Name: "Call mom"}}, items)
	assert.Equal(t, "Buy oat milk", m.list.Items()[0].(listItem).Name)
}

func TestDeleteCursorItem(t *testing.T) {
	m, s := newModel(t, "X", "X")

	m.list.Select(1)
	m = send(t, m, keys("d"))

	items, err := s.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 1, Name: "X"}}, items, "the row under the cursor goes, not its twin")
	assert.Len(t, m.list.Items(), 1)
	assert.Equal(t, 0, m.list.Index())
}

func TestEditAndDeleteOnEmptyListAreNoops(t *testing.T) {
	m, _ := newModel(t)
	m = send(t, m, keys("e"))
	assert.Equal(t, browsing, m.mode)
	m = send(t, m, keys("d"))
	assert.Empty(t, m.list.Items())
}

func TestStorageErrorShownInStatus(t *testing.T) {
	m, s := newModel(t, "a")
	s.Fail = errors.New("database is locked")

	m = send(t, m, keys("d"))
	assert.Contains(t, m.status, "database is locked")
	assert.Len(t, m.list.Items(), 1, "list untouched")
	assert.Contains(t, m.View(), "database is locked")

	s.Fail = nil
	m = send(t, m, keys("a"), keys("b"), enter)
	assert.Empty(t, m.status)
	assert.Len(t, m.list.Items(), 2)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	m, _ := newModel(t, "a")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 96, m.list.Width())
	assert.Equal(t, 26, m.list.Height())
}

func TestDeleteUnderFilterKeepsRemainingMatches(t *testing.T) {
	m, s := newModel(t, "Buy milk", "Call mom", "Buy bread")
	m.list.SetFilterText("Buy")
	require.Len(t, m.list.VisibleItems(), 2)

	next, cmd := m.Update(keys("d"))
	m = next.(Model)
	require.NotNil(t, cmd, "the filter is re-applied through a command")
	m = send(t, m, cmd())

	assert.Equal(t, []string{"Call mom", "Buy bread"}, storedNames(t, s))
	visible := m.list.VisibleItems()
	require.Len(t, visible, 1)
	assert.Equal(t, "Buy bread", visible[0].(listItem).Name)
	assert.Contains(t, m.View(), "Buy bread")
}

func TestAddUnderFilterReappliesIt(t *testing.T) {
	m, _ := newModel(t, "Buy milk", "Call mom")
	m.list.SetFilterText("Buy")

	m = send(t, m, keys("a"), keys("Buy bread"))
	next, cmd := m.Update(enter)
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Len(t, m.list.Items(), 3)
	assert.Len(t, m.list.VisibleItems(), 2)
}
