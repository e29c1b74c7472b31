package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/dailytasks/internal/model"
	"github.com/idilsaglam/dailytasks/internal/store"
	"github.com/idilsaglam/dailytasks/internal/store/sqlitestore"
)

// openTestStore opens a file-backed store in a temp dir and closes it on cleanup.
func openTestStore(t *testing.T) (*sqlitestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.db")
	s, err := sqlitestore.Open(path, zerolog.Nop())
	require.NoError(t, err, "open store")
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s, path
}

func TestOpenCreatesTableIdempotently(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "Buy milk")
	require.NoError(t, err)

	// Re-opening the same file must keep existing rows.
	again, err := sqlitestore.Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer again.Close()

	names, err := again.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, names)
}

func TestInMemoryDatabase(t *testing.T) {
	s, err := sqlitestore.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.Insert(ctx, "a")
	require.NoError(t, err)
	_, err = s.Insert(ctx, "b")
	require.NoError(t, err)

	names, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, "one")
	require.NoError(t, err)
	second, err := s.Insert(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Greater(t, second.ID, first.ID)

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{first, second}, items)
}

func TestAddIncreasesCountByOne(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "dup")
	require.NoError(t, err)
	before, err := s.ListAll(ctx)
	require.NoError(t, err)

	_, err = s.Insert(ctx, "dup")
	require.NoError(t, err)
	after, err := s.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, countOf(before, "dup")+1, countOf(after, "dup"))
}

func TestUpdateByNameRewritesAllMatches(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	for _, n := range []string{"X", "Y", "X"} {
		_, err := s.Insert(ctx, n)
		require.NoError(t, err)
	}

	n, err := s.UpdateByName(ctx, "X", "Z")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	names, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Z", "Y", "Z"}, names)

	n, err = s.UpdateByName(ctx, "missing", "whatever")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteByNameRemovesAllMatches(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	for _, n := range []string{"X", "Y", "X"} {
		_, err := s.Insert(ctx, n)
		require.NoError(t, err)
	}

	n, err := s.DeleteByName(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	names, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, names)
}

func TestRenameKeepsIdentity(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	it, err := s.Insert(ctx, "Buy milk")
	require.NoError(t, err)

	require.NoError(t, s.Rename(ctx, it.ID, "Buy oat milk"))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: it.ID, Name: "Buy oat milk"}}, items)
}

func TestRenameAndRemoveTargetOnlyTheirRow(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, "X")
	require.NoError(t, err)
	second, err := s.Insert(ctx, "X")
	require.NoError(t, err)

	require.NoError(t, s.Rename(ctx, second.ID, "Y"))
	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: first.ID, Name: "X"}, {ID: second.ID, Name: "Y"}}, items)

	require.NoError(t, s.Remove(ctx, first.ID))
	items, err = s.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: second.ID, Name: "Y"}}, items)
}

func TestMissingIDIsNotFound(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Rename(ctx, 42, "nope"), store.ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, 42), store.ErrNotFound)
}

func TestRoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()

	s, err := sqlitestore.Open(path, zerolog.Nop())
	require.NoError(t, err)
	keep, err := s.Insert(ctx, "keep")
	require.NoError(t, err)
	gone, err := s.Insert(ctx, "gone")
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, gone.ID))
	require.NoError(t, s.Close())

	s, err = sqlitestore.Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{keep}, items)
}

func TestClosedStore(t *testing.T) {
	s, err := sqlitestore.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second close is a no-op")

	ctx := context.Background()
	_, err = s.Insert(ctx, "x")
	assert.ErrorIs(t, err, store.ErrClosed)
	_, err = s.ListAll(ctx)
	assert.ErrorIs(t, err, store.ErrClosed)
	_, err = s.Items(ctx)
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, s.Remove(ctx, 1), store.ErrClosed)
}

func TestOpenBadPath(t *testing.T) {
	_, err := sqlitestore.Open(filepath.Join(t.TempDir(), "missing", "dir", "todo.db"), zerolog.Nop())
	assert.Error(t, err)
}

func countOf(names []string, want string) int {
	n := 0
	for _, s := range names {
		if s == want {
			n++
		}
	}
	return n
}
