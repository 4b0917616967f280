package renamer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvrenamer/tvrenamer/pkg/library"
)

func touch(t *testing.T, dir, name string) *library.FileEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("video"), 0o644))
	return library.NewFileEntry(path)
}

func TestRenameBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("renames files and records an undo batch", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		first := touch(t, dir, "got.S01E01.mkv")
		first.ProposedName = "Game Of Thrones-S01E01-Winter Is Coming.mkv"
		second := touch(t, dir, "got.S01E02.mkv")
		second.ProposedName = "Game Of Thrones-S01E02-The Kingsroad.mkv"

		renamed, err := r.RenameBatch(ctx, []*library.FileEntry{first, second})
		require.NoError(t, err)
		assert.Equal(t, 2, renamed)

		assert.FileExists(t, filepath.Join(dir, "Game Of Thrones-S01E01-Winter Is Coming.mkv"))
		assert.FileExists(t, filepath.Join(dir, "Game Of Thrones-S01E02-The Kingsroad.mkv"))
		assert.NoFileExists(t, filepath.Join(dir, "got.S01E01.mkv"))

		assert.Equal(t, library.StatusSuccess, first.Status)
		assert.Equal(t, library.StatusSuccess, second.Status)

		batch, ok := r.LastUndoBatch()
		require.True(t, ok)
		assert.Len(t, batch.Items, 2)
		assert.Equal(t, "got.S01E01.mkv", batch.Items[0].OriginalName)
	})

	t.Run("skips entries without a proposed name", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		entry := touch(t, dir, "unmatched.mkv")

		renamed, err := r.RenameBatch(ctx, []*library.FileEntry{entry})
		require.NoError(t, err)
		assert.Equal(t, 0, renamed)
		assert.FileExists(t, entry.SourcePath)

		_, ok := r.LastUndoBatch()
		assert.False(t, ok)
	})

	t.Run("a failed rename marks the entry and leaves it out of the undo record", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		blocked := touch(t, dir, "got.S01E01.mkv")
		blocked.ProposedName = "taken.mkv"
		touch(t, dir, "taken.mkv")

		fine := touch(t, dir, "got.S01E02.mkv")
		fine.ProposedName = "renamed.mkv"

		renamed, err := r.RenameBatch(ctx, []*library.FileEntry{blocked, fine})
		require.NoError(t, err)
		assert.Equal(t, 1, renamed)

		assert.Equal(t, library.StatusError, blocked.Status)
		assert.NotEmpty(t, blocked.Detail)
		assert.FileExists(t, blocked.SourcePath)

		batch, ok := r.LastUndoBatch()
		require.True(t, ok)
		require.Len(t, batch.Items, 1)
		assert.Equal(t, "got.S01E02.mkv", batch.Items[0].OriginalName)
	})
}

func TestUndoLastBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip restores original names", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		entry := touch(t, dir, "got.S01E01.mkv")
		entry.ProposedName = "Game Of Thrones-S01E01-Winter Is Coming.mkv"

		_, err := r.RenameBatch(ctx, []*library.FileEntry{entry})
		require.NoError(t, err)

		restored, err := r.UndoLastBatch(ctx, []*library.FileEntry{entry})
		require.NoError(t, err)
		assert.Equal(t, 1, restored)
		assert.FileExists(t, filepath.Join(dir, "got.S01E01.mkv"))
		assert.NoFileExists(t, filepath.Join(dir, "Game Of Thrones-S01E01-Winter Is Coming.mkv"))
	})

	t.Run("restored working set entries read as undone", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		entry := touch(t, dir, "got.S01E01.mkv")
		entry.ProposedName = "Game Of Thrones-S01E01-Winter Is Coming.mkv"
		untouched := touch(t, dir, "behind the scenes.mkv")

		entries := []*library.FileEntry{entry, untouched}
		_, err := r.RenameBatch(ctx, entries)
		require.NoError(t, err)
		require.Equal(t, library.StatusSuccess, entry.Status)

		_, err = r.UndoLastBatch(ctx, entries)
		require.NoError(t, err)

		assert.Equal(t, library.StatusUndone, entry.Status)
		assert.Empty(t, entry.ProposedName)
		assert.Equal(t, entry.SourcePath, entry.CurrentPath())
		assert.Equal(t, library.StatusPending, untouched.Status)
	})

	t.Run("batches pop newest first", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		first := touch(t, dir, "a.mkv")
		first.ProposedName = "a-renamed.mkv"
		_, err := r.RenameBatch(ctx, []*library.FileEntry{first})
		require.NoError(t, err)

		second := touch(t, dir, "b.mkv")
		second.ProposedName = "b-renamed.mkv"
		_, err = r.RenameBatch(ctx, []*library.FileEntry{second})
		require.NoError(t, err)

		_, err = r.UndoLastBatch(ctx, nil)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "b.mkv"))
		assert.FileExists(t, filepath.Join(dir, "a-renamed.mkv"))

		_, err = r.UndoLastBatch(ctx, nil)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "a.mkv"))
	})

	t.Run("empty stack", func(t *testing.T) {
		r, _ := newTestRenamer(t)
		_, err := r.UndoLastBatch(ctx, nil)
		assert.ErrorIs(t, err, ErrNothingToUndo)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		entry := touch(t, dir, "a.mkv")
		entry.ProposedName = "a-renamed.mkv"
		_, err := r.RenameBatch(ctx, []*library.FileEntry{entry})
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(dir, "a-renamed.mkv")))

		restored, err := r.UndoLastBatch(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, restored)
	})
}

func TestUndoSelected(t *testing.T) {
	ctx := context.Background()

	t.Run("restores only successful entries", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t)

		renamedEntry := touch(t, dir, "a.mkv")
		renamedEntry.ProposedName = "a-renamed.mkv"
		untouched := touch(t, dir, "b.mkv")

		_, err := r.RenameBatch(ctx, []*library.FileEntry{renamedEntry})
		require.NoError(t, err)

		restored, err := r.UndoSelected(ctx, []*library.FileEntry{renamedEntry, untouched})
		require.NoError(t, err)
		assert.Equal(t, 1, restored)
		assert.FileExists(t, filepath.Join(dir, "a.mkv"))
		assert.Equal(t, library.StatusUndone, renamedEntry.Status)
		assert.Empty(t, renamedEntry.ProposedName)
	})

	t.Run("history is bounded and newest first", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := newTestRenamer(t, WithHistoryLimit(2))

		for _, name := range []string{"a.mkv", "b.mkv", "c.mkv"} {
			entry := touch(t, dir, name)
			entry.ProposedName = "renamed-" + name
			_, err := r.RenameBatch(ctx, []*library.FileEntry{entry})
			require.NoError(t, err)
			_, err = r.UndoSelected(ctx, []*library.FileEntry{entry})
			require.NoError(t, err)
		}

		history := r.History()
		require.Len(t, history, 2)
		assert.Equal(t, "c.mkv", history[0].Items[0].OriginalName)
		assert.Equal(t, "b.mkv", history[1].Items[0].OriginalName)
	})
}
