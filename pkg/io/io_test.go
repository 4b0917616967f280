package io

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFileSystem_Rename(t *testing.T) {
	mfs := &MediaFileSystem{}

	t.Run("renames a file", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "old.mkv")
		target := filepath.Join(dir, "new.mkv")
		require.NoError(t, os.WriteFile(source, []byte("x"), 0o644))

		err := mfs.Rename(source, target)
		require.NoError(t, err)
		assert.False(t, mfs.FileExists(source))
		assert.True(t, mfs.FileExists(target))
	})

	t.Run("refuses to overwrite an existing target", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "old.mkv")
		target := filepath.Join(dir, "new.mkv")
		require.NoError(t, os.WriteFile(source, []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(target, []byte("y"), 0o644))

		err := mfs.Rename(source, target)
		assert.ErrorIs(t, err, ErrFileExists)
		assert.True(t, mfs.FileExists(source))
	})
}

func TestMediaFileSystem_CreationTime(t *testing.T) {
	mfs := &MediaFileSystem{}

	t.Run("returns a timestamp for an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "file.mkv")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		created, err := mfs.CreationTime(path)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), created, time.Minute)
	})

	t.Run("errors for a missing file", func(t *testing.T) {
		_, err := mfs.CreationTime(filepath.Join(t.TempDir(), "missing.mkv"))
		assert.Error(t, err)
	})
}
