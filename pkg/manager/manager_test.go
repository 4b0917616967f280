package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mio "github.com/tvrenamer/tvrenamer/pkg/io"
	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/metadata"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"github.com/tvrenamer/tvrenamer/pkg/tmdb"
	"github.com/tvrenamer/tvrenamer/pkg/tmdb/mocks"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestManager(t *testing.T, dir string) (*RenameManager, *mocks.MockClientInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClientInterface(ctrl)

	fileIO := &mio.MediaFileSystem{}
	resolver := metadata.NewResolver(client)
	eng := renamer.New(resolver, fileIO, renamer.WithRetryPause(0))
	lib := library.New(dir, os.DirFS(dir), fileIO)

	return New(lib, resolver, eng), client
}

func writeVideo(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("video"), 0o644))
}

func TestRenameManagerSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeVideo(t, dir, "got.S01E01.mkv")
	writeVideo(t, dir, "notes.txt")

	m, client := newTestManager(t, dir)

	entries, err := m.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "got.S01E01.mkv", entries[0].OriginalName)
	assert.Equal(t, entries, m.Files())

	client.EXPECT().SearchTV(gomock.Any(), "game of thrones").Return(&tmdb.SearchTVResponse{
		Page:         ptr(1),
		TotalResults: ptr(1),
		Results:      []*tmdb.TVResult{{ID: ptr(1399), Name: ptr("Game of Thrones")}},
	}, nil)
	client.EXPECT().SeriesDetails(gomock.Any(), 1399).Return(
		&tmdb.SeriesDetails{ID: ptr(1399), Name: ptr("Game of Thrones"), FirstAirDate: ptr("2011-04-17")}, nil)

	selection, err := m.SelectShow(ctx, "game of thrones", 1)
	require.NoError(t, err)
	assert.Equal(t, 1399, selection.ShowID)
	assert.Equal(t, selection, m.Selection())

	client.EXPECT().EpisodeDetails(gomock.Any(), 1399, 1, 1).Return(
		&tmdb.EpisodeDetails{Name: ptr("Winter Is Coming"), EpisodeNumber: ptr(1)}, nil)

	summary, err := m.Preview(ctx, renamer.MethodMetadataMatch)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Ready)

	renamed, err := m.Rename(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, renamed)
	assert.FileExists(t, filepath.Join(dir, "Game Of Thrones-S01E01-Winter Is Coming.mkv"))

	restored, err := m.UndoLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.FileExists(t, filepath.Join(dir, "got.S01E01.mkv"))

	// the working set the server reports must reflect the undo
	assert.Equal(t, library.StatusUndone, entries[0].Status)
	assert.Empty(t, entries[0].ProposedName)
	assert.Equal(t, entries[0].SourcePath, entries[0].CurrentPath())
}

func TestGuessSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("show and season come from the filenames", func(t *testing.T) {
		dir := t.TempDir()
		writeVideo(t, dir, "extras.mkv")
		writeVideo(t, dir, "Breaking.Bad.S02E03.mkv")

		m, client := newTestManager(t, dir)
		_, err := m.Scan(ctx)
		require.NoError(t, err)

		client.EXPECT().SearchTV(gomock.Any(), "Breaking Bad").Return(&tmdb.SearchTVResponse{
			Page:         ptr(1),
			TotalResults: ptr(1),
			Results:      []*tmdb.TVResult{{ID: ptr(1396), Name: ptr("Breaking Bad")}},
		}, nil)
		client.EXPECT().SeriesDetails(gomock.Any(), 1396).Return(
			&tmdb.SeriesDetails{ID: ptr(1396), Name: ptr("Breaking Bad")}, nil)

		selection, err := m.GuessSelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1396, selection.ShowID)
		assert.Equal(t, 2, selection.Season)
	})

	t.Run("nothing recognizable", func(t *testing.T) {
		dir := t.TempDir()
		writeVideo(t, dir, "extras.mkv")

		m, _ := newTestManager(t, dir)
		_, err := m.Scan(ctx)
		require.NoError(t, err)

		_, err = m.GuessSelection(ctx)
		assert.ErrorIs(t, err, ErrNoShowDetected)
	})
}

func TestUndoSelectedByPath(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeVideo(t, dir, "show.102.mkv")

	m, _ := newTestManager(t, dir)
	entries, err := m.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = m.Preview(ctx, renamer.MethodIncrementingNumber)
	require.NoError(t, err)
	_, err = m.Rename(ctx)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "001.mkv"))

	restored, err := m.UndoSelected(ctx, []string{entries[0].SourcePath})
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.FileExists(t, filepath.Join(dir, "show.102.mkv"))

	require.Len(t, m.History(), 1)

	_, err = m.UndoSelected(ctx, []string{"/nowhere/else.mkv"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
