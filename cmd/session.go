package cmd

import (
	"context"
	"net/url"
	"os"

	"github.com/tvrenamer/tvrenamer/config"
	mhttp "github.com/tvrenamer/tvrenamer/pkg/http"
	mio "github.com/tvrenamer/tvrenamer/pkg/io"
	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/manager"
	"github.com/tvrenamer/tvrenamer/pkg/metadata"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"github.com/tvrenamer/tvrenamer/pkg/tmdb"
)

// newRenameManager wires a session for the directory at path. Commands that
// only need metadata access pass an empty path.
func newRenameManager(cfg config.Config, path string) (*manager.RenameManager, error) {
	tmdbURL := url.URL{
		Scheme: cfg.TMDB.Scheme,
		Host:   cfg.TMDB.Host,
	}

	tmdbHttpClient := mhttp.NewRateLimitedClient(
		mhttp.WithMaxRetries(cfg.TMDB.MaxRetries),
		mhttp.WithBaseBackoff(cfg.TMDB.BaseBackoff),
	)
	tmdbClient, err := tmdb.New(tmdbURL.String(), cfg.TMDB.APIKey, tmdb.WithHTTPClient(tmdbHttpClient))
	if err != nil {
		return nil, err
	}

	fileIO := &mio.MediaFileSystem{}
	resolver := metadata.NewResolver(tmdbClient)
	eng := renamer.New(resolver, fileIO,
		renamer.WithMaxRetries(cfg.Renamer.MaxRetries),
		renamer.WithRetryPause(cfg.Renamer.RetryPause),
		renamer.WithHistoryLimit(cfg.Renamer.HistoryLimit),
	)

	lib := library.New(path, os.DirFS(path), fileIO)
	return manager.New(lib, resolver, eng), nil
}

// selectShow pins the show for metadata naming: the --show flag when given,
// otherwise a guess from the scanned filenames. Other methods ignore it.
func selectShow(ctx context.Context, m *manager.RenameManager, method renamer.Method) error {
	if showName != "" {
		_, err := m.SelectShow(ctx, showName, seasonNum)
		return err
	}
	if method != renamer.MethodMetadataMatch {
		return nil
	}
	_, err := m.GuessSelection(ctx)
	return err
}
