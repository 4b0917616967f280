package renamer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/naming"
)

var (
	// ErrNoShowSelected means metadata naming was requested without a show.
	ErrNoShowSelected = errors.New("no show selected")
	// ErrNoSeasonSelected means metadata naming was requested without a season.
	ErrNoSeasonSelected = errors.New("no season selected")
	// ErrNoEpisodeNumber means no episode number could be read from the filename.
	ErrNoEpisodeNumber = errors.New("no episode number found in filename")
	// ErrEpisodeNotFound means the episode is not part of the selected season.
	ErrEpisodeNotFound = errors.New("episode not found in season")
)

// Synthesize produces the proposed filename for a single entry. index is the
// 1-based position of the entry in the batch and only matters for
// MethodIncrementingNumber. The result is always sanitized for the filesystem.
func (r *Renamer) Synthesize(ctx context.Context, entry *library.FileEntry, index int, method Method, show *ShowContext) (string, error) {
	ext := filepath.Ext(entry.OriginalName)

	switch method {
	case MethodMetadataMatch:
		return r.synthesizeFromMetadata(ctx, entry, show)
	case MethodIncrementingNumber:
		return naming.Sanitize(fmt.Sprintf("%03d%s", index, ext)), nil
	case MethodOriginalName:
		return naming.Sanitize(strings.TrimSuffix(entry.OriginalName, ext)), nil
	case MethodExtension:
		return naming.Sanitize(strings.TrimPrefix(ext, ".")), nil
	case MethodCreationDate:
		created, err := r.fileIO.CreationTime(entry.SourcePath)
		if err != nil {
			return "", fmt.Errorf("creation time of %s: %w", entry.SourcePath, err)
		}
		return naming.Sanitize(created.Format("2006-01-02") + ext), nil
	}

	return "", fmt.Errorf("unknown renaming method %d", method)
}

func (r *Renamer) synthesizeFromMetadata(ctx context.Context, entry *library.FileEntry, show *ShowContext) (string, error) {
	if show == nil || show.ShowID == 0 {
		return "", ErrNoShowSelected
	}
	if show.Season == 0 {
		return "", ErrNoSeasonSelected
	}

	episodeNumber, ok := naming.ExtractEpisodeNumber(entry.OriginalName)
	if !ok {
		return "", ErrNoEpisodeNumber
	}

	episode, err := r.resolver.ResolveEpisode(ctx, show.ShowID, show.Season, episodeNumber)
	if err != nil {
		return "", fmt.Errorf("season %d episode %d: %w", show.Season, episodeNumber, ErrEpisodeNotFound)
	}

	name := fmt.Sprintf("%s-S%02dE%02d-%s%s",
		naming.TitleCase(show.ShowName),
		show.Season,
		episodeNumber,
		naming.FormatTitle(episode.Name),
		filepath.Ext(entry.OriginalName))
	return naming.Sanitize(name), nil
}
