package renamer

import (
	"context"
	"errors"
	"time"

	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/metadata"
	"go.uber.org/zap"
)

// FailedEntry names a file the preview could not produce a name for.
type FailedEntry struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PreviewSummary reports what a preview pass did to the working set.
type PreviewSummary struct {
	Processed int           `json:"processed"`
	Ready     int           `json:"ready"`
	Failed    []FailedEntry `json:"failed,omitempty"`
}

// Preview synthesizes a proposed name for every entry and updates entry
// statuses in place. Files that fail stay in the working set with an empty
// proposed name so a later rename pass skips them. A canceled context stops
// the pass between files and returns what was done so far.
func (r *Renamer) Preview(ctx context.Context, entries []*library.FileEntry, method Method, show *ShowContext) (*PreviewSummary, error) {
	log := logger.FromCtx(ctx)
	summary := &PreviewSummary{}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Processed++
		name, err := r.synthesizeWithRetry(ctx, entry, i+1, method, show)
		if err != nil {
			entry.ProposedName = ""
			status := library.StatusError
			if isNamingFailure(err) {
				status = library.StatusNoMatch
			}
			if serr := entry.SetStatus(status, err.Error()); serr != nil {
				log.Warnw("status transition rejected", zap.Error(serr), "file", entry.OriginalName)
			}
			summary.Failed = append(summary.Failed, FailedEntry{Name: entry.OriginalName, Reason: err.Error()})
			continue
		}

		entry.ProposedName = name
		if serr := entry.SetStatus(library.StatusReady, ""); serr != nil {
			log.Warnw("status transition rejected", zap.Error(serr), "file", entry.OriginalName)
		}
		summary.Ready++
	}

	log.Debugw("preview finished", "processed", summary.Processed, "ready", summary.Ready, "failed", len(summary.Failed))
	return summary, nil
}

// synthesizeWithRetry retries failed metadata lookups a fixed number of times
// with a fixed pause. Failures that retrying cannot fix, a missing show or an
// unparsable filename, return immediately.
func (r *Renamer) synthesizeWithRetry(ctx context.Context, entry *library.FileEntry, index int, method Method, show *ShowContext) (string, error) {
	log := logger.FromCtx(ctx)

	var name string
	var err error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		name, err = r.Synthesize(ctx, entry, index, method, show)
		if err == nil || !errors.Is(err, ErrEpisodeNotFound) {
			return name, err
		}
		if attempt == r.maxRetries {
			break
		}
		log.Debugw("metadata lookup failed, retrying", "file", entry.OriginalName, "attempt", attempt)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.retryPause):
		}
	}
	return name, err
}

func isNamingFailure(err error) bool {
	return errors.Is(err, ErrNoShowSelected) ||
		errors.Is(err, ErrNoSeasonSelected) ||
		errors.Is(err, ErrNoEpisodeNumber) ||
		errors.Is(err, ErrEpisodeNotFound) ||
		errors.Is(err, metadata.ErrNotFound)
}
