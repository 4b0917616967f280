package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/metadata"
	"github.com/tvrenamer/tvrenamer/pkg/naming"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
)

var (
	// ErrEntryNotFound means a requested file is not part of the working set.
	ErrEntryNotFound = errors.New("file not in working set")
	// ErrNoShowDetected means no scanned filename yielded a show and season.
	ErrNoShowDetected = errors.New("no show detected in filenames")
)

// RenameManager owns the session state the server and CLI operate on: the
// scanned working set, the selected show and season, and the rename engine.
// All methods are safe for concurrent use.
type RenameManager struct {
	library  library.Library
	resolver *metadata.Resolver
	renamer  *renamer.Renamer

	mu      sync.Mutex
	entries []*library.FileEntry
	show    *renamer.ShowContext
}

// New creates a RenameManager around an already wired library and engine.
func New(lib library.Library, resolver *metadata.Resolver, eng *renamer.Renamer) *RenameManager {
	return &RenameManager{
		library:  lib,
		resolver: resolver,
		renamer:  eng,
	}
}

// Scan walks the library directory and replaces the working set. Any previous
// selection of files is discarded; the show selection survives.
func (m *RenameManager) Scan(ctx context.Context) ([]*library.FileEntry, error) {
	entries, err := m.library.FindVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning library: %w", err)
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()

	logger.FromCtx(ctx).Infow("library scanned", "files", len(entries))
	return entries, nil
}

// Files returns the current working set.
func (m *RenameManager) Files() []*library.FileEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries
}

// SearchShows proxies a show search through the resolver cache.
func (m *RenameManager) SearchShows(ctx context.Context, term string) ([]metadata.Show, error) {
	return m.resolver.SearchShows(ctx, term)
}

// SelectShow resolves a show by name and pins it, along with a season, as the
// context every later metadata preview uses.
func (m *RenameManager) SelectShow(ctx context.Context, name string, season int) (*renamer.ShowContext, error) {
	show, err := m.resolver.ResolveShow(ctx, name)
	if err != nil {
		return nil, err
	}

	selection := &renamer.ShowContext{
		ShowID:       show.ID,
		ShowName:     show.Name,
		FirstAirDate: show.FirstAirDate,
		Season:       season,
	}

	m.mu.Lock()
	m.show = selection
	m.mu.Unlock()

	logger.FromCtx(ctx).Infow("show selected", "show", show.Name, "season", season)
	return selection, nil
}

// SeasonDetails resolves a season's episode list for a selected show.
func (m *RenameManager) SeasonDetails(ctx context.Context, showID, season int) (metadata.Season, error) {
	return m.resolver.ResolveSeason(ctx, showID, season)
}

// GuessSelection infers the show and season from the scanned filenames and
// pins the first name a pattern fully recognized. Explicit SelectShow calls
// always win; this only exists so a batch of well-formed files needs no
// typing.
func (m *RenameManager) GuessSelection(ctx context.Context) (*renamer.ShowContext, error) {
	m.mu.Lock()
	entries := m.entries
	m.mu.Unlock()

	for _, entry := range entries {
		parsed := naming.Parse(entry.OriginalName)
		if parsed.Kind != naming.Matched {
			continue
		}
		return m.SelectShow(ctx, parsed.ShowName, parsed.Season)
	}

	return nil, ErrNoShowDetected
}

// Selection returns the pinned show context, nil when none is selected.
func (m *RenameManager) Selection() *renamer.ShowContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.show
}

// Preview runs name synthesis over the working set.
func (m *RenameManager) Preview(ctx context.Context, method renamer.Method) (*renamer.PreviewSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renamer.Preview(ctx, m.entries, method, m.show)
}

// Rename executes the previewed renames and returns how many files changed.
func (m *RenameManager) Rename(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renamer.RenameBatch(ctx, m.entries)
}

// UndoLast unwinds the most recent rename batch and reconciles the working
// set, so restored entries read as Undone rather than Success.
func (m *RenameManager) UndoLast(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renamer.UndoLastBatch(ctx, m.entries)
}

// UndoSelected unwinds only the files at the given source paths.
func (m *RenameManager) UndoSelected(ctx context.Context, paths []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var selected []*library.FileEntry
	for _, path := range paths {
		entry, ok := m.findEntry(path)
		if !ok {
			return 0, fmt.Errorf("%s: %w", path, ErrEntryNotFound)
		}
		selected = append(selected, entry)
	}

	return m.renamer.UndoSelected(ctx, selected)
}

// LastUndoBatch peeks at the most recent rename batch without undoing it.
func (m *RenameManager) LastUndoBatch() (*renamer.UndoBatch, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renamer.LastUndoBatch()
}

// RestoreUndoBatch seeds the undo stack from a persisted batch.
func (m *RenameManager) RestoreUndoBatch(batch *renamer.UndoBatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renamer.RestoreUndoBatch(batch)
}

// History returns completed undo operations, newest first.
func (m *RenameManager) History() []*renamer.UndoBatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renamer.History()
}

// Stats reports cache and lookup counters for the session.
func (m *RenameManager) Stats() metadata.Stats {
	return m.renamer.Stats()
}

// findEntry expects m.mu to be held.
func (m *RenameManager) findEntry(path string) (*library.FileEntry, bool) {
	for _, entry := range m.entries {
		if entry.SourcePath == path {
			return entry, true
		}
	}
	return nil, false
}
