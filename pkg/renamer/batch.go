package renamer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tvrenamer/tvrenamer/pkg/library"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"go.uber.org/zap"
)

// ErrNothingToUndo means the undo stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// UndoItem records where a renamed file ended up and what it was called before.
type UndoItem struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
}

// UndoBatch is one rename operation's worth of undo information.
type UndoBatch struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Items     []UndoItem `json:"items"`
}

// RenameBatch renames every entry that carries a proposed name. Entries
// without one are skipped. A failed rename marks its entry Error and is left
// out of the undo record; the batch continues. Returns the number of files
// renamed. Successful renames are recorded on the undo stack even when the
// context is canceled partway through.
func (r *Renamer) RenameBatch(ctx context.Context, entries []*library.FileEntry) (int, error) {
	log := logger.FromCtx(ctx)
	batch := &UndoBatch{ID: uuid.New().String(), Timestamp: time.Now()}

	renamed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			r.pushBatch(batch)
			return renamed, err
		}

		if entry.ProposedName == "" {
			log.Debugw("no proposed name, skipping", "file", entry.OriginalName)
			continue
		}
		if entry.Status == library.StatusPending {
			// a proposed name set outside Preview still makes the entry renameable
			if err := entry.SetStatus(library.StatusReady, ""); err != nil {
				log.Warnw("status transition rejected", zap.Error(err), "file", entry.OriginalName)
			}
		}

		target := filepath.Join(filepath.Dir(entry.SourcePath), entry.ProposedName)
		if err := r.fileIO.Rename(entry.SourcePath, target); err != nil {
			log.Errorw("rename failed", zap.Error(err), "source", entry.SourcePath, "target", target)
			if serr := entry.SetStatus(library.StatusError, err.Error()); serr != nil {
				log.Warnw("status transition rejected", zap.Error(serr), "file", entry.OriginalName)
			}
			continue
		}

		if err := entry.SetStatus(library.StatusSuccess, ""); err != nil {
			log.Warnw("status transition rejected", zap.Error(err), "file", entry.OriginalName)
		}
		batch.Items = append(batch.Items, UndoItem{Path: target, OriginalName: entry.OriginalName})
		renamed++
	}

	r.pushBatch(batch)
	log.Infow("rename batch finished", "renamed", renamed, "batch", batch.ID)
	return renamed, nil
}

// UndoLastBatch pops the most recent rename batch and restores its files to
// their original names. Files that no longer exist at their renamed path are
// skipped. Working-set entries whose renamed paths appear in the batch are
// moved to Undone and their proposed names cleared; entries is the current
// working set and may be nil when the caller no longer holds one. Returns the
// number of files restored; individual failures are joined into the returned
// error. The batch is also recorded in the undo history for display.
func (r *Renamer) UndoLastBatch(ctx context.Context, entries []*library.FileEntry) (int, error) {
	log := logger.FromCtx(ctx)
	if len(r.undoStack) == 0 {
		return 0, ErrNothingToUndo
	}

	batch := r.undoStack[len(r.undoStack)-1]
	r.undoStack = r.undoStack[:len(r.undoStack)-1]

	restored := 0
	var failures []error
	for _, item := range batch.Items {
		if !r.fileIO.FileExists(item.Path) {
			log.Warnw("renamed file missing, skipping undo", "path", item.Path)
			continue
		}
		original := filepath.Join(filepath.Dir(item.Path), item.OriginalName)
		if err := r.fileIO.Rename(item.Path, original); err != nil {
			failures = append(failures, fmt.Errorf("restore %s: %w", item.Path, err))
			continue
		}
		restored++

		entry, ok := entryAtPath(entries, item.Path)
		if !ok {
			continue
		}
		if err := entry.SetStatus(library.StatusUndone, ""); err != nil {
			log.Warnw("status transition rejected", zap.Error(err), "file", entry.OriginalName)
		}
		entry.ProposedName = ""
	}

	r.recordHistory(batch)
	log.Infow("undo finished", "restored", restored, "batch", batch.ID)
	return restored, errors.Join(failures...)
}

// entryAtPath finds the working-set entry whose renamed file lives at path.
func entryAtPath(entries []*library.FileEntry, path string) (*library.FileEntry, bool) {
	for _, entry := range entries {
		if entry.CurrentPath() == path {
			return entry, true
		}
	}
	return nil, false
}

// UndoSelected restores only the given entries to their original names,
// regardless of which batch renamed them. Entries not in Success state are
// skipped. Returns the number of files restored.
func (r *Renamer) UndoSelected(ctx context.Context, entries []*library.FileEntry) (int, error) {
	log := logger.FromCtx(ctx)
	batch := &UndoBatch{ID: uuid.New().String(), Timestamp: time.Now()}

	restored := 0
	var failures []error
	for _, entry := range entries {
		if entry.Status != library.StatusSuccess || entry.ProposedName == "" {
			continue
		}
		current := entry.CurrentPath()
		if !r.fileIO.FileExists(current) {
			log.Warnw("renamed file missing, skipping undo", "path", current)
			continue
		}
		if err := r.fileIO.Rename(current, entry.SourcePath); err != nil {
			failures = append(failures, fmt.Errorf("restore %s: %w", current, err))
			continue
		}
		if err := entry.SetStatus(library.StatusUndone, ""); err != nil {
			log.Warnw("status transition rejected", zap.Error(err), "file", entry.OriginalName)
		}
		entry.ProposedName = ""
		batch.Items = append(batch.Items, UndoItem{Path: current, OriginalName: entry.OriginalName})
		restored++
	}

	r.recordHistory(batch)
	return restored, errors.Join(failures...)
}

// LastUndoBatch peeks at the most recent batch on the undo stack.
func (r *Renamer) LastUndoBatch() (*UndoBatch, bool) {
	if len(r.undoStack) == 0 {
		return nil, false
	}
	return r.undoStack[len(r.undoStack)-1], true
}

// RestoreUndoBatch pushes a previously persisted batch onto the undo stack.
func (r *Renamer) RestoreUndoBatch(batch *UndoBatch) {
	r.pushBatch(batch)
}

// History returns completed undo operations, newest first.
func (r *Renamer) History() []*UndoBatch {
	return r.history
}

func (r *Renamer) pushBatch(batch *UndoBatch) {
	if batch == nil || len(batch.Items) == 0 {
		return
	}
	r.undoStack = append(r.undoStack, batch)
}

func (r *Renamer) recordHistory(batch *UndoBatch) {
	if len(batch.Items) == 0 {
		return
	}
	r.history = append([]*UndoBatch{batch}, r.history...)
	if len(r.history) > r.historyLimit {
		r.history = r.history[:r.historyLimit]
	}
}
