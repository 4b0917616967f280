package library

import (
	"fmt"
	"path/filepath"

	"github.com/tvrenamer/tvrenamer/pkg/machine"
)

// Status is the lifecycle state of a file in the working set.
type Status string

const (
	StatusPending Status = "Pending"
	StatusReady   Status = "Ready"
	StatusNoMatch Status = "NoMatch"
	StatusError   Status = "Error"
	StatusSuccess Status = "Success"
	StatusUndone  Status = "Undone"
)

func statusMachine(current Status) *machine.StateMachine[Status] {
	return machine.New(current,
		machine.From(StatusPending).To(StatusReady, StatusNoMatch, StatusError),
		machine.From(StatusReady).To(StatusReady, StatusNoMatch, StatusError, StatusSuccess),
		machine.From(StatusNoMatch).To(StatusReady, StatusNoMatch, StatusError),
		machine.From(StatusError).To(StatusReady, StatusNoMatch, StatusError),
		machine.From(StatusSuccess).To(StatusUndone),
		machine.From(StatusUndone).To(StatusReady, StatusNoMatch, StatusError),
	)
}

// FileEntry is one file in the working set. SourcePath is the immutable key;
// the proposed name and status change as the pipeline works on the entry.
type FileEntry struct {
	SourcePath   string `json:"sourcePath"`
	OriginalName string `json:"originalName"`
	ProposedName string `json:"proposedName"`
	Size         string `json:"size,omitempty"`
	Status       Status `json:"status"`
	// Detail carries the reason behind a NoMatch or Error status.
	Detail string `json:"detail,omitempty"`
}

// NewFileEntry creates a Pending entry for the file at path.
func NewFileEntry(path string) *FileEntry {
	return &FileEntry{
		SourcePath:   path,
		OriginalName: filepath.Base(path),
		Status:       StatusPending,
	}
}

// SetStatus transitions the entry to a new status, rejecting transitions the
// lifecycle does not allow.
func (e *FileEntry) SetStatus(s Status, detail string) error {
	if err := statusMachine(e.Status).ToState(s); err != nil {
		return fmt.Errorf("%s to %s: %w", e.Status, s, err)
	}
	e.Status = s
	e.Detail = detail
	return nil
}

// CurrentPath is where the file lives right now: next to its source, under
// the proposed name once the rename succeeded.
func (e *FileEntry) CurrentPath() string {
	if e.Status == StatusSuccess && e.ProposedName != "" {
		return filepath.Join(filepath.Dir(e.SourcePath), e.ProposedName)
	}
	return e.SourcePath
}

func (e *FileEntry) String() string {
	return fmt.Sprintf("name: %s, proposed: %s, status: %s", e.OriginalName, e.ProposedName, e.Status)
}
