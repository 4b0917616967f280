package renamer

import (
	"time"

	mio "github.com/tvrenamer/tvrenamer/pkg/io"
	"github.com/tvrenamer/tvrenamer/pkg/metadata"
)

const (
	// DefaultMaxRetries bounds metadata lookup attempts per file during preview.
	DefaultMaxRetries = 3
	// DefaultRetryPause is the fixed wait between lookup attempts.
	DefaultRetryPause = time.Second
	// DefaultHistoryLimit bounds the selective undo history.
	DefaultHistoryLimit = 10
)

// ShowContext is the show and season a session operates on. It is set
// explicitly by the caller; synthesis never guesses the show from filenames.
type ShowContext struct {
	ShowID       int
	ShowName     string
	FirstAirDate string
	// Season is the selected season number. Zero means none selected.
	Season int
}

// Renamer synthesizes proposed names, executes rename batches, and unwinds
// them again. It is not safe for concurrent use; drive it from a single
// goroutine or through a Worker.
type Renamer struct {
	resolver *metadata.Resolver
	fileIO   mio.FileIO

	maxRetries   int
	retryPause   time.Duration
	historyLimit int

	undoStack []*UndoBatch
	history   []*UndoBatch
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithMaxRetries overrides the metadata lookup retry bound.
func WithMaxRetries(n int) Option {
	return func(r *Renamer) {
		if n > 0 {
			r.maxRetries = n
		}
	}
}

// WithRetryPause overrides the pause between lookup attempts.
func WithRetryPause(d time.Duration) Option {
	return func(r *Renamer) {
		if d >= 0 {
			r.retryPause = d
		}
	}
}

// WithHistoryLimit overrides how many undo operations are kept for display.
func WithHistoryLimit(n int) Option {
	return func(r *Renamer) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// New creates a Renamer backed by the given metadata resolver and filesystem.
func New(resolver *metadata.Resolver, fileIO mio.FileIO, opts ...Option) *Renamer {
	r := &Renamer{
		resolver:     resolver,
		fileIO:       fileIO,
		maxRetries:   DefaultMaxRetries,
		retryPause:   DefaultRetryPause,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats reports the resolver's cache and lookup counters.
func (r *Renamer) Stats() metadata.Stats {
	return r.resolver.Stats()
}
