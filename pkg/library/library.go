package library

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	mio "github.com/tvrenamer/tvrenamer/pkg/io"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
)

var videoExtensions = []string{".mp4", ".avi", ".mkv", ".m4v", ".iso", ".ts", ".m2ts"}

// Library builds the working set of video files below a directory.
type Library struct {
	path   string
	fs     fs.FS
	fileIO mio.FileIO
}

func New(path string, fsys fs.FS, fileIO mio.FileIO) Library {
	return Library{
		path:   path,
		fs:     fsys,
		fileIO: fileIO,
	}
}

// FindVideos walks the library tree and returns a Pending entry for every
// video file found.
func (l *Library) FindVideos(ctx context.Context) ([]*FileEntry, error) {
	log := logger.FromCtx(ctx)

	entries := []*FileEntry{}
	err := l.fileIO.WalkDir(l.fs, ".", func(path string, d fs.DirEntry, err error) error {
		log.Debugw("video walk", "path", path)
		if err != nil {
			// just skip this dir for now if there's an issue
			return fs.SkipDir
		}

		if d.IsDir() || !isVideoFile(path) {
			return nil
		}

		entry := NewFileEntry(filepath.Join(l.path, path))
		info, err := d.Info()
		if err == nil {
			entry.Size = humanize.Bytes(uint64(info.Size()))
		}

		entries = append(entries, entry)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func isVideoFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range videoExtensions {
		if strings.ToLower(ext) == e {
			return true
		}
	}

	return false
}
