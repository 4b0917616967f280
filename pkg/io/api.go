package io

import (
	"io/fs"
	"os"
	"time"
)

// FileIO is an interface for the file operations the rename pipeline needs
type FileIO interface {
	Stat(target string) (os.FileInfo, error)
	Rename(source, target string) error
	WalkDir(fsys fs.FS, root string, fn fs.WalkDirFunc) error
	FileExists(path string) bool
	CreationTime(path string) (time.Time, error)
}
