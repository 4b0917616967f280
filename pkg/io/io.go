package io

import (
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"
)

var (
	_ FileIO = (*MediaFileSystem)(nil)

	ErrFileExists = fmt.Errorf("file already exists")
)

// MediaFileSystem is the default implementation of file io using the os package
type MediaFileSystem struct{}

// Stat is a wrapper around os.Stat
func (o *MediaFileSystem) Stat(target string) (os.FileInfo, error) {
	return os.Stat(target)
}

// Rename is a wrapper around os.Rename. The target must not exist yet.
func (o *MediaFileSystem) Rename(source, target string) error {
	if o.FileExists(target) {
		return ErrFileExists
	}
	return os.Rename(source, target)
}

// WalkDir is a wrapper around fs.WalkDir
func (o *MediaFileSystem) WalkDir(fsys fs.FS, root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(fsys, root, fn)
}

func (o *MediaFileSystem) FileExists(path string) bool {
	_, err := o.Stat(path)
	return err == nil
}

// CreationTime returns the best creation timestamp the platform exposes.
// Linux does not surface a birth time through syscall.Stat_t, so this falls
// back to the inode change time, then to the modification time.
func (o *MediaFileSystem) CreationTime(path string) (time.Time, error) {
	info, err := o.Stat(path)
	if err != nil {
		return time.Time{}, err
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec), nil
	}

	return info.ModTime(), nil
}
