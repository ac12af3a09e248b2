package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct {
	walker *Walker
}

// NewFileSystem creates a new FileSystem.
func NewFileSystem(walker *Walker) *FileSystem {
	return &FileSystem{walker: walker}
}

// Stat returns the record of path; a missing path yields a record with Exists unset.
func (f *FileSystem) Stat(path string) (domain.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.Missing(path), nil
		}
		return domain.FileRecord{}, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	return domain.FileRecord{Path: path, Exists: true, ModTime: info.ModTime()}, nil
}

// Remove deletes a single file.
func (f *FileSystem) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove file"), "path", path)
	}
	return nil
}

// RemoveAll deletes path and its children.
func (f *FileSystem) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", path)
	}
	return nil
}

// MkdirAll creates dir and its parents with domain.DirPerm.
func (f *FileSystem) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "dir", dir)
	}
	return nil
}

// WriteFile writes data to path with domain.FilePerm, skipping the write when the
// contents are already identical so the file's timestamp is preserved.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

// WalkFiles collects the files under root with one of exts.
func (f *FileSystem) WalkFiles(root string, exts, skipDirs []string) ([]string, error) {
	var files []string
	for path, err := range f.walker.WalkFiles(root, exts, skipDirs) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "root", root)
		}
		files = append(files, path)
	}
	return files, nil
}
