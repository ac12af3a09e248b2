package ports

import "go.trai.ch/kiln/internal/core/domain"

// FileSystem is the filesystem surface the engine observes and mutates.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns the record of path. A missing path is not an error.
	Stat(path string) (domain.FileRecord, error)

	// Remove deletes a single file. Removing a missing file is not an error.
	Remove(path string) error

	// RemoveAll deletes path and everything below it. A missing path is not an error.
	RemoveAll(path string) error

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// WriteFile replaces the contents of path, creating it if needed.
	WriteFile(path string, data []byte) error

	// WalkFiles returns every regular file under root whose extension is in exts, skipping
	// skipDirs: entries holding a separator name one directory, bare names match at any depth.
	// A missing root yields no files.
	WalkFiles(root string, exts []string, skipDirs []string) ([]string, error)
}
