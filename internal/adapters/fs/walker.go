// Package fs provides file system adapters for stating, walking and fingerprinting.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root whose extension is one of exts (all files when exts
// is empty), skipping VCS metadata and the directories in skipDirs. An entry holding a path
// separator skips exactly that directory; a bare entry is a name pattern matched at every depth.
// Paths are yielded with root as their prefix. A walk error is yielded once and ends the walk;
// a missing root yields nothing.
func (w *Walker) WalkFiles(root string, exts, skipDirs []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipAll
				}
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(path, d.Name(), skipDirs) {
					return filepath.SkipDir
				}
				return nil
			}

			if !matchesExt(path, exts) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func (w *Walker) shouldSkipDir(path, name string, skipDirs []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	for _, ignore := range skipDirs {
		if isPath(ignore) {
			if filepath.Clean(ignore) == filepath.Clean(path) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

func isPath(entry string) bool {
	return filepath.IsAbs(entry) || strings.ContainsRune(entry, filepath.Separator)
}

func matchesExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
