package fs

import (
	"path/filepath"
	"sort"

	"go.trai.ch/zerr"
)

// Resolver expands manifest path patterns against the project root.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolvePatterns expands each pattern relative to root with filepath.Glob.
// A pattern without glob metacharacters is returned as-is even if the file does not exist yet,
// so a relink trigger that is produced later still counts. Results are sorted and unique.
func (r *Resolver) ResolvePatterns(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		if len(matches) == 0 && !hasMeta(pattern) {
			matches = []string{path}
		}

		for _, match := range matches {
			unique[match] = struct{}{}
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
