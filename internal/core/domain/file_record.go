package domain

import "time"

// FileRecord is the observed state of one path at analysis time.
type FileRecord struct {
	Path    string
	Exists  bool
	ModTime time.Time
}

// Missing returns the record of a path that does not exist.
func Missing(path string) FileRecord {
	return FileRecord{Path: path}
}

// NewerThan reports whether r was modified after other.
// A missing record is older than everything, and anything that exists is newer than a missing one.
func (r FileRecord) NewerThan(other FileRecord) bool {
	if !r.Exists {
		return false
	}
	if !other.Exists {
		return true
	}
	return r.ModTime.After(other.ModTime)
}
