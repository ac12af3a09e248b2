package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// chainLink is an error that reports its own message and metadata without the chain,
// as zerr.Error does.
type chainLink interface {
	Message() string
	Metadata() map[string]any
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into one entry per wrapping level.
// Levels without a message (metadata-only wrappers) fold their metadata into the
// entry above them, or into the next one when they are outermost.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for current := err; current != nil; {
		link, ok := current.(chainLink)
		if !ok {
			entries = append(entries, errorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := link.Metadata()
		switch {
		case link.Message() != "":
			entries = append(entries, errorEntry{Message: link.Message(), Metadata: merge(pending, meta)})
			pending = nil
		case len(entries) > 0:
			last := &entries[len(entries)-1]
			last.Metadata = merge(last.Metadata, meta)
		default:
			pending = merge(pending, meta)
		}
		current = errors.Unwrap(current)
	}

	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// formatErrorEntries renders the chain as a main error followed by its causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
