package logger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
		{
			name: "standard error",
			err:  errors.New("simple error"),
			want: []logger.ErrorEntry{{Message: "simple error"}},
		},
		{
			name: "wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer"},
				{Message: "middle"},
				{Message: "root cause"},
			},
		},
		{
			name: "metadata stays on its level",
			err:  zerr.With(zerr.Wrap(zerr.With(zerr.New("inner"), "k1", "v1"), "outer"), "k2", 2),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"k2": 2}},
				{Message: "inner", Metadata: map[string]any{"k1": "v1"}},
			},
		},
		{
			name: "metadata-only wrapper folds upwards",
			err:  zerr.Wrap(zerr.With(errors.New("root"), "path", "/tmp/x"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"path": "/tmp/x"}},
				{Message: "root"},
			},
		},
		{
			name: "outermost metadata-only wrapper folds downwards",
			err:  zerr.With(errors.New("root"), "path", "/tmp/x"),
			want: []logger.ErrorEntry{
				{Message: "root", Metadata: map[string]any{"path": "/tmp/x"}},
			},
		},
		{
			name: "fmt wrapping stops the walk",
			err:  fmt.Errorf("context: %w", zerr.New("inner")),
			want: []logger.ErrorEntry{{Message: "context: inner"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": "m"},
			}},
			want: "Error: error\n       alpha: a\n       mike: m\n       zebra: z",
		},
		{
			name: "multiline cause with metadata",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2", Metadata: map[string]any{"key": "val"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2\n      key: val",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
