package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing uncolored output to a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("settings changed, rebuilding everything")
	lg.Warn("c++23 is not supported by this toolchain, using c++20")
	lg.SetVerbose(true)
	lg.Debug("shown")

	g := goldie.New(t)
	g.Assert(t, "logger_levels", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("boom"),
			goldenName: "error_plain",
		},
		{
			name: "wrapped sentinel with metadata",
			err: zerr.With(zerr.With(
				zerr.Wrap(domain.ErrCompileFailed, "2 of 5 translation units failed"),
				"first", "build/debug/main.o"), "profile", "debug"),
			goldenName: "error_chain",
		},
		{
			name: "metadata on a standard error",
			err: zerr.Wrap(
				zerr.With(errors.New("exec: \"cc\": executable file not found in $PATH"), "program", "cc"),
				"tool unavailable"),
			goldenName: "error_folded_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)

			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Warn("careful")
	lg.Error(zerr.Wrap(domain.ErrLinkFailed, "linker exited with status 1"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var warn map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &warn))
	assert.Equal(t, "WARN", warn["level"])
	assert.Equal(t, "careful", warn["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "operation failed", failure["msg"])
	assert.Contains(t, failure, "error")
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
