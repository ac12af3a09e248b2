package progrock_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vitoprogrock "github.com/vito/progrock"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "compile src/main.c")

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("main.c\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("main.c:1:1: warning: unused\n"))
	require.NoError(t, err)

	vertex.Log(domain.LogLevelWarn, "1 warning")
	vertex.Complete(errors.New("exit status 1"))

	require.NoError(t, recorder.Close())
}

func TestRecorder_RecordSameNameTwice(t *testing.T) {
	recorder := progrock.New()

	_, first := recorder.Record(context.Background(), "link build/debug/demo")
	_, second := recorder.Record(context.Background(), "link build/debug/demo")

	assert.NotSame(t, first, second)
	first.Cached()
	second.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_StreamsToWriters(t *testing.T) {
	tape := vitoprogrock.NewTape()
	recorder := progrock.NewRecorder(tape)

	_, compiled := recorder.Record(context.Background(), "compile src/main.c")
	compiled.Complete(nil)
	_, failed := recorder.Record(context.Background(), "compile src/util.c")
	failed.Complete(errors.New("exit status 1"))
	_, skipped := recorder.Record(context.Background(), "link build/debug/demo")
	skipped.Cached()

	require.NoError(t, recorder.Close())

	assert.Equal(t, 3, tape.TotalCount())
	assert.Equal(t, 2, tape.CompletedCount())
	assert.Equal(t, 1, tape.ErroredCount())
	assert.Equal(t, 1, tape.CachedCount())
}

func TestRecorder_Journal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".kiln", "progress.jsonl")
	recorder := progrock.New()
	require.NoError(t, recorder.Journal(path))

	_, vertex := recorder.Record(context.Background(), "compile src/main.c")
	_, err := vertex.Stdout().Write([]byte("main.c\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Greater(t, len(lines), 1)
	assert.Contains(t, string(data), "compile src/main.c")
}

func TestRecorder_JournalUnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := progrock.New().Journal(filepath.Join(blocker, "progress.jsonl"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrJournalCreateFailed.Error())
}
