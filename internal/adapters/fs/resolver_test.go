package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
)

func TestResolver_ResolvePatterns_Glob(t *testing.T) {
	tmpDir := t.TempDir()

	for _, f := range []string{"liba.a", "libb.a", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600))
	}

	resolved, err := fs.NewResolver().ResolvePatterns([]string{"*.a"}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "liba.a"),
		filepath.Join(tmpDir, "libb.a"),
	}, resolved)
}

func TestResolver_ResolvePatterns_LiteralKeptWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	resolved, err := fs.NewResolver().ResolvePatterns([]string{"vendor/libfoo.a", "gen/*.a"}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(tmpDir, "vendor", "libfoo.a")}, resolved)
}

func TestResolver_ResolvePatterns_Deduplicates(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.a"), nil, 0o600))

	resolved, err := fs.NewResolver().ResolvePatterns([]string{"a.a", "*.a", filepath.Join(tmpDir, "a.a")}, tmpDir)
	require.NoError(t, err)

	assert.Len(t, resolved, 1)
}

func TestResolver_ResolvePatterns_GlobError(t *testing.T) {
	_, err := fs.NewResolver().ResolvePatterns([]string{"[-]"}, t.TempDir())
	require.Error(t, err)
}
