package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config.o
	//   pch/pch.h.o
	//   a.o
	//   sub/b.O
	//   sub/c.txt
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config.o"))
	writeFile(t, filepath.Join(tmpDir, "pch", "pch.h.o"))
	writeFile(t, filepath.Join(tmpDir, "a.o"))
	writeFile(t, filepath.Join(tmpDir, "sub", "b.O"))
	writeFile(t, filepath.Join(tmpDir, "sub", "c.txt"))

	walker := fs.NewWalker()

	var files []string
	for path, err := range walker.WalkFiles(tmpDir, []string{".o"}, []string{"pch"}) {
		require.NoError(t, err)
		files = append(files, path)
	}

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "a.o"),
		filepath.Join(tmpDir, "sub", "b.O"),
	}, files)
}

func TestWalker_WalkFiles_SkipsExactPath(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "build", "debug", "main.c"))
	writeFile(t, filepath.Join(tmpDir, "src", "build", "gen.c"))
	writeFile(t, filepath.Join(tmpDir, "src", "main.c"))

	var files []string
	for path, err := range fs.NewWalker().WalkFiles(tmpDir, []string{".c"}, []string{filepath.Join(tmpDir, "build")}) {
		require.NoError(t, err)
		files = append(files, path)
	}

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "src", "build", "gen.c"),
		filepath.Join(tmpDir, "src", "main.c"),
	}, files)
}

func TestWalker_WalkFiles_AllExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.c"))
	writeFile(t, filepath.Join(tmpDir, "README"))

	count := 0
	for _, err := range fs.NewWalker().WalkFiles(tmpDir, nil, nil) {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.c"))
	writeFile(t, filepath.Join(tmpDir, "b.c"))

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestFileSystem_WalkFiles_MissingRoot(t *testing.T) {
	fsys := fs.NewFileSystem(fs.NewWalker())

	files, err := fsys.WalkFiles(filepath.Join(t.TempDir(), "nope"), []string{".o"}, nil)

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileSystem_Stat(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.c")
	writeFile(t, path)

	mtime := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	fsys := fs.NewFileSystem(fs.NewWalker())

	rec, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.True(t, rec.Exists)
	assert.True(t, rec.ModTime.Equal(mtime))

	missing, err := fsys.Stat(filepath.Join(tmpDir, "missing.c"))
	require.NoError(t, err)
	assert.False(t, missing.Exists)
	assert.Equal(t, filepath.Join(tmpDir, "missing.c"), missing.Path)
}

func TestFileSystem_RemoveAndMkdir(t *testing.T) {
	tmpDir := t.TempDir()
	fsys := fs.NewFileSystem(fs.NewWalker())

	dir := filepath.Join(tmpDir, "out", "sub")
	require.NoError(t, fsys.MkdirAll(dir))
	assert.DirExists(t, dir)

	path := filepath.Join(dir, "a.o")
	writeFile(t, path)
	require.NoError(t, fsys.Remove(path))
	assert.NoFileExists(t, path)

	// Removing twice is fine.
	require.NoError(t, fsys.Remove(path))

	writeFile(t, path)
	require.NoError(t, fsys.RemoveAll(filepath.Join(tmpDir, "out")))
	assert.NoDirExists(t, filepath.Join(tmpDir, "out"))
	require.NoError(t, fsys.RemoveAll(filepath.Join(tmpDir, "out")))
}

func TestFileSystem_WriteFile_KeepsTimestampWhenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pch.h")
	fsys := fs.NewFileSystem(fs.NewWalker())

	require.NoError(t, fsys.WriteFile(path, []byte("#include \"x.h\"\n")))
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, fsys.WriteFile(path, []byte("#include \"x.h\"\n")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	require.NoError(t, fsys.WriteFile(path, []byte("#include \"y.h\"\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#include \"y.h\"\n", string(data))
}
