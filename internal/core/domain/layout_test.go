package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

var (
	msvc  = domain.Toolchain{ID: domain.ToolchainMSVC, TargetOS: "windows"}
	gcc   = domain.Toolchain{ID: domain.ToolchainGCC, TargetOS: "linux"}
	clang = domain.Toolchain{ID: domain.ToolchainClang, TargetOS: "darwin"}
)

func TestObjectPath_MirrorsSourceTree(t *testing.T) {
	src := filepath.FromSlash("src")
	out := filepath.FromSlash("bin/debug")

	a := domain.ObjectPath(src, out, filepath.FromSlash("src/a.c"), msvc)
	b := domain.ObjectPath(src, out, filepath.FromSlash("src/sub/b.c"), msvc)

	assert.Equal(t, filepath.FromSlash("bin/debug/a.obj"), a)
	assert.Equal(t, filepath.FromSlash("bin/debug/sub/b.obj"), b)
	assert.NotEqual(t, a, b)
}

func TestObjectPath_Deterministic(t *testing.T) {
	src := filepath.FromSlash("/p/src")
	out := filepath.FromSlash("/p/build/debug")
	file := filepath.FromSlash("/p/src/net/conn.cpp")

	first := domain.ObjectPath(src, out, file, gcc)
	second := domain.ObjectPath(src, out, file, gcc)

	assert.Equal(t, first, second)
	assert.Equal(t, filepath.FromSlash("/p/build/debug/net/conn.o"), first)
}

func TestObjectPath_SourceOutsideSourceDir(t *testing.T) {
	src := filepath.FromSlash("/p/src")
	out := filepath.FromSlash("/p/build/debug")

	inside := domain.ObjectPath(src, out, filepath.FromSlash("/p/src/gen/a.c"), gcc)
	outside := domain.ObjectPath(src, out, filepath.FromSlash("/p/gen/a.c"), gcc)

	assert.NotEqual(t, inside, outside)
	rel, err := filepath.Rel(out, outside)
	assert.NoError(t, err)
	assert.NotContains(t, rel, "..")
}

func TestPCHPaths(t *testing.T) {
	out := filepath.FromSlash("/p/build/debug")
	hdr := filepath.FromSlash("/p/include/pch.h")

	assert.Equal(t, filepath.FromSlash("/p/build/debug/pch/pch.h.gch"), domain.PCHArtifactPath(out, hdr, gcc))
	assert.Equal(t, filepath.FromSlash("/p/build/debug/pch/pch.h.pch"), domain.PCHArtifactPath(out, hdr, clang))
	assert.Equal(t, filepath.FromSlash("/p/build/debug/pch/pch.obj"), domain.PCHObjectPath(out, hdr, msvc))
	assert.Equal(t, filepath.FromSlash("/p/build/debug/pch/pch.h"), domain.PCHIncludePath(out, hdr))
}

func TestSettingsSnapshotPath(t *testing.T) {
	assert.Equal(t,
		filepath.FromSlash("build/release/.kiln/settings.json"),
		domain.SettingsSnapshotPath(filepath.FromSlash("build/release")))
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.ProjectKind
		tc       domain.Toolchain
		expected string
	}{
		{"app linux", domain.KindApplication, gcc, "demo"},
		{"app windows", domain.KindApplication, msvc, "demo.exe"},
		{"app windows gnu", domain.KindApplication, domain.Toolchain{ID: domain.ToolchainGCC, TargetOS: "windows"}, "demo.exe"},
		{"static gnu", domain.KindStaticLibrary, gcc, "libdemo.a"},
		{"static msvc", domain.KindStaticLibrary, msvc, "demo.lib"},
		{"shared linux", domain.KindSharedLibrary, gcc, "libdemo.so"},
		{"shared darwin", domain.KindSharedLibrary, clang, "libdemo.dylib"},
		{"shared windows", domain.KindSharedLibrary, msvc, "demo.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.OutputFileName("demo", tt.kind, tt.tc))
		})
	}
}
