package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestParseToolchainID(t *testing.T) {
	tests := map[string]domain.ToolchainID{
		"gcc":      domain.ToolchainGCC,
		"Clang":    domain.ToolchainClang,
		"zig":      domain.ToolchainZig,
		"zig-cc":   domain.ToolchainZig,
		"msvc":     domain.ToolchainMSVC,
		"cl.exe":   domain.ToolchainMSVC,
		"clang-cl": domain.ToolchainClangCL,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := domain.ParseToolchainID(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := domain.ParseToolchainID("tcc")
	require.ErrorIs(t, err, domain.ErrUnknownToolchain)
}

func TestToolchain_Predicates(t *testing.T) {
	clangCL := domain.Toolchain{ID: domain.ToolchainClangCL, TargetOS: "windows"}
	assert.True(t, clangCL.IsMSVC())
	assert.True(t, clangCL.IsClang())
	assert.False(t, clangCL.IsPOSIX())
	assert.Equal(t, domain.FamilyMSVC, clangCL.Family())
	assert.Equal(t, ".obj", clangCL.ObjectExt())

	zig := domain.Toolchain{ID: domain.ToolchainZig, TargetOS: "linux"}
	assert.False(t, zig.IsMSVC())
	assert.True(t, zig.IsClang())
	assert.True(t, zig.IsPOSIX())
	assert.True(t, zig.IsLinux())
	assert.Equal(t, domain.FamilyGNU, zig.Family())
	assert.Equal(t, ".o", zig.ObjectExt())
	assert.Equal(t, ".pch", zig.PCHExt())

	g := domain.Toolchain{ID: domain.ToolchainGCC, TargetOS: "darwin"}
	assert.False(t, g.IsClang())
	assert.True(t, g.IsApple())
	assert.Equal(t, ".gch", g.PCHExt())
}

func TestBuildDescriptor_Units(t *testing.T) {
	desc := &domain.BuildDescriptor{
		Toolchain: gcc,
		SourceDir: "src",
		OutputDir: "out",
		Sources:   []string{"src/b.c", "src/a.c"},
	}

	units := desc.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "src/b.c", units[0].Source, "declaration order is kept")
	assert.Equal(t, "out/b.o", units[0].Object)
	assert.Equal(t, "out/a.o", units[1].Object)
}
