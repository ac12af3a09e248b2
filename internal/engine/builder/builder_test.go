package builder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/builder"
	"go.trai.ch/kiln/internal/engine/builder/buildertest"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root string
	desc *domain.BuildDescriptor
	tool *buildertest.FakeToolchain
	b    *builder.Builder
}

func newFixture(t *testing.T, kind domain.ProjectKind) *fixture {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) string {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
		old := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
		return path
	}

	tc := domain.Toolchain{ID: domain.ToolchainGCC, TargetOS: "linux"}
	outDir := filepath.Join(root, "build", "debug")
	desc := &domain.BuildDescriptor{
		Name:        "demo",
		Profile:     "debug",
		Kind:        kind,
		Toolchain:   tc,
		Language:    domain.Language{Kind: domain.LangC, Standard: 11},
		Settings:    domain.Settings{DebugInfo: true, Warnings: domain.WarningsBasic},
		SourceDir:   filepath.Join(root, "src"),
		OutputDir:   outDir,
		IncludeDirs: []string{filepath.Join(root, "include")},
		Sources: []string{
			write("src/main.c", "int main(void) { return helper(); }\n"),
			write("src/util/helper.c", "int helper(void) { return 0; }\n"),
		},
		Headers:    []string{write("include/shared.h", "int helper(void);\n")},
		OutputFile: filepath.Join(outDir, domain.OutputFileName("demo", kind, tc)),
	}

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().OnPlan(gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().OnStart(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().OnComplete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	tool := buildertest.NewFakeToolchain()
	b := builder.New(fs.NewFileSystem(fs.NewWalker()), tool, progrock.New(), reporter, logger)

	return &fixture{root: root, desc: desc, tool: tool, b: b}
}

func (f *fixture) build(t *testing.T) domain.BuildResult {
	t.Helper()
	f.tool.Reset()
	res, err := f.b.Build(context.Background(), f.desc, builder.Options{Parallelism: 2})
	require.NoError(t, err)
	return res
}

func TestBuild_FreshThenUpToDate(t *testing.T) {
	f := newFixture(t, domain.KindApplication)

	first := f.build(t)

	assert.Equal(t, domain.LevelCompileAndLink, first.Level)
	assert.True(t, first.Rebuilt)
	assert.Equal(t, 2, first.Compiled)
	assert.Equal(t, 2, f.tool.Compiles())
	for _, u := range f.desc.Units() {
		assert.FileExists(t, u.Object)
	}
	assert.FileExists(t, f.desc.OutputFile)
	assert.FileExists(t, filepath.Join(f.desc.OutputDir, "util", "helper.o"))

	second := f.build(t)

	assert.Equal(t, domain.LevelUpToDate, second.Level)
	assert.False(t, second.Rebuilt)
	assert.Empty(t, f.tool.Commands())
}

func TestBuild_HeaderTouchRebuildsAll(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.build(t)

	info, err := os.Stat(f.desc.OutputFile)
	require.NoError(t, err)
	later := info.ModTime().Add(time.Second)
	require.NoError(t, os.Chtimes(f.desc.Headers[0], later, later))

	res := f.build(t)

	assert.Equal(t, domain.LevelCompileAndLink, res.Level)
	assert.Equal(t, 2, res.Compiled)
	assert.Equal(t, 2, f.tool.Compiles())
}

func TestBuild_OutputDeletedLinksOnly(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.build(t)
	require.NoError(t, os.Remove(f.desc.OutputFile))

	res := f.build(t)

	assert.Equal(t, domain.LevelLinkOnly, res.Level)
	assert.True(t, res.Rebuilt)
	assert.Zero(t, f.tool.Compiles())
	require.Len(t, f.tool.Commands(), 1)
	link := f.tool.Commands()[0]
	assert.Equal(t, "gcc", link.Program)
	for _, u := range f.desc.Units() {
		assert.Contains(t, link.Args, u.Object)
	}
	assert.FileExists(t, f.desc.OutputFile)
}

func TestBuild_CompileFailureSkipsLink(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.tool.Fail(f.desc.Units()[0].Object, 1)

	_, err := f.b.Build(context.Background(), f.desc, builder.Options{Parallelism: 1})

	require.ErrorIs(t, err, domain.ErrCompileFailed)
	assert.Equal(t, 2, f.tool.Compiles())
	assert.Len(t, f.tool.Commands(), 2)
	assert.NoFileExists(t, f.desc.OutputFile)
}

func TestBuild_LinkFailure(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.tool.Fail(f.desc.OutputFile, 1)

	_, err := f.b.Build(context.Background(), f.desc, builder.Options{})

	require.ErrorIs(t, err, domain.ErrLinkFailed)
}

func TestBuild_StaticLibraryArchives(t *testing.T) {
	f := newFixture(t, domain.KindStaticLibrary)

	res := f.build(t)

	assert.True(t, res.Rebuilt)
	last := f.tool.Commands()[len(f.tool.Commands())-1]
	assert.Equal(t, "ar", last.Program)
	assert.Equal(t, []string{"rcs", f.desc.OutputFile}, last.Args[:2])
	assert.Equal(t, filepath.Join(f.desc.OutputDir, "libdemo.a"), res.Output)

	require.NoError(t, os.Remove(f.desc.OutputFile))
	f.tool.Fail(f.desc.OutputFile, 1)
	_, err := f.b.Build(context.Background(), f.desc, builder.Options{})
	require.ErrorIs(t, err, domain.ErrArchiveFailed)
}

func TestBuild_RemovedSourceDropsObject(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.build(t)

	gone := f.desc.Units()[1].Object
	f.desc.Sources = f.desc.Sources[:1]

	res := f.build(t)

	assert.NoFileExists(t, gone)
	// The output is still newer than everything left, so only the orphan cleanup ran.
	assert.Equal(t, domain.LevelUpToDate, res.Level)
}

func TestBuild_PrecompiledHeaderBeforeCompiles(t *testing.T) {
	f := newFixture(t, domain.KindApplication)
	f.desc.PrecompiledHeader = f.desc.Headers[0]

	f.build(t)

	require.NotEmpty(t, f.tool.Commands())
	first := f.tool.Commands()[0]
	assert.Contains(t, first.Args, "c-header")
	assert.Contains(t, first.Args, filepath.Join(f.desc.OutputDir, "pch", "shared.h"))
	assert.NotContains(t, first.Args, f.desc.PrecompiledHeader)
	assert.FileExists(t, filepath.Join(f.desc.OutputDir, "pch", "shared.h.gch"))
	assert.FileExists(t, filepath.Join(f.desc.OutputDir, "pch", "shared.h"))
	for _, c := range f.tool.Commands()[1:3] {
		assert.Contains(t, c.Args, filepath.Join(f.desc.OutputDir, "pch", "shared.h"))
	}
}

func TestBuild_ToolUnavailable(t *testing.T) {
	f := newFixture(t, domain.KindApplication)

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	exec.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{}, errors.Join(domain.ErrToolUnavailable, errors.New("gcc: not found"))).
		Times(1)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn("1 of 2 translation units were not started")
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().OnPlan(gomock.Any(), gomock.Any())
	reporter.EXPECT().OnStart(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().OnComplete(gomock.Any(), gomock.Any(), -1, gomock.Any(), gomock.Any()).AnyTimes()

	b := builder.New(fs.NewFileSystem(fs.NewWalker()), exec, progrock.New(), reporter, logger)
	_, err := b.Build(context.Background(), f.desc, builder.Options{Parallelism: 1})

	require.ErrorIs(t, err, domain.ErrToolUnavailable)
}
