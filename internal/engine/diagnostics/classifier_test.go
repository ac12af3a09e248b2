package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/diagnostics"
)

var (
	gcc  = domain.Toolchain{ID: domain.ToolchainGCC, TargetOS: "linux"}
	msvc = domain.Toolchain{ID: domain.ToolchainMSVC, TargetOS: "windows"}
)

func severities(diags []domain.Diagnostic) []domain.Severity {
	out := make([]domain.Severity, len(diags))
	for i, d := range diags {
		out[i] = d.Severity
	}
	return out
}

func TestClassify_MSVCCompile(t *testing.T) {
	c := diagnostics.New(msvc, []string{`C:\Program Files\Microsoft Visual Studio`})

	stdout := []byte("main.cpp\r\n" +
		"Note: including file: C:\\Program Files\\Microsoft Visual Studio\\VC\\include\\vector\r\n" +
		"Note: including file: C:\\proj\\include\\util.h\r\n" +
		"main.cpp(12): warning C4101: 'x': unreferenced local variable\r\n" +
		"main.cpp(20): error C2065: 'y': undeclared identifier\r\n" +
		"main.cpp(21): fatal error C1003: error count exceeds 100\r\n" +
		"something else\r\n")

	diags := c.Classify(domain.StageCompile, `C:\proj\src\main.cpp`, stdout, nil)

	require.Len(t, diags, 5)
	assert.Equal(t, []domain.Severity{
		domain.SeverityTrace,
		domain.SeverityWarning,
		domain.SeverityError,
		domain.SeverityError,
		domain.SeverityInfo,
	}, severities(diags))
	assert.Equal(t, `Note: including file: C:\proj\include\util.h`, diags[0].Text)
}

func TestClassify_MSVCSystemRootIgnoresCase(t *testing.T) {
	c := diagnostics.New(msvc, []string{`C:\Program Files`})

	diags := c.Classify(domain.StageCompile, "a.c", []byte(`Note: including file: c:\program files\sdk\stdio.h`), nil)

	assert.Empty(t, diags)
}

func TestClassify_MSVCLink(t *testing.T) {
	c := diagnostics.New(msvc, nil)

	stdout := []byte("   Creating library out\\demo.lib and object out\\demo.exp\n" +
		"Generating code\n" +
		"main.obj : error LNK2019: unresolved external symbol foo\n" +
		"LINK : warning LNK4098: defaultlib 'MSVCRT' conflicts\n" +
		"out\\demo.exe : fatal error LNK1120: 1 unresolved externals\n")

	diags := c.Classify(domain.StageLink, "", stdout, nil)

	assert.Equal(t, []domain.Severity{
		domain.SeverityInfo,
		domain.SeverityInfo,
		domain.SeverityError,
		domain.SeverityWarning,
		domain.SeverityError,
	}, severities(diags))
}

func TestClassify_GNUCompile(t *testing.T) {
	c := diagnostics.New(gcc, []string{"/usr/include", "/usr/lib/gcc"})

	stderr := []byte(". /usr/include/stdio.h\n" +
		".. /usr/lib/gcc/x86_64-linux-gnu/13/include/stddef.h\n" +
		". /proj/include/shared.h\n" +
		".. /proj/include/detail.h\n" +
		"src/a.c: In function 'main':\n" +
		"src/a.c:4:9: warning: unused variable 'x' [-Wunused-variable]\n" +
		"src/a.c:5:3: error: 'y' undeclared (first use in this function)\n" +
		"src/a.c:5:3: note: each undeclared identifier is reported only once\n" +
		"cc1: fatal error: b.c: No such file or directory\n" +
		"Multiple include guards may be useful for:\n" +
		"/proj/include/detail.h\n" +
		"/usr/include/x86_64-linux-gnu/bits/types.h\n")

	diags := c.Classify(domain.StageCompile, "src/a.c", nil, stderr)

	assert.Equal(t, []domain.Severity{
		domain.SeverityTrace,
		domain.SeverityTrace,
		domain.SeverityInfo,
		domain.SeverityWarning,
		domain.SeverityError,
		domain.SeverityNote,
		domain.SeverityError,
	}, severities(diags))
	assert.Equal(t, ". /proj/include/shared.h", diags[0].Text)
	for _, d := range diags {
		assert.NotContains(t, d.Text, "Multiple include guards")
		assert.NotEqual(t, "/proj/include/detail.h", d.Text)
	}
}

func TestClassify_GNUGuardBlockEndsAtDiagnostic(t *testing.T) {
	c := diagnostics.New(gcc, nil)

	stderr := []byte("Multiple include guards may be useful for:\n" +
		"/proj/include/a.h\n" +
		"src/b.c:1:1: warning: empty translation unit\n" +
		"plain trailing line\n")

	diags := c.Classify(domain.StageCompile, "src/b.c", nil, stderr)

	require.Len(t, diags, 2)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "plain trailing line", diags[1].Text)
}

func TestClassify_GNULink(t *testing.T) {
	c := diagnostics.New(gcc, nil)

	stderr := []byte("/usr/bin/ld: out/main.o: in function `main':\n" +
		"main.c:(.text+0x5): undefined reference to `missing'\n" +
		"C:\\mingw\\bin\\ld.exe: warning: cannot find entry symbol\n" +
		"collect2: error: ld returned 1 exit status\n")

	diags := c.Classify(domain.StageLink, "", nil, stderr)

	require.Len(t, diags, 3)
	assert.Equal(t, "out/main.o: in function `main':", diags[0].Text)
	assert.Equal(t, domain.SeverityNote, diags[0].Severity)
	assert.Equal(t, domain.SeverityError, diags[1].Severity)
	assert.Equal(t, "warning: cannot find entry symbol", diags[2].Text)
	assert.Equal(t, domain.SeverityWarning, diags[2].Severity)
}

func TestClassify_GNUArchive(t *testing.T) {
	c := diagnostics.New(gcc, nil)

	diags := c.Classify(domain.StageArchive, "", nil, []byte("ar: out/x.o: No such file or directory\n"))

	require.Len(t, diags, 1)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
}

func TestClassify_EmptyOutput(t *testing.T) {
	c := diagnostics.New(gcc, nil)

	assert.Empty(t, c.Classify(domain.StageCompile, "a.c", nil, nil))
	assert.Empty(t, c.Classify(domain.StageLink, "", []byte("\n\n"), []byte("  \n")))
}
