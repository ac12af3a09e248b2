package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName is the name of the project manifest.
	ManifestFileName = "kiln.yaml"

	// BuildDirName is the root of every profile's output directory.
	BuildDirName = "build"

	// PCHDirName is the directory under the output dir holding precompiled headers.
	PCHDirName = "pch"

	// StateDirName is the directory under the output dir holding kiln's own state.
	StateDirName = ".kiln"

	// SettingsSnapshotFile is the name of the recorded settings snapshot.
	SettingsSnapshotFile = "settings.json"

	// CompileDBFileName is the name of the exported compilation database.
	CompileDBFileName = "compile_commands.json"

	// externalDirName holds objects of sources living outside the source dir.
	externalDirName = "_external"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ObjectPath derives the object file of source: the sourceDir prefix is replaced by
// outputDir and the extension by the toolchain's object extension.
func ObjectPath(sourceDir, outputDir, source string, tc Toolchain) string {
	rel, err := filepath.Rel(sourceDir, source)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Join(externalDirName, strings.TrimLeft(filepath.ToSlash(filepath.Clean(source)), "/."))
		rel = strings.ReplaceAll(rel, ":", "_")
	}
	return filepath.Join(outputDir, trimExt(rel)+tc.ObjectExt())
}

// PCHDir returns the directory holding precompiled header artifacts.
func PCHDir(outputDir string) string {
	return filepath.Join(outputDir, PCHDirName)
}

// PCHArtifactPath returns the precompiled header artifact built from header.
func PCHArtifactPath(outputDir, header string, tc Toolchain) string {
	return filepath.Join(PCHDir(outputDir), filepath.Base(header)+tc.PCHExt())
}

// PCHObjectPath returns the object emitted by MSVC alongside the precompiled header.
func PCHObjectPath(outputDir, header string, tc Toolchain) string {
	return filepath.Join(PCHDir(outputDir), trimExt(filepath.Base(header))+tc.ObjectExt())
}

// PCHIncludePath returns the path GNU drivers are told to -include; the artifact sits next to it.
func PCHIncludePath(outputDir, header string) string {
	return filepath.Join(PCHDir(outputDir), filepath.Base(header))
}

// StateDir returns the directory holding kiln's own state for one output dir.
func StateDir(outputDir string) string {
	return filepath.Join(outputDir, StateDirName)
}

// SettingsSnapshotPath returns where the settings snapshot of a build is recorded.
func SettingsSnapshotPath(outputDir string) string {
	return filepath.Join(StateDir(outputDir), SettingsSnapshotFile)
}

// ProfileOutputDir returns the output directory of a profile under the project root.
func ProfileOutputDir(root, profile string) string {
	return filepath.Join(root, BuildDirName, profile)
}

// OutputFileName returns the artifact file name for a project name, kind and target OS.
func OutputFileName(name string, kind ProjectKind, tc Toolchain) string {
	windows := !tc.IsPOSIX()
	switch kind {
	case KindStaticLibrary:
		if tc.IsMSVC() {
			return name + ".lib"
		}
		return "lib" + name + ".a"
	case KindSharedLibrary:
		switch {
		case windows:
			return name + ".dll"
		case tc.IsApple():
			return "lib" + name + ".dylib"
		default:
			return "lib" + name + ".so"
		}
	default:
		if windows {
			return name + ".exe"
		}
		return name
	}
}

// ImportLibraryName returns the import library file name emitted next to a DLL.
func ImportLibraryName(name string, tc Toolchain) string {
	if tc.IsMSVC() {
		return name + ".lib"
	}
	return "lib" + name + ".dll.a"
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
