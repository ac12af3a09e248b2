package domain

import "go.trai.ch/zerr"

// Build failures. These are matched with errors.Is by callers deciding exit status,
// so producers wrap them as a cause rather than re-creating them with zerr.With.
var (
	// ErrToolUnavailable is returned when a compiler, linker or archiver cannot be spawned.
	ErrToolUnavailable = zerr.New("tool unavailable")

	// ErrCompileFailed is returned when one or more compile jobs exited with a non-zero status.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the linker exited with a non-zero status.
	ErrLinkFailed = zerr.New("link failed")

	// ErrArchiveFailed is returned when the archiver exited with a non-zero status.
	ErrArchiveFailed = zerr.New("archive failed")

	// ErrPchFailed is returned when the precompiled header compile exited with a non-zero status.
	ErrPchFailed = zerr.New("precompiled header build failed")
)

var (
	// ErrConfigNotFound is returned when no manifest can be found from the working directory upwards.
	ErrConfigNotFound = zerr.New("could not find " + ManifestFileName)

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrMissingProjectName is returned when the manifest has no name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrInvalidProjectName is returned when a project name is invalid.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, hyphens and underscores")

	// ErrInvalidProjectKind is returned when the manifest kind is not app, shared or static.
	ErrInvalidProjectKind = zerr.New("invalid project kind, expected 'app', 'shared' or 'static'")

	// ErrInvalidLanguage is returned when the manifest language is not c or c++.
	ErrInvalidLanguage = zerr.New("invalid language, expected 'c' or 'c++'")

	// ErrInvalidStandard is returned when the language standard is not recognised.
	ErrInvalidStandard = zerr.New("invalid language standard")

	// ErrUnknownToolchain is returned when the toolchain identifier is not recognised.
	ErrUnknownToolchain = zerr.New("unknown toolchain")

	// ErrUnknownProfile is returned when the requested profile is neither built in nor declared.
	ErrUnknownProfile = zerr.New("unknown profile")

	// ErrInvalidProfile is returned when a profile setting is out of range.
	ErrInvalidProfile = zerr.New("invalid profile setting")

	// ErrInvalidArgs is returned when cflags or ldflags cannot be split into arguments.
	ErrInvalidArgs = zerr.New("invalid argument string")

	// ErrSourceDirNotFound is returned when the declared source directory does not exist.
	ErrSourceDirNotFound = zerr.New("source directory not found")

	// ErrNoSources is returned when the source directory contains no translation units.
	ErrNoSources = zerr.New("no source files found")

	// ErrObjectCollision is returned when two sources would derive the same object path
	// (e.g. foo.cpp and foo.cc in one directory).
	ErrObjectCollision = zerr.New("two sources map to the same object file")
)

var (
	// ErrPathStatFailed is returned when stating a path fails for a reason other than absence.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrZombieRemoveFailed is returned when an orphaned object file cannot be removed.
	ErrZombieRemoveFailed = zerr.New("failed to remove orphaned object")

	// ErrOutputDirCreateFailed is returned when an output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrWalkFailed is returned when walking a directory tree fails.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrStoreCreateFailed is returned when the snapshot directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create settings snapshot directory")

	// ErrStoreReadFailed is returned when the settings snapshot cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read settings snapshot")

	// ErrStoreUnmarshalFailed is returned when the settings snapshot cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal settings snapshot")

	// ErrStoreMarshalFailed is returned when the settings snapshot cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal settings snapshot")

	// ErrStoreWriteFailed is returned when the settings snapshot cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write settings snapshot")

	// ErrNotExecutable is returned by run when the project does not produce an application.
	ErrNotExecutable = zerr.New("project does not produce an executable")

	// ErrCompileDBWriteFailed is returned when compile_commands.json cannot be written.
	ErrCompileDBWriteFailed = zerr.New("failed to write compilation database")

	// ErrJournalCreateFailed is returned when the progress journal cannot be created.
	ErrJournalCreateFailed = zerr.New("failed to create progress journal")

	// ErrTraceExportFailed is returned when the trace file or its exporter cannot be set up.
	ErrTraceExportFailed = zerr.New("failed to set up trace export")
)
