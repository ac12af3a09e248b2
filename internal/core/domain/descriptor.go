package domain

// ProjectKind is the type of artifact the project produces.
type ProjectKind int

const (
	// KindApplication produces an executable.
	KindApplication ProjectKind = iota
	// KindSharedLibrary produces a shared library (and optionally an import library).
	KindSharedLibrary
	// KindStaticLibrary produces an archive.
	KindStaticLibrary
)

// String returns the manifest spelling of the kind.
func (k ProjectKind) String() string {
	switch k {
	case KindSharedLibrary:
		return "shared"
	case KindStaticLibrary:
		return "static"
	default:
		return "app"
	}
}

// IsLibrary reports whether the kind produces a library.
func (k ProjectKind) IsLibrary() bool {
	return k != KindApplication
}

// BuildDescriptor is the fully resolved input of one build invocation.
// It is constructed once by the manifest loader and never mutated by the engine.
type BuildDescriptor struct {
	Name    string
	Profile string

	Kind              ProjectKind
	GenerateImportLib bool

	Toolchain Toolchain
	Language  Language
	Settings  Settings

	// Defines keep their order and duplicates; later entries override earlier ones.
	Defines []string

	SourceDir string
	OutputDir string

	Sources []string
	// Headers only gate the rebuild scope; they are never compiled directly.
	Headers []string

	IncludeDirs  []string
	LibDirs      []string
	LinkArchives []string

	// RelinkTriggers can force a link without any source change.
	RelinkTriggers []string

	PrecompiledHeader string

	OutputFile    string
	ImportLibrary string

	ExtraCompilerArgs []string
	ExtraLinkerArgs   []string

	// SettingsChanged is computed outside the engine by diffing the settings snapshot.
	SettingsChanged bool

	// ShowIncludes asks the compiler to print the include trace.
	ShowIncludes bool
	// SystemIncludeRoots are filtered out of the include trace.
	SystemIncludeRoots []string
}

// UsesPCH reports whether a precompiled header is configured.
func (d *BuildDescriptor) UsesPCH() bool {
	return d.PrecompiledHeader != ""
}

// Units derives the (source, object) pair of every source in declaration order.
func (d *BuildDescriptor) Units() []CompileUnit {
	units := make([]CompileUnit, len(d.Sources))
	for i, src := range d.Sources {
		units[i] = CompileUnit{
			Source: src,
			Object: ObjectPath(d.SourceDir, d.OutputDir, src, d.Toolchain),
		}
	}
	return units
}

// LoadOptions selects how the manifest is resolved into a descriptor.
type LoadOptions struct {
	Profile string
	// Toolchain overrides the manifest's toolchain when non-empty.
	Toolchain string
	TargetOS  string
}
