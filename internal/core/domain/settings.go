package domain

// WarningLevel selects how many diagnostics the compiler enables.
type WarningLevel int

const (
	// WarningsNone disables warnings.
	WarningsNone WarningLevel = iota
	// WarningsBasic enables the common warning set.
	WarningsBasic
	// WarningsHigh enables the extended warning set.
	WarningsHigh
)

// String returns the manifest spelling of the warning level.
func (w WarningLevel) String() string {
	switch w {
	case WarningsNone:
		return "none"
	case WarningsHigh:
		return "high"
	default:
		return "basic"
	}
}

// RuntimeLinkage selects how the C/C++ runtime is linked.
type RuntimeLinkage int

const (
	// RuntimeDynamicRelease links the shared release runtime.
	RuntimeDynamicRelease RuntimeLinkage = iota
	// RuntimeDynamicDebug links the shared debug runtime.
	RuntimeDynamicDebug
	// RuntimeStaticRelease links the static release runtime.
	RuntimeStaticRelease
	// RuntimeStaticDebug links the static debug runtime.
	RuntimeStaticDebug
)

// IsStatic reports whether the runtime is linked statically.
func (r RuntimeLinkage) IsStatic() bool {
	return r == RuntimeStaticDebug || r == RuntimeStaticRelease
}

// IsDebug reports whether the debug runtime variant is selected.
func (r RuntimeLinkage) IsDebug() bool {
	return r == RuntimeDynamicDebug || r == RuntimeStaticDebug
}

// String returns the manifest spelling of the runtime linkage.
func (r RuntimeLinkage) String() string {
	switch r {
	case RuntimeDynamicDebug:
		return "dynamic-debug"
	case RuntimeStaticDebug:
		return "static-debug"
	case RuntimeStaticRelease:
		return "static-release"
	default:
		return "dynamic-release"
	}
}

// Settings is the resolved per-profile compiler and linker configuration.
// OptSize, OptSpeed and LTO compose with OptLevel.
type Settings struct {
	OptLevel         int
	OptSize          bool
	OptSpeed         bool
	LTO              bool
	ISOStrict        bool
	Warnings         WarningLevel
	WarningsAsErrors bool
	DebugInfo        bool
	Runtime          RuntimeLinkage
	Threads          bool
	ASLR             bool
	// NoRTTI and NoExceptions only apply to C++.
	NoRTTI       bool
	NoExceptions bool
}
