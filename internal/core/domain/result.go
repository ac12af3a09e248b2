package domain

// BuildResult is what a successful build reports to its caller.
type BuildResult struct {
	Output string
	// Rebuilt is false only when nothing was compiled, linked or archived.
	Rebuilt  bool
	Level    BuildLevelKind
	Compiled int
}
