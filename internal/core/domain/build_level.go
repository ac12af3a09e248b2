package domain

// BuildLevelKind is the outcome of staleness analysis.
type BuildLevelKind int

const (
	// LevelUpToDate means nothing has to run.
	LevelUpToDate BuildLevelKind = iota
	// LevelLinkOnly means every object is fresh but the output must be produced again.
	LevelLinkOnly
	// LevelCompileAndLink means the listed units must be compiled before linking.
	LevelCompileAndLink
)

// String returns a human readable form of the level.
func (k BuildLevelKind) String() string {
	switch k {
	case LevelLinkOnly:
		return "link-only"
	case LevelCompileAndLink:
		return "compile-and-link"
	default:
		return "up-to-date"
	}
}

// CompileUnit pairs one translation unit with the object derived from it.
type CompileUnit struct {
	Source string
	Object string
}

// BuildLevel is the decision of the staleness analyzer.
// Units is only populated for LevelCompileAndLink and keeps source declaration order.
type BuildLevel struct {
	Kind  BuildLevelKind
	Units []CompileUnit
}

// UpToDate returns the level meaning nothing has to run.
func UpToDate() BuildLevel {
	return BuildLevel{Kind: LevelUpToDate}
}

// LinkOnly returns the level meaning only the link or archive step has to run.
func LinkOnly() BuildLevel {
	return BuildLevel{Kind: LevelLinkOnly}
}

// CompileAndLink returns the level compiling units before linking.
func CompileAndLink(units []CompileUnit) BuildLevel {
	return BuildLevel{Kind: LevelCompileAndLink, Units: units}
}
