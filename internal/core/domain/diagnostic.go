package domain

// Severity classifies one line of tool output.
type Severity int

const (
	// SeverityInfo is plain pass-through output.
	SeverityInfo Severity = iota
	// SeverityTrace is include-trace output.
	SeverityTrace
	// SeverityNote is supplementary compiler output attached to another diagnostic.
	SeverityNote
	// SeverityWarning is a compiler or linker warning.
	SeverityWarning
	// SeverityError is a compiler or linker error.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "trace"
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Stage is the build step that produced some output.
type Stage int

const (
	// StageCompile is a translation unit compile.
	StageCompile Stage = iota
	// StagePCH is the precompiled header compile.
	StagePCH
	// StageLink is the final link.
	StageLink
	// StageArchive is the static library archive step.
	StageArchive
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StagePCH:
		return "pch"
	case StageLink:
		return "link"
	case StageArchive:
		return "archive"
	default:
		return "compile"
	}
}

// Diagnostic is one classified line of tool output. Classification is presentational only;
// the exit status of the process decides success.
type Diagnostic struct {
	Severity Severity
	Text     string
}

// CountSeverity returns how many diagnostics have the given severity.
func CountSeverity(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
