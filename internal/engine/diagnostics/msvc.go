package diagnostics

import (
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

type msvcCompileRules struct {
	c    *Classifier
	echo string
}

func (r *msvcCompileRules) classify(line string) (domain.Diagnostic, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == r.echo {
		return drop()
	}

	if rest, ok := strings.CutPrefix(trimmed, msvcIncludeNote); ok {
		if r.c.isSystemPath(rest) {
			return drop()
		}
		return diag(domain.SeverityTrace, line)
	}

	switch {
	case strings.Contains(line, ": fatal error C"),
		strings.Contains(line, ": error C"),
		strings.Contains(line, "Command line error D"):
		return diag(domain.SeverityError, line)
	case strings.Contains(line, ": warning C"),
		strings.Contains(line, "Command line warning D"):
		return diag(domain.SeverityWarning, line)
	case strings.Contains(line, ": note:"):
		return diag(domain.SeverityNote, line)
	default:
		return diag(domain.SeverityInfo, line)
	}
}

type msvcLinkRules struct{}

func (msvcLinkRules) classify(line string) (domain.Diagnostic, bool) {
	switch {
	case strings.Contains(line, "error LNK"):
		return diag(domain.SeverityError, line)
	case strings.Contains(line, "warning LNK"):
		return diag(domain.SeverityWarning, line)
	default:
		// "Creating library ..." and "Generating code" progress lines land here.
		return diag(domain.SeverityInfo, line)
	}
}
