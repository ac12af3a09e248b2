package diagnostics

import (
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

type gnuCompileRules struct {
	c *Classifier
	// inGuardsBlock is set while skipping the file list after gnuGuardsBlock.
	inGuardsBlock bool
}

func (r *gnuCompileRules) classify(line string) (domain.Diagnostic, bool) {
	if strings.HasPrefix(line, gnuGuardsBlock) {
		r.inGuardsBlock = true
		return drop()
	}

	if path, ok := includeTrace(line); ok {
		if r.c.isSystemPath(path) {
			return drop()
		}
		return diag(domain.SeverityTrace, line)
	}

	sev := gnuCompileSeverity(line)
	if r.inGuardsBlock {
		if sev == domain.SeverityInfo {
			return drop()
		}
		r.inGuardsBlock = false
	}
	return diag(sev, line)
}

func gnuCompileSeverity(line string) domain.Severity {
	switch {
	case strings.Contains(line, ": fatal error:"), strings.Contains(line, ": error:"):
		return domain.SeverityError
	case strings.Contains(line, " warning: "):
		return domain.SeverityWarning
	case strings.Contains(line, ": note:"),
		strings.HasPrefix(line, "In file included from"),
		strings.HasPrefix(line, "                 from"):
		return domain.SeverityNote
	default:
		return domain.SeverityInfo
	}
}

// includeTrace recognises -H output: one dot per nesting level, a space, then the path.
func includeTrace(line string) (string, bool) {
	rest := strings.TrimLeft(line, ".")
	if len(rest) == len(line) || !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

type gnuLinkRules struct{}

func (gnuLinkRules) classify(line string) (domain.Diagnostic, bool) {
	if strings.HasPrefix(line, gnuCollect2Prefix) {
		return drop()
	}

	line = stripLinkerPrefix(line)
	switch {
	case strings.HasPrefix(line, "warning:"), strings.Contains(line, ": warning:"):
		return diag(domain.SeverityWarning, line)
	case strings.Contains(line, "undefined reference"),
		strings.Contains(line, "multiple definition"),
		strings.Contains(line, "cannot find"),
		strings.Contains(line, "error:"):
		return diag(domain.SeverityError, line)
	case strings.Contains(line, "in function"):
		return diag(domain.SeverityNote, line)
	default:
		return diag(domain.SeverityInfo, line)
	}
}

// linkerPrefixes are the program names ld variants put in front of every line.
var linkerPrefixes = []string{"ld.exe: ", "ld.lld: ", "ld.gold: ", "ld.bfd: ", "ld: "}

// stripLinkerPrefix removes a leading "<path>/ld: " so lines read the same on every host.
func stripLinkerPrefix(line string) string {
	for _, p := range linkerPrefixes {
		idx := strings.Index(line, p)
		if idx < 0 {
			continue
		}
		head := line[:idx]
		if head == "" || (!strings.ContainsAny(head, " \t") && (strings.HasSuffix(head, "/") || strings.HasSuffix(head, `\`))) {
			return line[idx+len(p):]
		}
	}
	return line
}

type gnuArchiveRules struct{}

func (gnuArchiveRules) classify(line string) (domain.Diagnostic, bool) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "no such file"):
		return diag(domain.SeverityError, line)
	case strings.Contains(lower, "warning"):
		return diag(domain.SeverityWarning, line)
	default:
		return diag(domain.SeverityInfo, line)
	}
}
