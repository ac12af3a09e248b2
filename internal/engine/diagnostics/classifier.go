// Package diagnostics classifies captured compiler, linker and archiver output.
//
// Classification only shapes presentation. The exit status of the process is the sole
// success signal and is never consulted here.
package diagnostics

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

const (
	msvcIncludeNote   = "Note: including file:"
	gnuGuardsBlock    = "Multiple include guards may be useful for:"
	gnuCollect2Prefix = "collect2"
)

// Classifier turns raw tool output into diagnostics for one toolchain family.
type Classifier struct {
	tc          domain.Toolchain
	systemRoots []string
}

// New creates a Classifier. Include-trace lines naming a file under one of systemRoots are dropped.
func New(tc domain.Toolchain, systemRoots []string) *Classifier {
	roots := make([]string, 0, len(systemRoots))
	for _, r := range systemRoots {
		if r != "" {
			roots = append(roots, filepath.Clean(r))
		}
	}
	return &Classifier{tc: tc, systemRoots: roots}
}

// Classify returns the diagnostics of one process. stdout is read before stderr.
// source is the file the process compiled; it is only used to drop cl.exe's echo of it.
func (c *Classifier) Classify(stage domain.Stage, source string, stdout, stderr []byte) []domain.Diagnostic {
	var rules lineRules
	switch {
	case c.tc.IsMSVC() && isCompile(stage):
		rules = &msvcCompileRules{c: c, echo: filepath.Base(source)}
	case c.tc.IsMSVC():
		rules = msvcLinkRules{}
	case isCompile(stage):
		rules = &gnuCompileRules{c: c}
	case stage == domain.StageArchive:
		rules = gnuArchiveRules{}
	default:
		rules = gnuLinkRules{}
	}

	var diags []domain.Diagnostic
	for _, stream := range [][]byte{stdout, stderr} {
		scanner := bufio.NewScanner(bytes.NewReader(stream))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if d, keep := rules.classify(line); keep {
				diags = append(diags, d)
			}
		}
	}
	return diags
}

// lineRules classifies one line; keep is false for lines that are filtered out.
type lineRules interface {
	classify(line string) (d domain.Diagnostic, keep bool)
}

func isCompile(stage domain.Stage) bool {
	return stage == domain.StageCompile || stage == domain.StagePCH
}

func (c *Classifier) isSystemPath(path string) bool {
	path = filepath.Clean(strings.TrimSpace(path))
	for _, root := range c.systemRoots {
		if hasPathPrefix(path, root, c.tc.IsMSVC()) {
			return true
		}
	}
	return false
}

func hasPathPrefix(path, root string, foldCase bool) bool {
	if len(path) < len(root) {
		return false
	}
	head := path[:len(root)]
	if foldCase {
		if !strings.EqualFold(head, root) {
			return false
		}
	} else if head != root {
		return false
	}
	if len(path) == len(root) {
		return true
	}
	next := path[len(root)]
	return next == '/' || next == '\\' || strings.HasSuffix(root, "/") || strings.HasSuffix(root, `\`)
}

func diag(sev domain.Severity, text string) (domain.Diagnostic, bool) {
	return domain.Diagnostic{Severity: sev, Text: text}, true
}

func drop() (domain.Diagnostic, bool) {
	return domain.Diagnostic{}, false
}
