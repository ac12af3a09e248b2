// Package linear provides a synchronous, line-oriented presenter for build progress
// and classified tool output.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter by printing one line per event.
// Paths are shown relative to root when possible.
type Reporter struct {
	w       io.Writer
	out     *termenv.Output
	root    string
	verbose bool

	mu       sync.Mutex
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithVerbose prints every argument vector before it is spawned.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithRoot shortens displayed paths to be relative to root.
func WithRoot(root string) Option {
	return func(r *Reporter) {
		r.root = root
	}
}

// WithColor selects when output is colored.
func WithColor(mode output.ColorMode) Option {
	return func(r *Reporter) {
		r.out = output.NewWithMode(r.w, mode)
	}
}

// NewReporter creates a Reporter writing to w (stderr when nil).
func NewReporter(w io.Writer, opts ...Option) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	r := &Reporter{
		w:    w,
		out:  output.New(w),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start is a no-op: events are written as they arrive.
func (r *Reporter) Start(_ context.Context) error {
	return nil
}

// Stop releases Wait. It is safe to call more than once.
func (r *Reporter) Stop() error {
	r.stopOnce.Do(func() { close(r.done) })
	return nil
}

// Wait blocks until Stop is called or ctx is done.
func (r *Reporter) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// OnPlan prints what the build is about to do.
func (r *Reporter) OnPlan(level domain.BuildLevel, outputFile string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := r.rel(outputFile)
	switch level.Kind {
	case domain.LevelUpToDate:
		r.println(r.out.String(fmt.Sprintf("%s %s is up to date", style.Check, name)).Faint().String())
	case domain.LevelLinkOnly:
		r.println(fmt.Sprintf("%s relinking %s", style.Arrow, name))
	case domain.LevelCompileAndLink:
		r.println(fmt.Sprintf("%s compiling %s", style.Arrow, plural(len(level.Units), "translation unit")))
	}
}

// OnStart prints the shell-quoted argument vector in verbose mode.
func (r *Reporter) OnStart(_ string, _ domain.Stage, cmd domain.Command) {
	if !r.verbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.println(r.out.String(cmd.String()).Faint().String())
}

// OnComplete prints the classified diagnostics followed by a status line.
func (r *Reporter) OnComplete(id string, stage domain.Stage, exitCode int, diags []domain.Diagnostic, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range diags {
		r.println(r.diagnostic(d))
	}

	name := r.rel(id)
	switch {
	case exitCode < 0:
		r.println(r.colored(fmt.Sprintf("%s %s %s could not be started", style.Cross, stage, name), style.Red))
	case exitCode > 0:
		r.println(r.colored(fmt.Sprintf("%s %s %s failed (exit status %d)", style.Cross, stage, name, exitCode), style.Red))
	default:
		line := fmt.Sprintf("%s %s %s", style.Check, verb(stage), name)
		if n := domain.CountSeverity(diags, domain.SeverityWarning); n > 0 {
			line += fmt.Sprintf(" with %s", plural(n, "warning"))
		}
		r.println(r.colored(line, style.Green) + r.out.String(fmt.Sprintf(" (%s)", elapsed.Round(time.Millisecond))).Faint().String())
	}
}

func (r *Reporter) diagnostic(d domain.Diagnostic) string {
	switch d.Severity {
	case domain.SeverityError:
		return r.colored(d.Text, style.Red)
	case domain.SeverityWarning:
		return r.colored(d.Text, style.Amber)
	case domain.SeverityNote:
		return r.colored(d.Text, style.Sky)
	case domain.SeverityTrace:
		return r.out.String(d.Text).Faint().String()
	default:
		return d.Text
	}
}

func (r *Reporter) colored(s string, c lipgloss.Color) string {
	return r.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

// println must be called with mu held.
func (r *Reporter) println(s string) {
	_, _ = io.WriteString(r.w, s+"\n")
}

func (r *Reporter) rel(path string) string {
	if r.root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func verb(stage domain.Stage) string {
	switch stage {
	case domain.StagePCH:
		return "precompiled"
	case domain.StageLink:
		return "linked"
	case domain.StageArchive:
		return "archived"
	default:
		return "compiled"
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
