// Package buildertest provides a scripted toolchain for exercising builds without a compiler.
package buildertest

import (
	"context"
	"io"
	"os"
	"slices"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Executor = (*FakeToolchain)(nil)

// FakeToolchain stands in for a GNU-style compiler driver and archiver. Every command
// writes the file following -o (or the archive named by ar) unless it was told to fail.
type FakeToolchain struct {
	mu       sync.Mutex
	commands []domain.Command
	failOn   map[string]int
	attached []domain.Command
	exitCode int
}

// NewFakeToolchain creates a FakeToolchain on which every command succeeds.
func NewFakeToolchain() *FakeToolchain {
	return &FakeToolchain{failOn: make(map[string]int)}
}

// Fail makes the command producing output exit with code.
func (f *FakeToolchain) Fail(output string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[output] = code
}

// SetExitCode sets the exit status reported by Attach.
func (f *FakeToolchain) SetExitCode(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCode = code
}

// Run records cmd and writes its output file.
func (f *FakeToolchain) Run(_ context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	code, fail := f.failOn[outputOf(cmd)]
	f.mu.Unlock()

	if fail {
		return domain.ProcessResult{ExitCode: code, Stderr: []byte("fatal: simulated failure\n")}, nil
	}
	if out := outputOf(cmd); out != "" {
		if err := os.WriteFile(out, []byte(cmd.String()), domain.FilePerm); err != nil {
			return domain.ProcessResult{}, err
		}
	}
	return domain.ProcessResult{}, nil
}

// Attach records cmd, writes its argv to stdout and returns the configured exit status.
func (f *FakeToolchain) Attach(_ context.Context, cmd domain.Command, _ io.Reader, stdout, _ io.Writer) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attached = append(f.attached, cmd)
	if stdout != nil {
		_, _ = io.WriteString(stdout, cmd.String()+"\n")
	}
	return f.exitCode, nil
}

// Commands returns the commands passed to Run so far.
func (f *FakeToolchain) Commands() []domain.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.commands)
}

// Attached returns the commands passed to Attach so far.
func (f *FakeToolchain) Attached() []domain.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.attached)
}

// Compiles counts the recorded compile commands.
func (f *FakeToolchain) Compiles() int {
	n := 0
	for _, c := range f.Commands() {
		if slices.Contains(c.Args, "-c") {
			n++
		}
	}
	return n
}

// Reset forgets the recorded commands.
func (f *FakeToolchain) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = nil
	f.attached = nil
}

func outputOf(cmd domain.Command) string {
	if i := slices.Index(cmd.Args, "-o"); i >= 0 && i+1 < len(cmd.Args) {
		return cmd.Args[i+1]
	}
	if cmd.Program == "ar" && len(cmd.Args) > 1 {
		return cmd.Args[1]
	}
	return ""
}
