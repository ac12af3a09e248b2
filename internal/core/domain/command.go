package domain

import (
	"slices"

	"github.com/kballard/go-shellquote"
)

// Command is one literal process invocation. Args never include the program itself.
type Command struct {
	Program string
	Args    []string
	Dir     string
}

// With returns a copy of the command with args appended.
func (c Command) With(args ...string) Command {
	c.Args = append(slices.Clip(c.Args), args...)
	return c
}

// Argv returns the full argument vector, program first.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String returns the argument vector quoted for a POSIX shell.
func (c Command) String() string {
	return shellquote.Join(c.Argv()...)
}

// ProcessResult is the captured outcome of a finished process.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status zero.
func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}
