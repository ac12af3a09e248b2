// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
// Programs are spawned directly, never through a shell, so arguments reach them verbatim.
type Executor struct {
	env []string
}

// NewExecutor creates a new Executor inheriting the current environment.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithEnv appends KEY=VALUE entries to the environment of every spawned process.
func (e *Executor) WithEnv(env ...string) *Executor {
	e.env = append(e.env, env...)
	return e
}

// Run spawns cmd, waits for it and returns its exit status with stdout and stderr
// captured separately.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	var stdout, stderr bytes.Buffer
	code, err := e.run(ctx, cmd, nil, &stdout, &stderr)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.ProcessResult{ExitCode: code, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

// Attach spawns cmd connected to the given streams and returns its exit status.
func (e *Executor) Attach(ctx context.Context, cmd domain.Command, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	return e.run(ctx, cmd, stdin, stdout, stderr)
}

func (e *Executor) run(ctx context.Context, cmd domain.Command, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...) //nolint:gosec // argv built by the translator or the user
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(e.env) > 0 {
		c.Env = append(c.Environ(), e.env...)
	}
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		return -1, zerr.With(
			errors.Join(domain.ErrToolUnavailable, err),
			"program", cmd.Program,
		)
	}

	if err := c.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return -1, zerr.With(zerr.Wrap(err, "failed to wait for process"), "program", cmd.Program)
		}
		// A process killed by a signal reports -1.
		return exitErr.ExitCode(), nil
	}
	return 0, nil
}
