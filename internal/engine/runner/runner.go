// Package runner spawns a single tool process, records it as a telemetry vertex and
// reports its classified output.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/diagnostics"
	"go.trai.ch/zerr"
)

// Outcome is one finished process.
type Outcome struct {
	ID      string
	Stage   domain.Stage
	Source  string
	Result  domain.ProcessResult
	Elapsed time.Duration
	// Err is set only when the process could not be spawned.
	Err error
}

// Failed reports whether the process could not be spawned or exited non-zero.
func (o Outcome) Failed() bool {
	return o.Err != nil || !o.Result.Success()
}

// Runner glues the executor, telemetry and reporter together for one process at a time.
type Runner struct {
	executor  ports.Executor
	telemetry ports.Telemetry
	reporter  ports.Reporter
}

// New creates a new Runner.
func New(executor ports.Executor, telemetry ports.Telemetry, reporter ports.Reporter) *Runner {
	return &Runner{executor: executor, telemetry: telemetry, reporter: reporter}
}

// Start announces a process that is about to be spawned.
func (r *Runner) Start(id string, stage domain.Stage, cmd domain.Command) {
	r.reporter.OnStart(id, stage, cmd)
}

// Exec spawns cmd and waits for it. It is safe to call from several goroutines.
func (r *Runner) Exec(ctx context.Context, id string, stage domain.Stage, source string, cmd domain.Command) Outcome {
	ctx, vertex := r.telemetry.Record(ctx, fmt.Sprintf("%s %s", stage, id))
	vertex.Log(domain.LogLevelDebug, cmd.String())

	started := time.Now()
	res, err := r.executor.Run(ctx, cmd)
	elapsed := time.Since(started)

	_, _ = vertex.Stdout().Write(res.Stdout)
	_, _ = vertex.Stderr().Write(res.Stderr)

	switch {
	case err != nil:
		vertex.Complete(err)
	case !res.Success():
		vertex.Complete(zerr.With(zerr.New("process exited with non-zero status"), "exit_code", res.ExitCode))
	default:
		vertex.Complete(nil)
	}

	return Outcome{ID: id, Stage: stage, Source: source, Result: res, Elapsed: elapsed, Err: err}
}

// Skip records id as current without spawning anything.
func (r *Runner) Skip(ctx context.Context, id string, stage domain.Stage) {
	_, vertex := r.telemetry.Record(ctx, fmt.Sprintf("%s %s", stage, id))
	vertex.Cached()
}

// Finish classifies the captured output of o and reports it.
// A process that never spawned is reported with exit code -1 and no diagnostics.
func (r *Runner) Finish(c *diagnostics.Classifier, o Outcome) []domain.Diagnostic {
	if o.Err != nil {
		r.reporter.OnComplete(o.ID, o.Stage, -1, nil, o.Elapsed)
		return nil
	}
	diags := c.Classify(o.Stage, o.Source, o.Result.Stdout, o.Result.Stderr)
	r.reporter.OnComplete(o.ID, o.Stage, o.Result.ExitCode, diags, o.Elapsed)
	return diags
}

// Run starts, executes and finishes one process serially.
func (r *Runner) Run(
	ctx context.Context,
	c *diagnostics.Classifier,
	id string,
	stage domain.Stage,
	source string,
	cmd domain.Command,
) Outcome {
	r.Start(id, stage, cmd)
	o := r.Exec(ctx, id, stage, source, cmd)
	r.Finish(c, o)
	return o
}
