// Package scheduler runs compile jobs with a fixed number of concurrent processes.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/diagnostics"
	"go.trai.ch/kiln/internal/engine/runner"
	"go.trai.ch/zerr"
)

// Summary tallies how the jobs of one run ended.
type Summary struct {
	Completed int
	// Failed counts jobs that exited non-zero or could not be spawned.
	Failed int
	// Skipped counts jobs never started because the run was stopped.
	Skipped int
}

// Job is one translation unit together with the command compiling it.
type Job struct {
	Unit    domain.CompileUnit
	Command domain.Command
}

// Scheduler fans compile jobs out to at most parallelism concurrent processes.
type Scheduler struct {
	runner      *runner.Runner
	classifier  *diagnostics.Classifier
	parallelism int
}

// NewScheduler creates a new Scheduler. A parallelism below one is treated as one.
func NewScheduler(r *runner.Runner, classifier *diagnostics.Classifier, parallelism int) *Scheduler {
	return &Scheduler{
		runner:      r,
		classifier:  classifier,
		parallelism: max(1, parallelism),
	}
}

// Run executes every job, waits for all of them and tallies how they ended.
//
// A failing job never stops the others: all remaining jobs still run and have their output
// classified, and the aggregate result matches domain.ErrCompileFailed. A job that cannot be
// spawned stops further submissions; jobs already running are drained and the spawn error
// is returned. Cancelling ctx also stops submissions.
func (s *Scheduler) Run(ctx context.Context, jobs []Job) (Summary, error) {
	state := s.newRunState(ctx, jobs)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		state.handleResult(<-state.resultsCh)
	}

	state.summary.Skipped = len(state.ready)
	return state.summary, state.err()
}

type runState struct {
	ctx         context.Context
	s           *Scheduler
	ready       []Job
	total       int
	active      int
	resultsCh   chan runner.Outcome
	stopped     bool
	spawnErr    error
	summary     Summary
	exitFailed  int
	firstFailed string
}

func (s *Scheduler) newRunState(ctx context.Context, jobs []Job) *runState {
	return &runState{
		ctx:       ctx,
		s:         s,
		ready:     jobs,
		total:     len(jobs),
		resultsCh: make(chan runner.Outcome, s.parallelism),
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && (len(state.ready) == 0 || state.stopped || state.ctx.Err() != nil)
}

// schedule fills free slots in submission order.
func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.s.parallelism && !state.stopped && state.ctx.Err() == nil {
		job := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.runner.Start(job.Unit.Object, domain.StageCompile, job.Command)

		go func(j Job) {
			state.resultsCh <- state.s.runner.Exec(state.ctx, j.Unit.Object, domain.StageCompile, j.Unit.Source, j.Command)
		}(job)
	}
}

// handleResult runs on the coordinator only, so reporting is never concurrent.
func (state *runState) handleResult(res runner.Outcome) {
	state.active--
	state.s.runner.Finish(state.s.classifier, res)

	switch {
	case res.Err != nil:
		state.summary.Failed++
		if state.spawnErr == nil {
			state.spawnErr = zerr.With(res.Err, "object", res.ID)
		}
		state.stopped = true
	case !res.Result.Success():
		if state.exitFailed == 0 {
			state.firstFailed = res.ID
		}
		state.exitFailed++
		state.summary.Failed++
	default:
		state.summary.Completed++
	}
}

func (state *runState) err() error {
	var errs error
	if state.spawnErr != nil {
		errs = state.spawnErr
	}
	if state.exitFailed > 0 {
		err := zerr.Wrap(domain.ErrCompileFailed, fmt.Sprintf("%d of %d translation units failed", state.exitFailed, state.total))
		err = zerr.With(err, "failed", state.exitFailed)
		errs = errors.Join(errs, zerr.With(err, "object", state.firstFailed))
	}
	if ctxErr := state.ctx.Err(); ctxErr != nil && len(state.ready) > 0 {
		errs = errors.Join(errs, ctxErr)
	}
	return errs
}
