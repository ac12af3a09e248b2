// Package builder drives one build: staleness analysis, the precompiled header barrier,
// parallel compiles and the final link or archive step.
package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/diagnostics"
	"go.trai.ch/kiln/internal/engine/pch"
	"go.trai.ch/kiln/internal/engine/runner"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.trai.ch/kiln/internal/engine/staleness"
	"go.trai.ch/kiln/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// Options tunes a single build.
type Options struct {
	// Parallelism bounds the number of concurrent compiles. Values below one mean one.
	Parallelism int
}

// Builder orchestrates the engine components for one descriptor at a time.
type Builder struct {
	fs       ports.FileSystem
	logger   ports.Logger
	reporter ports.Reporter
	runner   *runner.Runner
	analyzer *staleness.Analyzer
	pch      *pch.Manager
}

// New creates a Builder that spawns processes through executor, records them on telemetry
// and presents their output through reporter.
func New(
	fs ports.FileSystem,
	executor ports.Executor,
	telemetry ports.Telemetry,
	reporter ports.Reporter,
	logger ports.Logger,
) *Builder {
	r := runner.New(executor, telemetry, reporter)
	return &Builder{
		fs:       fs,
		logger:   logger,
		reporter: reporter,
		runner:   r,
		analyzer: staleness.New(fs, logger),
		pch:      pch.New(fs, r),
	}
}

// Build brings desc.OutputFile up to date.
//
// Compiles only start once the precompiled header is current. The link or archive step
// only runs once every compile succeeded, and always receives the objects of every source.
func (b *Builder) Build(ctx context.Context, desc *domain.BuildDescriptor, opts Options) (domain.BuildResult, error) {
	level, err := b.analyzer.Analyze(ctx, desc)
	if err != nil {
		return domain.BuildResult{}, err
	}
	b.reporter.OnPlan(level, desc.OutputFile)

	result := domain.BuildResult{Output: desc.OutputFile, Level: level.Kind}
	if level.Kind == domain.LevelUpToDate {
		b.runner.Skip(ctx, desc.OutputFile, finalStage(desc))
		return result, nil
	}

	tr := toolchain.New(desc.Toolchain)
	if _, warning := tr.StandardFlag(desc.Language); warning != "" {
		b.logger.Warn(warning)
	}
	classifier := diagnostics.New(desc.Toolchain, desc.SystemIncludeRoots)

	state, err := b.pch.Decide(desc)
	if err != nil {
		return domain.BuildResult{}, err
	}

	pchObjects := tr.PCHObjects(desc, state)
	if level.Kind == domain.LevelCompileAndLink || len(pchObjects) > 0 {
		if state, err = b.pch.Ensure(ctx, desc, state); err != nil {
			return domain.BuildResult{}, err
		}
	}

	if level.Kind == domain.LevelCompileAndLink {
		compiled, err := b.compile(ctx, desc, tr, classifier, state, level.Units, opts)
		if err != nil {
			return domain.BuildResult{}, err
		}
		result.Compiled = compiled
	}

	if err := b.link(ctx, desc, tr, classifier, state); err != nil {
		return domain.BuildResult{}, err
	}

	result.Rebuilt = true
	return result, nil
}

func (b *Builder) compile(
	ctx context.Context,
	desc *domain.BuildDescriptor,
	tr toolchain.Translator,
	classifier *diagnostics.Classifier,
	state domain.PCHState,
	units []domain.CompileUnit,
	opts Options,
) (int, error) {
	if err := b.mkdirs(units); err != nil {
		return 0, err
	}

	jobs := make([]scheduler.Job, len(units))
	for i, u := range units {
		jobs[i] = scheduler.Job{Unit: u, Command: toolchain.CompileCommand(tr, desc, u, state)}
	}

	summary, err := scheduler.NewScheduler(b.runner, classifier, opts.Parallelism).Run(ctx, jobs)
	if summary.Skipped > 0 {
		b.logger.Warn(fmt.Sprintf("%d of %d translation units were not started", summary.Skipped, len(jobs)))
	}
	return summary.Completed, err
}

// mkdirs creates every distinct object directory once.
func (b *Builder) mkdirs(units []domain.CompileUnit) error {
	dirs := make([]string, 0, len(units))
	for _, u := range units {
		dirs = append(dirs, filepath.Dir(u.Object))
	}
	slices.Sort(dirs)
	for _, dir := range slices.Compact(dirs) {
		if err := b.fs.MkdirAll(dir); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) link(
	ctx context.Context,
	desc *domain.BuildDescriptor,
	tr toolchain.Translator,
	classifier *diagnostics.Classifier,
	state domain.PCHState,
) error {
	units := desc.Units()
	objects := make([]string, 0, len(units)+1)
	for _, u := range units {
		objects = append(objects, u.Object)
	}
	objects = append(objects, tr.PCHObjects(desc, state)...)

	if err := b.fs.MkdirAll(filepath.Dir(desc.OutputFile)); err != nil {
		return err
	}

	cmd, stage := toolchain.FinalCommand(tr, desc, objects)
	if stage == domain.StageArchive {
		// ar only ever adds members; start from scratch so removed sources disappear.
		if err := b.fs.Remove(desc.OutputFile); err != nil {
			return err
		}
	}

	out := b.runner.Run(ctx, classifier, desc.OutputFile, stage, "", cmd)
	if out.Err != nil {
		return zerr.With(out.Err, "output", desc.OutputFile)
	}
	if out.Result.Success() {
		return nil
	}

	sentinel := domain.ErrLinkFailed
	if stage == domain.StageArchive {
		sentinel = domain.ErrArchiveFailed
	}
	err := zerr.With(zerr.Wrap(sentinel, stage.String()+" exited with non-zero status"), "output", desc.OutputFile)
	return zerr.With(err, "exit_code", out.Result.ExitCode)
}

func finalStage(desc *domain.BuildDescriptor) domain.Stage {
	if desc.Kind == domain.KindStaticLibrary {
		return domain.StageArchive
	}
	return domain.StageLink
}
