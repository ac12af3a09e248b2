// Package app implements the application layer for kiln.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/kiln/internal/adapters/linear"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/builder"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.DescriptorLoader
	fs        ports.FileSystem
	executor  ports.Executor
	logger    ports.Logger
	store     ports.SettingsStore
	hasher    ports.Hasher
	telemetry ports.Telemetry

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	targetOS string
	now      func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.DescriptorLoader,
	fsys ports.FileSystem,
	executor ports.Executor,
	log ports.Logger,
	store ports.SettingsStore,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
) *App {
	return &App{
		loader:    loader,
		fs:        fsys,
		executor:  executor,
		logger:    log,
		store:     store,
		hasher:    hasher,
		telemetry: telemetry,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		targetOS:  runtime.GOOS,
		now:       time.Now,
	}
}

// WithIO replaces the standard streams used for progress output and by run.
func (a *App) WithIO(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.stdin, a.stdout, a.stderr = stdin, stdout, stderr
	return a
}

// WithTargetOS overrides the operating system being built for.
func (a *App) WithTargetOS(goos string) *App {
	a.targetOS = goos
	return a
}

// BuildOptions configures a build and the commands derived from it.
type BuildOptions struct {
	// Dir is where the manifest search starts. Empty means the working directory.
	Dir       string
	Profile   string
	Toolchain string
	// Jobs bounds concurrent compiles. Zero or less uses every CPU.
	Jobs         int
	Verbose      bool
	ShowIncludes bool
	Color        output.ColorMode
}

// Build loads the manifest and brings the output of the selected profile up to date.
func (a *App) Build(ctx context.Context, opts BuildOptions) (domain.BuildResult, error) {
	desc, err := a.load(opts)
	if err != nil {
		return domain.BuildResult{}, err
	}
	return a.build(ctx, desc, opts)
}

func (a *App) load(opts BuildOptions) (*domain.BuildDescriptor, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	desc, err := a.loader.Load(dir, domain.LoadOptions{
		Profile:   opts.Profile,
		Toolchain: opts.Toolchain,
		TargetOS:  a.targetOS,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	desc.ShowIncludes = opts.ShowIncludes
	return desc, nil
}

func (a *App) build(ctx context.Context, desc *domain.BuildDescriptor, opts BuildOptions) (domain.BuildResult, error) {
	fingerprint, err := a.checkSettings(desc)
	if err != nil {
		return domain.BuildResult{}, err
	}

	reporter := linear.NewReporter(a.stderr,
		linear.WithRoot(projectRoot(desc)),
		linear.WithVerbose(opts.Verbose),
		linear.WithColor(opts.Color),
	)
	b := builder.New(a.fs, a.executor, a.telemetry, reporter, a.logger)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var result domain.BuildResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := reporter.Start(gctx); err != nil {
			return err
		}
		return reporter.Wait(gctx)
	})

	g.Go(func() error {
		defer func() { _ = reporter.Stop() }()

		var err error
		result, err = b.Build(gctx, desc, builder.Options{Parallelism: jobs})
		return err
	})

	if err := g.Wait(); err != nil {
		return result, err
	}

	snap := domain.SettingsSnapshot{
		Project:     desc.Name,
		Profile:     desc.Profile,
		Toolchain:   desc.Toolchain.String(),
		Fingerprint: fingerprint,
		Timestamp:   a.now().UTC(),
	}
	if err := a.store.Put(desc.OutputDir, snap); err != nil {
		a.logger.Warn(fmt.Sprintf("could not record build settings: %v", err))
		return result, nil
	}
	a.logger.Debug(fmt.Sprintf("recorded build settings %s for %s/%s", fingerprint, desc.Name, desc.Profile))
	return result, nil
}

// checkSettings compares the settings fingerprint with the last successful build.
// A differing fingerprint discards the profile's outputs so every object is rebuilt
// with the new settings; a missing snapshot only regenerates the precompiled header.
func (a *App) checkSettings(desc *domain.BuildDescriptor) (string, error) {
	fingerprint := a.hasher.Fingerprint(desc)

	prev, err := a.store.Get(desc.OutputDir)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("ignoring unreadable settings snapshot: %v", err))
		prev = nil
	}

	switch {
	case prev == nil:
		desc.SettingsChanged = true
	case prev.Fingerprint != fingerprint:
		desc.SettingsChanged = true
		a.logger.Info("build settings changed, rebuilding everything")
		if err := a.fs.RemoveAll(desc.OutputDir); err != nil {
			return "", err
		}
	}
	return fingerprint, nil
}

// projectRoot is the manifest directory: outputs live in <root>/build/<profile>.
func projectRoot(desc *domain.BuildDescriptor) string {
	return filepath.Dir(filepath.Dir(desc.OutputDir))
}
