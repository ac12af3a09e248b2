// Package staleness decides from file timestamps how much of a build has to run.
package staleness

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Analyzer computes the BuildLevel of a descriptor.
type Analyzer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new Analyzer.
func New(fs ports.FileSystem, logger ports.Logger) *Analyzer {
	return &Analyzer{fs: fs, logger: logger}
}

// Analyze removes orphaned objects under the output directory and then decides the build level.
//
// Header changes are tracked coarsely: a header newer than the output marks every source stale.
func (a *Analyzer) Analyze(ctx context.Context, desc *domain.BuildDescriptor) (domain.BuildLevel, error) {
	units := desc.Units()

	if err := a.removeZombies(desc, units); err != nil {
		return domain.BuildLevel{}, err
	}

	snap, err := a.stat(ctx, desc, units)
	if err != nil {
		return domain.BuildLevel{}, err
	}

	output := snap.get(desc.OutputFile)
	if !output.Exists {
		return fromStale(staleAgainstObjects(snap, units)), nil
	}

	for _, h := range desc.Headers {
		if snap.get(h).NewerThan(output) {
			return domain.CompileAndLink(units), nil
		}
	}

	var stale []domain.CompileUnit
	for _, u := range units {
		src, obj := snap.get(u.Source), snap.get(u.Object)
		if !obj.Exists || src.NewerThan(obj) || src.NewerThan(output) {
			stale = append(stale, u)
		}
	}
	if len(stale) > 0 {
		return domain.CompileAndLink(stale), nil
	}

	for _, trigger := range desc.RelinkTriggers {
		if snap.get(trigger).NewerThan(output) {
			return domain.LinkOnly(), nil
		}
	}
	return domain.UpToDate(), nil
}

func staleAgainstObjects(snap records, units []domain.CompileUnit) []domain.CompileUnit {
	var stale []domain.CompileUnit
	for _, u := range units {
		src, obj := snap.get(u.Source), snap.get(u.Object)
		if !obj.Exists || src.NewerThan(obj) {
			stale = append(stale, u)
		}
	}
	return stale
}

// fromStale is used when the output is missing, so it always has to be produced.
func fromStale(stale []domain.CompileUnit) domain.BuildLevel {
	if len(stale) == 0 {
		return domain.LinkOnly()
	}
	return domain.CompileAndLink(stale)
}

// removeZombies deletes object files under the output directory that no current source derives.
func (a *Analyzer) removeZombies(desc *domain.BuildDescriptor, units []domain.CompileUnit) error {
	objects, err := a.fs.WalkFiles(
		desc.OutputDir,
		[]string{desc.Toolchain.ObjectExt()},
		[]string{domain.PCHDir(desc.OutputDir), domain.StateDir(desc.OutputDir)},
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "dir", desc.OutputDir)
	}

	live := make(map[string]struct{}, len(units))
	for _, u := range units {
		live[u.Object] = struct{}{}
	}

	for _, obj := range objects {
		if _, ok := live[obj]; ok {
			continue
		}
		if err := a.fs.Remove(obj); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrZombieRemoveFailed.Error()), "object", obj)
		}
		a.logger.Info(fmt.Sprintf("removed orphaned object %s", obj))
	}
	return nil
}

// records holds one FileRecord per distinct path.
type records map[string]domain.FileRecord

func (r records) get(path string) domain.FileRecord {
	if rec, ok := r[path]; ok {
		return rec
	}
	return domain.Missing(path)
}

// stat observes every path the decision needs, concurrently.
func (a *Analyzer) stat(ctx context.Context, desc *domain.BuildDescriptor, units []domain.CompileUnit) (records, error) {
	paths := make([]string, 0, 2*len(units)+len(desc.Headers)+len(desc.RelinkTriggers)+1)
	seen := make(map[string]struct{}, cap(paths))
	add := func(p string) {
		if _, ok := seen[p]; ok || p == "" {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	add(desc.OutputFile)
	for _, u := range units {
		add(u.Source)
		add(u.Object)
	}
	for _, h := range desc.Headers {
		add(h)
	}
	for _, t := range desc.RelinkTriggers {
		add(t)
	}

	out := make([]domain.FileRecord, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := a.fs.Stat(p)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", p)
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := make(records, len(paths))
	for i, p := range paths {
		recs[p] = out[i]
	}
	return recs, nil
}
