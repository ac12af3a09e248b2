package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
)

// CleanOptions configures Clean.
type CleanOptions struct {
	BuildOptions
	// All removes the outputs of every profile instead of the selected one.
	All bool
}

// Clean removes the output directory of the selected profile, or of all profiles.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	desc, err := a.load(opts.BuildOptions)
	if err != nil {
		return err
	}

	root := projectRoot(desc)
	target := desc.OutputDir
	if opts.All {
		target = filepath.Join(root, domain.BuildDirName)
	}

	name, err := filepath.Rel(root, target)
	if err != nil {
		name = target
	}

	a.logger.Info(fmt.Sprintf("removing %s...", name))
	if err := a.fs.RemoveAll(target); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %s", name))
	return nil
}
