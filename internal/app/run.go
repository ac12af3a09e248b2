package app

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Run builds the project and runs the produced executable with args, connected to the
// app's standard streams. It returns the program's exit status.
func (a *App) Run(ctx context.Context, opts BuildOptions, args []string) (int, error) {
	desc, err := a.load(opts)
	if err != nil {
		return -1, err
	}
	if desc.Kind != domain.KindApplication {
		return -1, zerr.With(zerr.Wrap(domain.ErrNotExecutable, "cannot run a library"), "kind", desc.Kind.String())
	}

	res, err := a.build(ctx, desc, opts)
	if err != nil {
		return -1, err
	}

	cmd := domain.Command{Program: res.Output, Args: args, Dir: opts.Dir}
	return a.executor.Attach(ctx, cmd, a.stdin, a.stdout, a.stderr)
}
