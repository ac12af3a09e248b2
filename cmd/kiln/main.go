// Package main is the entry point for the kiln build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	_ "go.trai.ch/kiln/internal/wiring"
)

// toolchainEnv selects the default toolchain when --toolchain is not given.
const toolchainEnv = "KILN_TOOLCHAIN"

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {
			if c.Telemetry != nil {
				_ = c.Telemetry.Close()
			}
		}, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cliOpts := []commands.Option{commands.WithDefaultToolchain(os.Getenv(toolchainEnv))}
	if settings, ok := components.Logger.(commands.LogSettings); ok {
		cliOpts = append(cliOpts, commands.WithLogSettings(settings))
	}
	if settings, ok := components.Telemetry.(commands.TelemetrySettings); ok {
		cliOpts = append(cliOpts, commands.WithTelemetrySettings(settings))
	}

	cli := commands.New(components.App, cliOpts...)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		return exitCode(err, components)
	}
	return 0
}

// exitCode maps a command error to the process status, logging it unless the
// reporter already showed the failure.
func exitCode(err error, components *app.Components) int {
	var exit *commands.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if isToolFailure(err) {
		return 1
	}
	components.Logger.Error(err)
	return 1
}

func isToolFailure(err error) bool {
	return errors.Is(err, domain.ErrCompileFailed) ||
		errors.Is(err, domain.ErrLinkFailed) ||
		errors.Is(err, domain.ErrArchiveFailed) ||
		errors.Is(err, domain.ErrPchFailed)
}
