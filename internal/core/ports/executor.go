// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// Executor runs compiler, linker and archiver processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run spawns cmd and waits for it to exit, capturing stdout and stderr separately.
	//
	// A non-zero exit status is not an error: it is reported through ProcessResult.ExitCode.
	// The returned error is non-nil only when the process could not be spawned, and then
	// matches domain.ErrToolUnavailable.
	Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)

	// Attach spawns cmd connected to the given streams and waits for it to exit,
	// returning its exit status. Spawn failures match domain.ErrToolUnavailable.
	Attach(ctx context.Context, cmd domain.Command, stdin io.Reader, stdout, stderr io.Writer) (int, error)
}
