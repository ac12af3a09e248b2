package ports

import (
	"time"

	"go.trai.ch/kiln/internal/core/domain"
)

// Reporter presents build progress and classified tool output.
// It decouples the engine from how output reaches the user.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnPlan is called once the build level is known.
	OnPlan(level domain.BuildLevel, output string)

	// OnStart is called right before a process is spawned.
	// id identifies the unit of work: the object path for compiles, the output otherwise.
	OnStart(id string, stage domain.Stage, cmd domain.Command)

	// OnComplete is called once a process has exited, with its classified output.
	OnComplete(id string, stage domain.Stage, exitCode int, diags []domain.Diagnostic, elapsed time.Duration)
}
