package commands

import "fmt"

// ExitError carries a process exit status that is not a failure worth logging,
// such as the status of a program started by run or a stale tree reported by build --check.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// checkStaleCode is the exit status of build --check when anything had to be rebuilt.
const checkStaleCode = 2
