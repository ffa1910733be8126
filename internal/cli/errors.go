package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by Run.
const (
	exitOK      = 0
	exitFailure = 1 // runtime error: unreadable input, bad configuration
	exitUsage   = 2 // malformed command line
)

// ErrUsage matches (via errors.Is) every error caused by a malformed command line.
var ErrUsage = errors.New("usage error")

// ExitCoder is an error with an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError indicates a user-facing mistake in how faildiff was invoked (exit code 2).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string        { return e.Message }
func (e UsageError) ExitCode() int        { return exitUsage }
func (e UsageError) Is(target error) bool { return target == ErrUsage }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// exitCodeFor maps err to the exit code Run returns.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if errors.Is(err, ErrUsage) {
		return exitUsage
	}
	return exitFailure
}
