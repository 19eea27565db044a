package errx

import (
	"errors"
	"fmt"
)

// ErrUsage marks errors caused by how the command was invoked (bad flags,
// missing arguments). The CLI exits with status 2 for these.
var ErrUsage = errors.New("usage error")

type usageError struct{ msg string }

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == ErrUsage }

// Usage returns a formatted error that matches ErrUsage without adding
// "usage error" to its message.
func Usage(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}
