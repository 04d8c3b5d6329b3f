package manager

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed external command invocation.
type ErrorKind int

const (
	// ExecutionFailed covers non-zero exits and spawn errors (binary
	// missing, I/O failure).
	ExecutionFailed ErrorKind = iota
	// Timeout means the per-command deadline expired before the command
	// returned.
	Timeout
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	default:
		return "execution failed"
	}
}

// CommandError is a failed invocation of the external cm command.
type CommandError struct {
	Kind ErrorKind
	// ExitCode is the process exit code, or -1 if the process never ran.
	ExitCode int
	// Stderr is the captured error stream, if any.
	Stderr string
	// Err is the underlying cause.
	Err error
}

func (e *CommandError) Error() string {
	switch {
	case e.Kind == Timeout:
		return "command timed out"
	case e.ExitCode >= 0 && e.Stderr != "":
		return fmt.Sprintf("command failed with code %d: %s", e.ExitCode, e.Stderr)
	case e.ExitCode >= 0:
		return fmt.Sprintf("command failed with code %d", e.ExitCode)
	default:
		return fmt.Sprintf("command execution failed: %v", e.Err)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// LoadError wraps a command failure from the list step. Per-line parse
// failures and per-session metadata failures never produce a LoadError;
// only the listing command itself can fail a load.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load sessions: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MigrationError is a failed migration: either the destination path did not
// validate, or the migrate command itself failed.
type MigrationError struct {
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed: %v", e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err contains a timed-out command invocation.
func IsTimeout(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Kind == Timeout
}
