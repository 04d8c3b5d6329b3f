// Package manager owns the live session registry and the workflow around
// it: running the external cm command, loading and enriching sessions, and
// forwarding migrations.
//
// The registry is rebuilt wholesale on every load. A failed load leaves the
// previous snapshot untouched; readers never observe a half-updated state.
package manager

import (
	"context"
	"errors"
	"strings"
	"time"

	goexec "os/exec"

	"cmtui/config"
	"cmtui/exec"
	"cmtui/logger"
	"cmtui/session"
)

// Manager coordinates the session registry with the external cm tool.
// Loads replace the registry under a lock; everything else reads snapshots.
type Manager struct {
	cfg      *config.Config
	executor exec.CommandExecutor

	state registryState
}

// New creates a Manager that runs real external commands.
func New(cfg *config.Config) *Manager {
	return NewWithExecutor(cfg, exec.NewRealExecutor())
}

// NewWithExecutor creates a Manager with a custom executor. This is
// primarily used for testing where a mock executor is needed.
func NewWithExecutor(cfg *config.Config, executor exec.CommandExecutor) *Manager {
	return &Manager{
		cfg:      cfg,
		executor: executor,
	}
}

// Config returns the manager's configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// runCommand invokes the configured cm binary with args under the
// per-invocation timeout and classifies any failure. The command is killed
// when the caller's ctx is cancelled, so an interrupted interactive
// operation never leaves an orphaned subprocess.
func (m *Manager) runCommand(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.CommandTimeout())
	defer cancel()

	start := time.Now()
	stdout, stderr, err := m.executor.Run(ctx, m.cfg.Command, args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &CommandError{Kind: Timeout, ExitCode: -1, Err: err}
		}

		exitCode := -1
		var exitErr *goexec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", &CommandError{
			Kind:     ExecutionFailed,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(string(stderr)),
			Err:      err,
		}
	}

	logger.WithComponent("manager").Debug("command completed",
		"args", args, "duration", time.Since(start))
	return string(stdout), nil
}

// Search ranks the current registry snapshot against query.
func (m *Manager) Search(query string) []session.SearchResult {
	return session.Search(m.Sessions(), query)
}
