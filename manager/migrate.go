package manager

import (
	"context"
	"fmt"
	"os"

	"cmtui/logger"
	"cmtui/paths"
	"cmtui/session"
)

// MigrateResult reports the outcome of the post-migration reload. The
// migration itself succeeded if Migrate returned nil; a reload failure is
// surfaced here separately so callers can report it without undoing the
// migration's success.
type MigrateResult struct {
	ReloadErr error
}

// ValidateDestination checks a migration destination up front. An empty
// path is valid — it means no working directory is recorded. A non-empty
// path must be an existing directory ("~" is expanded first).
func ValidateDestination(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(paths.ExpandUser(path))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("not an existing directory: %s", path)
	}
	return nil
}

// Migrate asks the external tool to move a session to newDir, then reloads
// the registry so it reflects the new state. The argument order of the
// migrate subcommand is fixed: old working directory, new working
// directory, session path.
func (m *Manager) Migrate(ctx context.Context, sess session.Session, newDir string) (*MigrateResult, error) {
	log := logger.WithComponent("manager")

	if err := ValidateDestination(newDir); err != nil {
		return nil, &MigrationError{Err: err}
	}

	if _, err := m.runCommand(ctx, "migrate", sess.CurrentCwd(), newDir, sess.Path); err != nil {
		log.Warn("migrate command failed", "session", sess.Name, "err", err)
		return nil, &MigrationError{Err: err}
	}

	log.Info("session migrated", "session", sess.Name, "from", sess.CurrentCwd(), "to", newDir)

	// The migration is already done; a reload failure must not be reported
	// as a migration failure.
	result := &MigrateResult{}
	if err := m.Load(ctx); err != nil {
		result.ReloadErr = err
	}
	return result, nil
}
