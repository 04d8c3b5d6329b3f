package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cmtui/manager"
	"cmtui/session"
)

// sessionsLoadedMsg reports the outcome of a registry load.
type sessionsLoadedMsg struct {
	err error
}

// migrationDoneMsg reports the outcome of a migration. result is nil when
// the migration itself failed; a non-nil result may still carry a reload
// error.
type migrationDoneMsg struct {
	result *manager.MigrateResult
	err    error
}

func (m Model) loadCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		return sessionsLoadedMsg{err: mgr.Load(ctx)}
	}
}

func (m Model) migrateCmd(sess session.Session, newDir string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		result, err := mgr.Migrate(ctx, sess, newDir)
		return migrationDoneMsg{result: result, err: err}
	}
}
