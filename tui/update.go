package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cmtui/manager"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = m.theme.Error.Render(fmt.Sprintf("Load failed: %v", msg.err))
		} else {
			m.status = m.theme.Success.Render(fmt.Sprintf("Loaded %d sessions", m.mgr.Len()))
		}
		return m, nil

	case migrationDoneMsg:
		m.loading = false
		m.state = stateMenu
		m.cursor = 0
		switch {
		case msg.err != nil:
			m.status = m.theme.Error.Render(fmt.Sprintf("Migration failed: %v", msg.err))
		case msg.result != nil && msg.result.ReloadErr != nil:
			m.status = m.theme.Warning.Render(
				fmt.Sprintf("Migration succeeded, but reloading sessions failed: %v", msg.result.ReloadErr))
		default:
			m.status = m.theme.Success.Render(
				fmt.Sprintf("Migrated %s to %s", m.target.DisplayName(), m.destDir))
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if key.Matches(msg, m.keys.Quit) {
				return m.quit()
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case statePicker:
		return m.updatePicker(msg)
	case stateDest:
		return m.updateDest(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateSearch:
		return m.updateSearch(msg)
	case stateResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case 0: // migrate
			m.pickable = m.mgr.Sessions()
			sort.Slice(m.pickable, func(i, j int) bool {
				return m.pickable[i].Name < m.pickable[j].Name
			})
			if len(m.pickable) == 0 {
				m.status = m.theme.Warning.Render("No sessions to migrate")
				return m, nil
			}
			m.state = statePicker
			m.cursor = 0
			m.status = ""
		case 1: // search
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			m.state = stateSearch
			m.status = ""
			return m, nil
		case 2: // refresh
			m.loading = true
			m.status = ""
			return m, m.loadCmd()
		case 3: // quit
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.state = stateMenu
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pickable)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.target = m.pickable[m.cursor]
		// Prefill with the current directory so an unchanged submit reads
		// as "never mind".
		m.input.SetValue(m.target.CurrentCwd())
		m.input.CursorEnd()
		m.input.Focus()
		m.state = stateDest
		m.status = ""
	}
	return m, nil
}

func (m Model) updateDest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancelMigration(), nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" || value == m.target.CurrentCwd() {
			return m.cancelMigration(), nil
		}
		if err := manager.ValidateDestination(value); err != nil {
			m.status = m.theme.Error.Render(err.Error())
			return m, nil
		}
		m.destDir = value
		m.input.Blur()
		m.state = stateConfirm
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.loading = true
		m.status = ""
		return m, m.migrateCmd(m.target, m.destDir)
	case "n", "N", "esc", "q":
		return m.cancelMigration(), nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.state = stateMenu
		m.cursor = 0
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			m.status = m.theme.Warning.Render("Enter at least one keyword")
			return m, nil
		}
		m.query = query
		m.results = m.mgr.Search(query)
		m.searchInput.Blur()
		m.state = stateResults
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.state = stateMenu
		m.cursor = 0
	}
	return m, nil
}

func (m Model) cancelMigration() Model {
	m.input.Blur()
	m.state = stateMenu
	m.cursor = 0
	m.status = m.theme.Muted.Render("Migration cancelled")
	return m
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateDest:
		m.input, cmd = m.input.Update(msg)
	case stateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}
