package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("cmtui — session manager"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.theme.Muted.Render("Working..."))
		b.WriteString("\n")
		return b.String()
	}

	switch m.state {
	case stateMenu:
		b.WriteString(m.viewMenu())
	case statePicker:
		b.WriteString(m.viewPicker())
	case stateDest:
		b.WriteString(m.viewDest())
	case stateConfirm:
		b.WriteString(m.viewConfirm())
	case stateSearch:
		b.WriteString(m.viewSearch())
	case stateResults:
		b.WriteString(RenderSearchResults(m.theme, m.query, m.results))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Help.Render("enter/esc back · q quit"))
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(RenderSessionTable(m.theme, m.mgr.Sessions()))
	b.WriteString("\n\n")
	for i, item := range menuItems {
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("Pick a session to migrate"))
	b.WriteString("\n\n")
	for i, s := range m.pickable {
		line := fmt.Sprintf("%s (%d)", s.DisplayName(), s.SessionCount)
		if i == m.cursor {
			b.WriteString(m.theme.Cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓ move · enter select · esc back"))
	return b.String()
}

func (m Model) viewDest() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render(
		fmt.Sprintf("New working directory for %s", m.target.DisplayName())))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("enter submit · esc cancel · empty or unchanged cancels"))
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("Confirm migration"))
	b.WriteString("\n\n")
	from := m.target.CurrentCwd()
	if from == "" {
		from = "N/A"
	}
	b.WriteString(fmt.Sprintf("  Session: %s\n", m.target.DisplayName()))
	b.WriteString(fmt.Sprintf("  From:    %s\n", from))
	b.WriteString(fmt.Sprintf("  To:      %s\n", m.destDir))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("y confirm · n cancel"))
	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("Search sessions"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("enter search · esc back"))
	return b.String()
}
