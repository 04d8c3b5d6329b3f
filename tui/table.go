package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"cmtui/session"
)

// maxDisplayedResults caps how many search results are printed. The scorer
// returns the full ranked sequence; only presentation truncates.
const maxDisplayedResults = 10

// groupSessions splits sessions into the aura group and the rest, each
// sorted by raw name.
func groupSessions(sessions []session.Session) (aura, other []session.Session) {
	for _, s := range sessions {
		if s.IsAura() {
			aura = append(aura, s)
		} else {
			other = append(other, s)
		}
	}
	sort.Slice(aura, func(i, j int) bool { return aura[i].Name < aura[j].Name })
	sort.Slice(other, func(i, j int) bool { return other[i].Name < other[j].Name })
	return aura, other
}

// sessionRow formats one table row.
func sessionRow(s session.Session) []string {
	cwd := s.CurrentCwd()
	if cwd == "" {
		cwd = "N/A"
	}
	lastModified := ""
	if !s.Metadata.LastModified.IsZero() {
		lastModified = s.Metadata.LastModified.Format("2006-01-02 15:04")
	}
	return []string{s.DisplayName(), fmt.Sprintf("%d", s.SessionCount), cwd, lastModified}
}

// renderGroup renders one session group as a bordered table under a
// section heading.
func renderGroup(theme Theme, title string, sessions []session.Session) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return theme.Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Name", "Sessions", "Current Path", "Last Modified")

	for _, s := range sessions {
		t.Row(sessionRow(s)...)
	}

	return theme.Section.Render(title) + "\n" + t.Render()
}

// RenderSessionTable renders the full session table, aura sessions grouped
// before the rest.
func RenderSessionTable(theme Theme, sessions []session.Session) string {
	if len(sessions) == 0 {
		return theme.Muted.Render("No sessions found.")
	}

	aura, other := groupSessions(sessions)

	var parts []string
	if len(aura) > 0 {
		parts = append(parts, renderGroup(theme, "Aura Sessions", aura))
	}
	if len(other) > 0 {
		parts = append(parts, renderGroup(theme, "Other Sessions", other))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSearchResults renders the top-ranked results for a query.
func RenderSearchResults(theme Theme, query string, results []session.SearchResult) string {
	if len(results) == 0 {
		return theme.Warning.Render(fmt.Sprintf("No matches found for %q", query))
	}

	var b strings.Builder
	b.WriteString(theme.Success.Render(fmt.Sprintf("Found %d matches for %q:", len(results), query)))
	b.WriteString("\n\n")

	shown := results
	if len(shown) > maxDisplayedResults {
		shown = shown[:maxDisplayedResults]
	}

	for i, r := range shown {
		cwd := r.Session.CurrentCwd()
		if cwd == "" {
			cwd = "N/A"
		}
		b.WriteString(fmt.Sprintf("%2d. %s %s\n",
			i+1,
			theme.Accent.Render(r.Session.DisplayName()),
			theme.Muted.Render(fmt.Sprintf("(score: %d)", r.Score))))
		b.WriteString(fmt.Sprintf("    Path: %s\n", cwd))
		b.WriteString(fmt.Sprintf("    Sessions: %d\n", r.Session.SessionCount))
		if len(r.Matches) > 0 {
			b.WriteString("    Matches: " + theme.Muted.Render(strings.Join(r.Matches, ", ")) + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
