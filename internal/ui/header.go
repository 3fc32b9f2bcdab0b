package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/state"
)

// renderHeader renders the status bar: logo, connectivity, pipeline
// counts, sync state, and the active filters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("recdeck", styles.Logo))

	// Connectivity indicator
	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case m.snapshot.IsSyncing:
		parts = append(parts, bg.Render("● SYNC", styles.InfoText))
	default:
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	}

	if m.snapshot.View == state.ViewDeleted {
		parts = append(parts, bg.Render("DELETED", styles.DangerText))
	}

	// Per-status counts
	counts := statusCounts(m.snapshot.Candidates)
	parts = append(parts,
		bg.Render("Candidates:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Candidates)), styles.Text),
	)
	for _, status := range candidate.AllStatuses() {
		if n := counts[status]; n > 0 {
			color := lipgloss.Color(m.theme.StatusColors[string(status)])
			parts = append(parts,
				bg.Render(status.Label()+":", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", n), styles.Text.Foreground(color)),
			)
		}
	}

	// Last successful sync
	if !m.snapshot.LastSyncedAt.IsZero() {
		parts = append(parts, bg.Render(m.snapshot.LastSyncedAt.Format("15:04:05"), styles.FaintText))
	}

	line := styles.Header.Width(m.width).Render(bg.Join(parts, sep))

	// Action errors get their own line under the header
	if m.snapshot.Error != "" {
		errLine := styles.DangerText.
			Background(lipgloss.Color(m.theme.Surface)).
			Width(m.width).
			Padding(0, 1).
			Render("✗ " + truncate(m.snapshot.Error, m.width-4))
		return line + "\n" + errLine
	}
	return line
}

// renderCommandBar renders the second header line: search box or filter
// summary plus key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	sep := bg.Spaces(2)

	if m.searching {
		return styles.Footer.Width(m.width).Render(
			bg.Render("Search:", styles.AccentText) + bg.Space() + m.searchInput.View(),
		)
	}

	var parts []string
	filters := m.snapshot.Filters
	if filters.Search != "" {
		parts = append(parts, bg.Render("search:"+filters.Search, styles.AccentText))
	}
	if filters.Status != "" {
		parts = append(parts, bg.Render("status:"+filters.Status.Label(), styles.AccentText))
	}
	if filters.JobType.Known() {
		parts = append(parts, bg.Render("job:"+filters.JobType.Label(), styles.AccentText))
	}
	if filters.Match != "" {
		parts = append(parts, bg.Render("match:"+filters.Match, styles.AccentText))
	}
	if len(parts) == 0 {
		parts = append(parts, bg.Render("no filters", styles.FaintText))
	}

	parts = append(parts, bg.Render("/ search  f status  y job  m match  v deleted  h help", styles.MutedText))

	return styles.Footer.Width(m.width).Render(bg.Join(parts, sep))
}

func statusCounts(list []candidate.Candidate) map[candidate.Status]int {
	counts := make(map[candidate.Status]int, 4)
	for _, c := range list {
		counts[c.Status]++
	}
	return counts
}
