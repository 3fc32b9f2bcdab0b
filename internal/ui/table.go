package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noamzr/recdeck/internal/candidate"
)

const (
	colName     = 24
	colStatus   = 25
	colJobType  = 20
	colMatch    = 6
	colAge      = 4
	headerLines = 3 // header + command bar + table header
)

// renderContent renders the candidate table, with the detail pane beside
// it when a candidate is selected.
func (m Model) renderContent() string {
	selected := m.snapshot.Selected()
	if selected == nil || m.width < 100 {
		return m.renderTable(m.width)
	}

	detailWidth := m.width * 2 / 5
	tableWidth := m.width - detailWidth
	table := m.renderTable(tableWidth)
	detail := m.renderDetail(selected, detailWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, table, detail)
}

// renderTable renders the candidate list with the cursor row highlighted.
func (m Model) renderTable(width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	header := padRight("NAME", colName) +
		padRight("STATUS", colStatus) +
		padRight("JOB TYPE", colJobType) +
		padRight("MATCH", colMatch) +
		padRight("AGE", colAge) +
		"CAMPAIGN"
	b.WriteString(styles.MutedText.Bold(true).Render(truncate(header, width)))
	b.WriteString("\n")

	if len(m.snapshot.Candidates) == 0 {
		if m.snapshot.IsLoading {
			b.WriteString(styles.MutedText.Render("Loading candidates..."))
		} else {
			b.WriteString(styles.FaintText.Render("No candidates match."))
		}
		return b.String()
	}

	maxRows := m.height - headerLines
	if m.snapshot.Error != "" {
		maxRows--
	}
	if maxRows < 1 {
		maxRows = 1
	}

	// Keep the cursor visible when the list is longer than the screen
	start := 0
	if m.cursorRow >= maxRows {
		start = m.cursorRow - maxRows + 1
	}

	for i := start; i < len(m.snapshot.Candidates) && i-start < maxRows; i++ {
		c := m.snapshot.Candidates[i]
		b.WriteString(m.renderRow(c, i == m.cursorRow, width))
		if i < len(m.snapshot.Candidates)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderRow(c candidate.Candidate, cursor bool, width int) string {
	styles := m.theme.Styles()

	marker := rowMarker(c)
	name := displayName(c)
	if marker != "" {
		name = truncate(name, colName-2-len([]rune(marker))) + " " + marker
	} else {
		name = truncate(name, colName-1)
	}

	statusKey := string(c.Status)
	statusLabel := c.Status.Label()
	if c.Deleted {
		statusKey = "deleted"
		statusLabel = "Deleted"
	}

	campaignWidth := width - colName - colStatus - colJobType - colMatch - colAge
	tail := padRight(c.JobType.Label(), colJobType) +
		padRight(matchCell(c), colMatch) +
		padRight(ageCell(c), colAge) +
		truncate(c.CampaignSource, campaignWidth)

	if cursor {
		row := padRight(name, colName) + padRight(statusLabel, colStatus) + tail
		return styles.Selected.Width(width).Render(row)
	}

	// Cells are plain-text padded, so styling whole segments keeps the
	// columns aligned.
	nameStyle := styles.Text
	if c.IsNew {
		nameStyle = styles.AccentText.Bold(true)
	}
	statusColor := lipgloss.Color(m.theme.StatusColors[statusKey])
	return nameStyle.Render(padRight(name, colName)) +
		lipgloss.NewStyle().Foreground(statusColor).Render(padRight(statusLabel, colStatus)) +
		styles.Text.Render(tail)
}

// rowMarker flags candidates needing attention: fresh arrivals, recent
// status changes, and unread bot answers.
func rowMarker(c candidate.Candidate) string {
	var marks []string
	if c.IsNew {
		marks = append(marks, "NEW")
	}
	if !c.StatusChangedAt.IsZero() {
		marks = append(marks, "●")
	}
	if !c.NewAnswersAt.IsZero() {
		marks = append(marks, "✉")
	}
	return strings.Join(marks, " ")
}

func displayName(c candidate.Candidate) string {
	if c.FullName != "" {
		return c.FullName
	}
	if c.FullNameHebrew != "" {
		return c.FullNameHebrew
	}
	return c.Email
}

func matchCell(c candidate.Candidate) string {
	if c.PrimaryGroup.MatchScore == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *c.PrimaryGroup.MatchScore)
}

func ageCell(c candidate.Candidate) string {
	if c.Age <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", c.Age)
}
