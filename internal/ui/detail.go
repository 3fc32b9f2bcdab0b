package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noamzr/recdeck/internal/candidate"
)

// renderDetail renders the detail pane for the selected candidate.
func (m Model) renderDetail(c *candidate.Candidate, width int) string {
	styles := m.theme.Styles()
	inner := width - 2
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder

	writeSection := func(title string) {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Bold(true).Render(strings.ToUpper(title)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(strings.Repeat("─", min(inner, 38))))
		b.WriteString("\n")
	}
	writeField := func(label, value string, style lipgloss.Style) {
		if value == "" {
			return
		}
		b.WriteString(styles.MutedText.Render(padRight(label+":", 10)))
		b.WriteString(style.Render(truncate(value, inner-10)))
		b.WriteString("\n")
	}

	// Header
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(displayName(*c), inner)))
	b.WriteString("\n")
	if c.FullNameHebrew != "" && c.FullNameHebrew != c.FullName {
		b.WriteString(styles.MutedText.Render(truncate(c.FullNameHebrew, inner)))
		b.WriteString("\n")
	}

	chips := []string{m.statusChip(*c)}
	if c.JobType.Known() {
		chips = append(chips, styles.InfoText.Render(c.JobType.Label()))
	}
	if c.IsNew {
		chips = append(chips, m.chip("NEW", m.theme.StatusColors["new"]))
	}
	if !c.NewAnswersAt.IsZero() {
		chips = append(chips, styles.InfoText.Render("✉ new answers"))
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n")

	// Contact
	writeSection("Contact")
	writeField("Email", c.Email, styles.Text)
	writeField("Phone", c.Phone, styles.Text)
	if c.Age > 0 {
		writeField("Age", fmt.Sprintf("%d", c.Age), styles.Text)
	}
	writeField("Country", c.Citizenship, styles.Text)
	writeField("Campaign", c.CampaignSource, styles.Text)
	if !c.CreatedAt.IsZero() {
		writeField("Applied", c.CreatedAt.Format("2006-01-02 15:04"), styles.Text)
	}
	if c.Deleted && !c.DeletedAt.IsZero() {
		writeField("Deleted", c.DeletedAt.Format("2006-01-02 15:04"), styles.DangerText)
	}

	// Classification
	if c.PrimaryGroup.Name != "" || len(c.AlternativeGroups) > 0 {
		writeSection("Classification")
		writeField("Group", groupLine(c.PrimaryGroup), styles.AccentText)
		for _, g := range c.AlternativeGroups {
			writeField("Alt", groupLine(g), styles.MutedText)
		}
		if c.ClassExplain != "" {
			b.WriteString(styles.FaintText.Width(inner).Render(c.ClassExplain))
			b.WriteString("\n")
		}
	}

	if len(c.MatchedParameters) > 0 {
		writeSection("Match Parameters")
		for _, p := range c.MatchedParameters {
			mark := styles.DangerText.Render("✗")
			if p.Matched {
				mark = styles.SuccessText.Render("✓")
			}
			b.WriteString(mark)
			b.WriteString(" ")
			b.WriteString(styles.Text.Render(truncate(p.Name, inner-2)))
			b.WriteString("\n")
		}
	}

	if c.AISkillsSummary != "" {
		writeSection("AI Summary")
		b.WriteString(styles.Text.Width(inner).Render(c.AISkillsSummary))
		b.WriteString("\n")
	}

	// Screening answers
	writeSection("Screening")
	m.writeAnswer(&b, "Travel to Europe", c.CanTravelEurope)
	m.writeAnswer(&b, "Travel to Israel", c.CanTravelIsrael)
	m.writeAnswer(&b, "Lives in Europe", c.LivesInEurope)
	m.writeAnswer(&b, "Native Israeli", c.NativeIsraeli)
	m.writeAnswer(&b, "Speaks English", c.SpeaksEnglish)
	m.writeAnswer(&b, "Remembers position", c.RemembersPosition)

	// Status history, newest last
	if len(c.StatusHistory) > 0 {
		writeSection("Status History")
		for _, ev := range c.StatusHistory {
			stamp := "          "
			if !ev.Timestamp.IsZero() {
				stamp = ev.Timestamp.Format("01-02 15:04")
			}
			b.WriteString(styles.FaintText.Render(stamp))
			b.WriteString(" ")
			b.WriteString(styles.Text.Render(truncate(titleCase(ev.Status), inner-12)))
			b.WriteString("\n")
			if ev.Note != "" {
				b.WriteString(styles.FaintText.Render("  " + truncate(ev.Note, inner-2)))
				b.WriteString("\n")
			}
		}
	}

	if len(c.Warnings) > 0 {
		writeSection("Warnings")
		for _, w := range c.Warnings {
			b.WriteString(styles.WarningText.Render("⚠ " + truncate(w, inner-2)))
			b.WriteString("\n")
		}
	}

	if c.Notes != "" || c.ManualNotes != "" {
		writeSection("Notes")
		if c.Notes != "" {
			b.WriteString(styles.Text.Width(inner).Render(c.Notes))
			b.WriteString("\n")
		}
		if c.ManualNotes != "" {
			b.WriteString(styles.MutedText.Width(inner).Render(c.ManualNotes))
			b.WriteString("\n")
		}
	}

	if conv := c.BotConversation; conv != nil && len(conv.Messages) > 0 {
		writeSection("Bot Interview")
		b.WriteString(styles.MutedText.Render(botSummary(conv)))
		b.WriteString("\n")
		for _, msg := range lastMessages(conv.Messages, 4) {
			style := styles.InfoText
			prefix := "bot"
			if msg.Sender != "bot" {
				style = styles.Text
				prefix = "you"
			}
			b.WriteString(styles.FaintText.Render(prefix + " "))
			b.WriteString(style.Render(truncate(msg.Text, inner-4)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(m.height - headerLines).
		MaxHeight(m.height - headerLines).
		PaddingLeft(1).
		Render(b.String())
}

// statusChip renders the candidate's status as a colored badge.
func (m Model) statusChip(c candidate.Candidate) string {
	key := string(c.Status)
	label := c.Status.Label()
	if c.Deleted {
		key = "deleted"
		label = "Deleted"
	}
	return m.chip(strings.ToUpper(label), m.theme.StatusColors[key])
}

func (m Model) chip(label, color string) string {
	if color == "" {
		color = m.theme.Muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(label)
}

func (m Model) writeAnswer(b *strings.Builder, label string, yes bool) {
	styles := m.theme.Styles()
	mark := styles.DangerText.Render("✗")
	if yes {
		mark = styles.SuccessText.Render("✓")
	}
	b.WriteString(mark)
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(label))
	b.WriteString("\n")
}

func groupLine(g candidate.Group) string {
	if g.Name == "" {
		return ""
	}
	if g.MatchScore == nil {
		return g.Name
	}
	return fmt.Sprintf("%s (%d%%)", g.Name, *g.MatchScore)
}

func botSummary(conv *candidate.BotConversation) string {
	parts := []string{fmt.Sprintf("%d messages", len(conv.Messages))}
	if !conv.StartedAt.IsZero() {
		parts = append(parts, "started "+conv.StartedAt.Format("01-02 15:04"))
	}
	if !conv.CompletedAt.IsZero() {
		parts = append(parts, "completed "+conv.CompletedAt.Format("01-02 15:04"))
	}
	return strings.Join(parts, " · ")
}

func lastMessages(msgs []candidate.BotMessage, n int) []candidate.BotMessage {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}
