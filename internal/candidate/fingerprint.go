package candidate

import (
	"strconv"
	"strings"
)

// Fingerprint derives a comparable token from the fields that matter for
// display. Two candidates with equal fingerprints render identically, so a
// refresh that round-trips every fingerprint can be dropped without
// touching the UI. Client-only annotations (IsNew, StatusChangedAt,
// NewAnswersAt) and display-irrelevant metadata are deliberately excluded:
// preserving them across a poll must never look like a change.
func Fingerprint(c Candidate) string {
	var b strings.Builder
	sep := func() { b.WriteByte(0x1f) }

	b.WriteString(c.ID)
	sep()
	b.WriteString(c.FullName)
	sep()
	b.WriteString(c.FullNameHebrew)
	sep()
	b.WriteString(c.Email)
	sep()
	b.WriteString(c.Phone)
	sep()
	b.WriteString(string(c.Status))
	sep()
	b.WriteString(string(c.JobType))
	sep()
	writeGroup(&b, c.PrimaryGroup)
	sep()
	for _, g := range c.AlternativeGroups {
		writeGroup(&b, g)
		b.WriteByte(0x1e)
	}
	sep()
	for _, p := range c.MatchedParameters {
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatBool(p.Matched))
		b.WriteByte(0x1e)
	}
	sep()
	b.WriteString(c.AISkillsSummary)
	sep()
	b.WriteString(c.Notes)
	sep()
	b.WriteString(c.ManualNotes)
	sep()
	b.WriteString(strconv.FormatBool(c.Deleted))
	sep()
	b.WriteString(strings.Join(c.Warnings, "\x1e"))
	sep()
	writeConversation(&b, c.BotConversation)

	return b.String()
}

func writeGroup(b *strings.Builder, g Group) {
	b.WriteString(g.Name)
	b.WriteByte(':')
	if g.MatchScore == nil {
		b.WriteByte('-')
		return
	}
	b.WriteString(strconv.Itoa(*g.MatchScore))
}

func writeConversation(b *strings.Builder, conv *BotConversation) {
	if conv == nil {
		return
	}
	b.WriteString(strconv.FormatInt(conv.StartedAt.UnixNano(), 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(conv.CompletedAt.UnixNano(), 10))
	for _, msg := range conv.Messages {
		b.WriteByte(0x1e)
		b.WriteString(msg.Sender)
		b.WriteByte(':')
		b.WriteString(msg.Text)
	}
}

// ListChanged reports whether two snapshots differ in any meaningful field.
// True when the lengths differ, when an id from the fresh list is missing
// from the previous one, or when any shared id carries a different
// fingerprint. O(n) via an id-keyed index.
func ListChanged(previous, fresh []Candidate) bool {
	if len(previous) != len(fresh) {
		return true
	}
	index := make(map[string]string, len(previous))
	for i := range previous {
		index[previous[i].ID] = Fingerprint(previous[i])
	}
	for i := range fresh {
		fp, ok := index[fresh[i].ID]
		if !ok || fp != Fingerprint(fresh[i]) {
			return true
		}
	}
	return false
}
