package candidate

import (
	"testing"
	"time"
)

func sample(id string) Candidate {
	score := 72
	return Candidate{
		ID:       id,
		FullName: "Dana Peretz",
		Email:    "dana@example.com",
		Phone:    "+972-54-000-0000",
		Status:   StatusBotInterview,
		JobType:  JobTypeSales,
		PrimaryGroup: Group{
			Name:       "Sales",
			MatchScore: &score,
		},
		AISkillsSummary: "B2B sales background",
		Notes:           "referred internally",
	}
}

func TestFingerprint_IgnoresTransientFields(t *testing.T) {
	a := sample("c1")
	b := sample("c1")
	b.IsNew = true
	b.StatusChangedAt = time.Now()
	b.NewAnswersAt = time.Now()

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("fingerprint changed on transient-only mutation")
	}
}

func TestFingerprint_SeesMeaningfulChanges(t *testing.T) {
	base := sample("c1")

	mutations := []struct {
		name   string
		mutate func(*Candidate)
	}{
		{"status", func(c *Candidate) { c.Status = StatusReadyForRecruit }},
		{"job type", func(c *Candidate) { c.JobType = JobTypeOperationalWorker }},
		{"email", func(c *Candidate) { c.Email = "other@example.com" }},
		{"score absent", func(c *Candidate) { c.PrimaryGroup.MatchScore = nil }},
		{"score value", func(c *Candidate) { v := 95; c.PrimaryGroup.MatchScore = &v }},
		{"notes", func(c *Candidate) { c.Notes = "changed" }},
		{"manual notes", func(c *Candidate) { c.ManualNotes = "recruiter note" }},
		{"deleted", func(c *Candidate) { c.Deleted = true }},
		{"warnings", func(c *Candidate) { c.Warnings = []string{"duplicate email"} }},
		{"conversation", func(c *Candidate) {
			c.BotConversation = &BotConversation{Messages: []BotMessage{{Sender: "bot", Text: "hi"}}}
		}},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			mutated := sample("c1")
			tt.mutate(&mutated)
			if Fingerprint(base) == Fingerprint(mutated) {
				t.Errorf("fingerprint blind to %s change", tt.name)
			}
		})
	}
}

func TestListChanged(t *testing.T) {
	a := sample("c1")
	b := sample("c2")

	if ListChanged([]Candidate{a, b}, []Candidate{a, b}) {
		t.Fatalf("ListChanged = true for identical lists")
	}

	// Order alone is not a change; comparison is id-keyed.
	if ListChanged([]Candidate{a, b}, []Candidate{b, a}) {
		t.Fatalf("ListChanged = true for reordered identical lists")
	}

	if !ListChanged([]Candidate{a}, []Candidate{a, b}) {
		t.Fatalf("ListChanged = false when an entity was added")
	}
	if !ListChanged([]Candidate{a, b}, []Candidate{a}) {
		t.Fatalf("ListChanged = false when an entity was removed")
	}

	changed := sample("c2")
	changed.Status = StatusReadyForRecruit
	if !ListChanged([]Candidate{a, b}, []Candidate{a, changed}) {
		t.Fatalf("ListChanged = false when a shared id changed meaningfully")
	}

	swapped := sample("c3")
	if !ListChanged([]Candidate{a, b}, []Candidate{a, swapped}) {
		t.Fatalf("ListChanged = false when an id was replaced")
	}

	// Transient-only differences must not register.
	flagged := sample("c2")
	flagged.IsNew = true
	if ListChanged([]Candidate{a, b}, []Candidate{a, flagged}) {
		t.Fatalf("ListChanged = true for transient-only difference")
	}
}
