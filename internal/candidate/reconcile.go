package candidate

import "time"

// Reconcile merges a freshly mapped list with the previously held one,
// carrying client-only annotations forward by id. The mapper never
// populates those fields, so without this step every refresh would wipe
// them. New arrivals keep their mapper defaults; a candidate whose flags
// were cleared stays cleared, because the previous list is the single
// source for transient state and it already reflects the clear.
func Reconcile(previous, fresh []Candidate) []Candidate {
	index := make(map[string]*Candidate, len(previous))
	for i := range previous {
		index[previous[i].ID] = &previous[i]
	}

	merged := make([]Candidate, len(fresh))
	for i, c := range fresh {
		if prior, ok := index[c.ID]; ok {
			c.IsNew = prior.IsNew
			c.StatusChangedAt = prior.StatusChangedAt
			c.NewAnswersAt = prior.NewAnswersAt
		}
		merged[i] = c
	}
	return merged
}

// ClearTransient returns a copy of the list with the given candidate's
// annotations reset. Used when a candidate becomes the active selection:
// viewing it acknowledges the "new" and "changed" markers.
func ClearTransient(list []Candidate, id string) []Candidate {
	out := make([]Candidate, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].IsNew = false
			out[i].StatusChangedAt = time.Time{}
			out[i].NewAnswersAt = time.Time{}
		}
	}
	return out
}

// MarkNew returns a copy of the list with the given candidate flagged as a
// new arrival. Used right after a successful create so the UI can surface
// a "New" badge; reconciliation keeps the flag alive across later polls.
func MarkNew(list []Candidate, id string) []Candidate {
	out := make([]Candidate, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].IsNew = true
		}
	}
	return out
}

// ContainsID reports whether any candidate in the list has the given id.
func ContainsID(list []Candidate, id string) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
