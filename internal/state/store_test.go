package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/cvapi"
)

// fakeBackend is an in-memory cvapi.Backend that serves canned records and
// remembers which endpoints were hit.
type fakeBackend struct {
	mu       sync.Mutex
	records  []cvapi.Record
	returned cvapi.Record
	uploadID string
	err      error
	calls    []string
}

func (f *fakeBackend) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) List(ctx context.Context, deletedOnly bool) ([]cvapi.Record, error) {
	f.called("list")
	return f.records, f.err
}

func (f *fakeBackend) Search(ctx context.Context, params cvapi.SearchParams) ([]cvapi.Record, error) {
	f.called("search")
	return f.records, f.err
}

func (f *fakeBackend) Get(ctx context.Context, id string) (cvapi.Record, error) {
	f.called("get")
	return f.returned, f.err
}

func (f *fakeBackend) Upload(ctx context.Context, req cvapi.UploadRequest) (cvapi.UploadResponse, error) {
	f.called("upload")
	return cvapi.UploadResponse{ID: f.uploadID, Status: "Submitted"}, f.err
}

func (f *fakeBackend) Update(ctx context.Context, id string, req cvapi.UpdateRequest) (cvapi.Record, error) {
	f.called("update")
	return f.returned, f.err
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, id string, req cvapi.StatusUpdateRequest) (cvapi.Record, error) {
	f.called("status")
	return f.returned, f.err
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	f.called("delete")
	return f.err
}

func (f *fakeBackend) Restore(ctx context.Context, id string) (cvapi.Record, error) {
	f.called("restore")
	return f.returned, f.err
}

func (f *fakeBackend) TriggerBotProcessor(ctx context.Context) error {
	f.called("bot")
	return f.err
}

func (f *fakeBackend) TriggerClassification(ctx context.Context) error {
	f.called("classify")
	return f.err
}

func rec(id, name, status string) cvapi.Record {
	return cvapi.Record{
		ID:            id,
		CurrentStatus: status,
		KnownData:     cvapi.KnownData{Name: name, LatinName: name},
	}
}

func TestStore_FetchAllAndSnapshotClone(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Bot Interview"),
	}}
	s := New(backend)

	before := time.Now()
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll() = %v, want nil", err)
	}

	snap := s.Snapshot()
	if len(snap.Candidates) != 2 || snap.Candidates[0].ID != "a" {
		t.Fatalf("snapshot candidates = %#v, want 2 entries", snap.Candidates)
	}
	if snap.Candidates[1].Status != candidate.StatusBotInterview {
		t.Fatalf("Status = %q, want %q", snap.Candidates[1].Status, candidate.StatusBotInterview)
	}
	if snap.LastSyncedAt.Before(before) {
		t.Fatalf("LastSyncedAt = %v, want >= %v", snap.LastSyncedAt, before)
	}
	if snap.Error != "" {
		t.Fatalf("Error = %q, want empty", snap.Error)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Candidates[0].FullName = "mutated"
	snap2 := s.Snapshot()
	if snap2.Candidates[0].FullName != "Dana Katz" {
		t.Fatalf("Snapshot should clone candidates; got %q", snap2.Candidates[0].FullName)
	}
}

func TestStore_FetchAllErrorKeepsPreviousData(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}

	backend.err = errors.New("boom")
	if err := s.FetchAll(context.Background()); err == nil {
		t.Fatal("FetchAll() = nil, want error")
	}

	snap := s.Snapshot()
	if len(snap.Candidates) != 1 || snap.Candidates[0].ID != "a" {
		t.Fatalf("candidates changed on error: %#v", snap.Candidates)
	}
	if snap.Error != "boom" {
		t.Fatalf("Error = %q, want boom", snap.Error)
	}
	if snap.IsLoading {
		t.Fatal("IsLoading = true after failed fetch, want false")
	}
}

func TestStore_SilentRefresh_NoChangeKeepsListIdentity(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Submitted"),
	}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}

	firstSynced := s.Snapshot().LastSyncedAt
	beforeFirst := &s.candidates[0]

	committed, err := s.SilentRefresh(context.Background())
	if err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if committed {
		t.Fatal("SilentRefresh() committed = true for identical payload, want false")
	}
	if &s.candidates[0] != beforeFirst {
		t.Fatal("unchanged poll replaced the candidate list; identity must be stable")
	}
	if !s.Snapshot().LastSyncedAt.After(firstSynced) {
		t.Fatal("LastSyncedAt should advance even when nothing changed")
	}

	// Reordered payload is the same set; still no commit.
	backend.records = []cvapi.Record{
		rec("b", "Omer Levi", "Submitted"),
		rec("a", "Dana Katz", "Submitted"),
	}
	committed, err = s.SilentRefresh(context.Background())
	if err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if committed {
		t.Fatal("SilentRefresh() committed = true for reordered payload, want false")
	}
}

func TestStore_SilentRefreshAppliesStatusChangeAndNewArrival(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("1", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	if score := s.Snapshot().Candidates[0].PrimaryGroup.MatchScore; score != nil {
		t.Fatalf("seed match score = %d, want nil", *score)
	}

	// Next poll: candidate 1 advanced with a fresh score, candidate 2 is
	// a brand-new arrival.
	advanced := rec("1", "Dana Katz", "Bot Interview")
	advanced.KnownData.MatchScore = "72"
	backend.records = []cvapi.Record{advanced, rec("2", "Omer Levi", "Submitted")}

	committed, err := s.SilentRefresh(context.Background())
	if err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if !committed {
		t.Fatal("SilentRefresh() committed = false for changed payload, want true")
	}

	snap := s.Snapshot()
	if len(snap.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(snap.Candidates))
	}
	first := snap.Candidates[0]
	if first.Status != candidate.StatusBotInterview {
		t.Fatalf("candidate 1 status = %q, want %q", first.Status, candidate.StatusBotInterview)
	}
	if first.PrimaryGroup.MatchScore == nil || *first.PrimaryGroup.MatchScore != 72 {
		t.Fatalf("candidate 1 match score = %v, want 72", first.PrimaryGroup.MatchScore)
	}
	second := snap.Candidates[1]
	if second.ID != "2" {
		t.Fatalf("candidate 2 id = %q, want 2", second.ID)
	}
	// Only explicit uploads get the new badge; background arrivals don't.
	if second.IsNew {
		t.Fatal("background arrival flagged IsNew, want false")
	}
}

func TestStore_SilentRefresh_PreservesTransientAnnotations(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.MarkNewAnswers("a")

	backend.records = []cvapi.Record{rec("a", "Dana Katz", "Bot Interview")}
	committed, err := s.SilentRefresh(context.Background())
	if err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if !committed {
		t.Fatal("SilentRefresh() committed = false for changed status, want true")
	}

	snap := s.Snapshot()
	if snap.Candidates[0].Status != candidate.StatusBotInterview {
		t.Fatalf("Status = %q, want fresh value", snap.Candidates[0].Status)
	}
	if snap.Candidates[0].NewAnswersAt.IsZero() {
		t.Fatal("NewAnswersAt lost across a silent commit")
	}
}

func TestStore_Select_ClearSurvivesNextPoll(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Submitted"),
	}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.MarkStatusChanged("a")
	s.MarkNewAnswers("a")

	s.Select("a")
	snap := s.Snapshot()
	if snap.SelectedID != "a" {
		t.Fatalf("SelectedID = %q, want a", snap.SelectedID)
	}
	sel := snap.Selected()
	if sel == nil || !sel.StatusChangedAt.IsZero() || !sel.NewAnswersAt.IsZero() {
		t.Fatalf("Select should clear transient annotations, got %#v", sel)
	}

	// A server-side change forces a commit; the cleared flags must not
	// come back with it.
	backend.records = []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Bot Interview"),
	}
	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	sel = s.Snapshot().Selected()
	if sel == nil || !sel.StatusChangedAt.IsZero() || !sel.NewAnswersAt.IsZero() {
		t.Fatalf("cleared annotations resurrected by poll: %#v", sel)
	}
}

func TestStore_SilentFailureKeepsDataAndCountsFailures(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}

	backend.err = errors.New("connection refused")
	for i := 1; i <= 3; i++ {
		committed, err := s.SilentRefresh(context.Background())
		if err == nil || committed {
			t.Fatalf("poll %d: committed=%v err=%v, want no commit and an error", i, committed, err)
		}
	}

	snap := s.Snapshot()
	if len(snap.Candidates) != 1 {
		t.Fatalf("candidates lost on silent failure: %#v", snap.Candidates)
	}
	if snap.Error != "" {
		t.Fatalf("silent failure surfaced error %q, want none", snap.Error)
	}
	if snap.ConsecutiveFailures != 3 || !snap.IsOffline() {
		t.Fatalf("ConsecutiveFailures = %d IsOffline = %v, want 3/true", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.IsSyncing {
		t.Fatal("IsSyncing stuck after failed poll")
	}

	backend.err = nil
	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failure counter not reset: %d", snap.ConsecutiveFailures)
	}
}

func TestStore_AddCandidateMarksNew(t *testing.T) {
	backend := &fakeBackend{
		uploadID: "new-id",
		records:  []cvapi.Record{rec("a", "Dana Katz", "Submitted")},
	}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}

	backend.records = append(backend.records, rec("new-id", "Noa Bar", "Submitted"))
	id, err := s.AddCandidate(context.Background(), cvapi.UploadRequest{Name: "Noa Bar"})
	if err != nil {
		t.Fatalf("AddCandidate() = %v, want nil", err)
	}
	if id != "new-id" {
		t.Fatalf("AddCandidate() id = %q, want new-id", id)
	}

	snap := s.Snapshot()
	var added *candidate.Candidate
	for i := range snap.Candidates {
		if snap.Candidates[i].ID == "new-id" {
			added = &snap.Candidates[i]
		}
	}
	if added == nil {
		t.Fatalf("new candidate missing from list: %#v", snap.Candidates)
	}
	if !added.IsNew {
		t.Fatal("IsNew = false for freshly added candidate, want true")
	}
}

func TestStore_UpdateStatusUsesServerRecord(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.MarkNewAnswers("a")

	// The backend answers with its own idea of the resulting status.
	backend.returned = rec("a", "Dana Katz", "Ready For Bot Interview")
	if err := s.UpdateStatus(context.Background(), "a", candidate.StatusReadyForRecruit); err != nil {
		t.Fatalf("UpdateStatus() = %v, want nil", err)
	}

	snap := s.Snapshot()
	if snap.Candidates[0].Status != candidate.StatusReadyForBotInterview {
		t.Fatalf("Status = %q, want server's canonical value", snap.Candidates[0].Status)
	}
	if snap.Candidates[0].NewAnswersAt.IsZero() {
		t.Fatal("entry swap dropped the transient annotations")
	}
}

func TestStore_DeleteRemovesAndClearsSelection(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Submitted"),
	}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.Select("a")

	if err := s.DeleteCandidate(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteCandidate() = %v, want nil", err)
	}
	snap := s.Snapshot()
	if len(snap.Candidates) != 1 || snap.Candidates[0].ID != "b" {
		t.Fatalf("candidates after delete = %#v, want only b", snap.Candidates)
	}
	if snap.SelectedID != "" {
		t.Fatalf("SelectedID = %q after deleting selection, want empty", snap.SelectedID)
	}
}

func TestStore_SelectionDroppedWhenIDDisappears(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{
		rec("a", "Dana Katz", "Submitted"),
		rec("b", "Omer Levi", "Submitted"),
	}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.Select("b")

	backend.records = []cvapi.Record{rec("a", "Dana Katz", "Submitted")}
	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if got := s.Snapshot().SelectedID; got != "" {
		t.Fatalf("SelectedID = %q after selected id vanished, want empty", got)
	}
}

func TestStore_SilentRefreshUsesSearchWhenFiltered(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)

	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if backend.callCount("list") != 1 || backend.callCount("search") != 0 {
		t.Fatalf("unfiltered refresh calls = %v, want one list", backend.calls)
	}

	s.SetSearchQuery("dana")
	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if backend.callCount("search") != 1 {
		t.Fatalf("filtered refresh calls = %v, want a search", backend.calls)
	}

	s.ClearFilters()
	if _, err := s.SilentRefresh(context.Background()); err != nil {
		t.Fatalf("SilentRefresh() error = %v", err)
	}
	if backend.callCount("list") != 2 {
		t.Fatalf("cleared-filter refresh calls = %v, want list again", backend.calls)
	}
}

func TestStore_SetViewResetsSelection(t *testing.T) {
	backend := &fakeBackend{records: []cvapi.Record{rec("a", "Dana Katz", "Submitted")}}
	s := New(backend)
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed FetchAll() = %v", err)
	}
	s.Select("a")

	s.SetView(ViewDeleted)
	snap := s.Snapshot()
	if snap.View != ViewDeleted {
		t.Fatalf("View = %q, want deleted", snap.View)
	}
	if snap.SelectedID != "" {
		t.Fatalf("SelectedID = %q after view switch, want empty", snap.SelectedID)
	}

	// Same view again is a no-op and must not clear anything.
	s.Select("a")
	s.SetView(ViewDeleted)
	if got := s.Snapshot().SelectedID; got != "a" {
		t.Fatalf("SelectedID = %q after no-op view set, want a", got)
	}
}
