package state

import (
	"context"
	"sync"
	"time"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/cvapi"
)

// View selects which candidate population the store holds. Live and
// soft-deleted candidates come from separate queries and are never mixed.
type View string

const (
	ViewHome    View = "home"
	ViewDeleted View = "deleted"
)

// Filters are the server-side search criteria. Zero values mean "no
// filter"; the job-type filter cannot select unclassified candidates,
// matching the backend's search semantics.
type Filters struct {
	Search    string
	Status    candidate.Status // "" = all
	JobType   candidate.JobType
	Match     string // match-score band, e.g. "80-89"
	Campaign  string
	Countries []string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Search != "" || f.Status != "" || f.JobType != candidate.JobTypeUnknown ||
		f.Match != "" || f.Campaign != "" || len(f.Countries) > 0
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Candidates          []candidate.Candidate
	SelectedID          string
	View                View
	Filters             Filters
	LastSyncedAt        time.Time
	IsSyncing           bool
	IsLoading           bool
	Error               string
	ConsecutiveFailures int // Number of consecutive background sync failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Selected returns the currently selected candidate, or nil.
func (s Snapshot) Selected() *candidate.Candidate {
	if s.SelectedID == "" {
		return nil
	}
	for i := range s.Candidates {
		if s.Candidates[i].ID == s.SelectedID {
			return &s.Candidates[i]
		}
	}
	return nil
}

// Store holds the process-wide candidate state and composes the API
// client, mapper, change detector, and reconciler behind an action
// surface. Mutations replace the candidate list wholesale; readers always
// see a complete snapshot, never a partial update.
type Store struct {
	mu      sync.RWMutex
	backend cvapi.Backend

	candidates          []candidate.Candidate
	selectedID          string
	view                View
	filters             Filters
	lastSyncedAt        time.Time
	isSyncing           bool
	isLoading           bool
	lastError           string
	consecutiveFailures int
}

// New builds a Store backed by the given client.
func New(backend cvapi.Backend) *Store {
	return &Store{
		backend: backend,
		view:    ViewHome,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Candidates:          cloneList(s.candidates),
		SelectedID:          s.selectedID,
		View:                s.view,
		Filters:             s.filters,
		LastSyncedAt:        s.lastSyncedAt,
		IsSyncing:           s.isSyncing,
		IsLoading:           s.isLoading,
		Error:               s.lastError,
		ConsecutiveFailures: s.consecutiveFailures,
	}
}

// FetchAll replaces the candidate list from the backend for the active
// view. User-initiated: failures land in the error field for display and
// leave the previous list intact.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	deletedOnly := s.view == ViewDeleted
	s.mu.Unlock()

	records, err := s.backend.List(ctx, deletedOnly)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.replaceLocked(candidate.MapRecords(records))
	s.lastSyncedAt = time.Now()
	s.consecutiveFailures = 0
	return nil
}

// Search replaces the candidate list with the backend's results for the
// current filters.
func (s *Store) Search(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	params := s.searchParamsLocked()
	s.mu.Unlock()

	records, err := s.backend.Search(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.replaceLocked(candidate.MapRecords(records))
	s.lastSyncedAt = time.Now()
	s.consecutiveFailures = 0
	return nil
}

// SilentFetchAll is the background-sync variant of FetchAll: it flips the
// syncing flag instead of the loading flag, commits only when the change
// detector sees a real difference, and never touches the error field.
// Returns whether a commit happened.
func (s *Store) SilentFetchAll(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.isSyncing = true
	deletedOnly := s.view == ViewDeleted
	s.mu.Unlock()

	records, err := s.backend.List(ctx, deletedOnly)
	if err != nil {
		return s.silentFailed(err)
	}
	return s.silentCommit(candidate.MapRecords(records))
}

// SilentSearch is the background-sync variant of Search.
func (s *Store) SilentSearch(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.isSyncing = true
	params := s.searchParamsLocked()
	s.mu.Unlock()

	records, err := s.backend.Search(ctx, params)
	if err != nil {
		return s.silentFailed(err)
	}
	return s.silentCommit(candidate.MapRecords(records))
}

// SilentRefresh dispatches to SilentSearch when filters are active, else
// SilentFetchAll. This is the poll function the poller drives.
func (s *Store) SilentRefresh(ctx context.Context) (bool, error) {
	s.mu.RLock()
	filtered := s.filters.Active()
	s.mu.RUnlock()
	if filtered {
		return s.SilentSearch(ctx)
	}
	return s.SilentFetchAll(ctx)
}

func (s *Store) silentFailed(err error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isSyncing = false
	// Stale-but-valid beats an error state for a background sync; prior
	// data and the error field stay untouched.
	s.consecutiveFailures++
	return false, err
}

func (s *Store) silentCommit(fresh []candidate.Candidate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isSyncing = false
	s.lastSyncedAt = time.Now()
	s.consecutiveFailures = 0
	if !candidate.ListChanged(s.candidates, fresh) {
		// Keep list identity so nothing downstream re-renders.
		return false, nil
	}
	s.replaceLocked(candidate.Reconcile(s.candidates, fresh))
	return true, nil
}

// AddCandidate uploads a new candidate, refreshes the list to pick up the
// canonical record, and flags the new id so the UI can badge it. Create
// and refresh are independent requests: if the refresh fails the candidate
// surfaces on the next successful poll instead.
func (s *Store) AddCandidate(ctx context.Context, req cvapi.UploadRequest) (string, error) {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	resp, err := s.backend.Upload(ctx, req)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.isLoading = false
		s.lastError = err.Error()
		return "", err
	}

	if err := s.FetchAll(ctx); err != nil {
		return resp.ID, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = candidate.MarkNew(s.candidates, resp.ID)
	return resp.ID, nil
}

// UpdateCandidate applies a partial update and swaps in the canonical
// record the backend returns.
func (s *Store) UpdateCandidate(ctx context.Context, id string, req cvapi.UpdateRequest) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	record, err := s.backend.Update(ctx, id, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.swapEntryLocked(candidate.MapRecord(record))
	return nil
}

// UpdateStatus requests a status transition. The backend owns the status
// machine: nothing changes locally until its canonical record comes back.
func (s *Store) UpdateStatus(ctx context.Context, id string, status candidate.Status) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	record, err := s.backend.UpdateStatus(ctx, id, cvapi.StatusUpdateRequest{
		StatusID: status.LegacyID(),
		Status:   status.Wire(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.swapEntryLocked(candidate.MapRecord(record))
	return nil
}

// DeleteCandidate soft-deletes a candidate and drops it from the list.
func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	err := s.backend.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	kept := make([]candidate.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.candidates = kept
	if s.selectedID == id {
		s.selectedID = ""
	}
	return nil
}

// RestoreCandidate undoes a soft delete and swaps in the restored record.
func (s *Store) RestoreCandidate(ctx context.Context, id string) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	record, err := s.backend.Restore(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.swapEntryLocked(candidate.MapRecord(record))
	return nil
}

// FetchByID refreshes a single candidate and selects it.
func (s *Store) FetchByID(ctx context.Context, id string) error {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()

	record, err := s.backend.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.swapEntryLocked(candidate.MapRecord(record))
	s.selectedID = id
	return nil
}

// TriggerInterview asks the backend to process candidates waiting for a
// bot interview. The effect shows up via later polls.
func (s *Store) TriggerInterview(ctx context.Context) error {
	if err := s.backend.TriggerBotProcessor(ctx); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastError = err.Error()
		return err
	}
	return nil
}

// TriggerClassification asks the backend to classify waiting candidates.
func (s *Store) TriggerClassification(ctx context.Context) error {
	if err := s.backend.TriggerClassification(ctx); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastError = err.Error()
		return err
	}
	return nil
}

// Select makes the given candidate the active selection and clears its
// transient annotations; viewing acknowledges the markers. An empty id
// clears the selection. The clear is committed to the list so the next
// poll's reconciliation cannot resurrect the flags.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.selectedID = ""
		return
	}
	s.candidates = candidate.ClearTransient(s.candidates, id)
	s.selectedID = id
}

// MarkStatusChanged stamps the "status just changed" annotation. Client-set
// only; the backend carries no value for it.
func (s *Store) MarkStatusChanged(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := cloneList(s.candidates)
	for i := range list {
		if list[i].ID == id {
			list[i].StatusChangedAt = time.Now()
		}
	}
	s.candidates = list
}

// MarkNewAnswers stamps the "new bot answers" annotation.
func (s *Store) MarkNewAnswers(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := cloneList(s.candidates)
	for i := range list {
		if list[i].ID == id {
			list[i].NewAnswersAt = time.Now()
		}
	}
	s.candidates = list
}

// ClearError dismisses the last action error.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// SetView switches between the live and deleted populations. The caller is
// expected to re-fetch; the store never triggers I/O from a setter.
func (s *Store) SetView(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view != s.view {
		s.view = view
		s.selectedID = ""
	}
}

// Filter setters. Pure state changes; the surrounding UI decides when to
// re-query.

func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = query
}

func (s *Store) SetStatusFilter(status candidate.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Status = status
}

func (s *Store) SetJobTypeFilter(jobType candidate.JobType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.JobType = jobType
}

func (s *Store) SetMatchFilter(band string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Match = band
}

func (s *Store) SetCampaignFilter(campaign string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Campaign = campaign
}

func (s *Store) SetCountriesFilter(countries []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Countries = append([]string(nil), countries...)
}

func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = Filters{}
}

// replaceLocked swaps in a new list and drops a selection whose id is no
// longer present (deleted remotely, or filtered out).
func (s *Store) replaceLocked(list []candidate.Candidate) {
	s.candidates = list
	if s.selectedID != "" && !candidate.ContainsID(list, s.selectedID) {
		s.selectedID = ""
	}
}

// swapEntryLocked replaces one candidate with a freshly mapped record,
// carrying its transient annotations forward like a reconciliation would.
func (s *Store) swapEntryLocked(fresh candidate.Candidate) {
	list := cloneList(s.candidates)
	for i := range list {
		if list[i].ID == fresh.ID {
			fresh.IsNew = list[i].IsNew
			fresh.StatusChangedAt = list[i].StatusChangedAt
			fresh.NewAnswersAt = list[i].NewAnswersAt
			list[i] = fresh
		}
	}
	s.candidates = list
}

func (s *Store) searchParamsLocked() cvapi.SearchParams {
	params := cvapi.SearchParams{
		FreeText:   s.filters.Search,
		Campaign:   s.filters.Campaign,
		MatchScore: s.filters.Match,
	}
	if s.filters.Status != "" {
		params.CurrentStatus = s.filters.Status.Wire()
	}
	if s.filters.JobType.Known() {
		params.JobType = string(s.filters.JobType)
	}
	if len(s.filters.Countries) > 0 {
		params.Country = s.filters.Countries[0]
	}
	return params
}

func cloneList(list []candidate.Candidate) []candidate.Candidate {
	if len(list) == 0 {
		return nil
	}
	dup := make([]candidate.Candidate, len(list))
	copy(dup, list)
	return dup
}
