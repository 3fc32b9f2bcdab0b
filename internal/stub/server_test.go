package stub

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/cvapi"
)

func newTestClient(t *testing.T, s *Server) *cvapi.Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	client, err := cvapi.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestServer_ListSeparatesDeleted(t *testing.T) {
	client := newTestClient(t, NewServer())
	ctx := context.Background()

	live, err := client.List(ctx, false)
	if err != nil {
		t.Fatalf("List(live) error: %v", err)
	}
	deleted, err := client.List(ctx, true)
	if err != nil {
		t.Fatalf("List(deleted) error: %v", err)
	}
	if len(live) == 0 || len(deleted) == 0 {
		t.Fatalf("seed lists: live=%d deleted=%d, want both non-empty", len(live), len(deleted))
	}
	for _, rec := range live {
		if rec.IsDeleted {
			t.Fatalf("live list contains deleted record %s", rec.ID)
		}
	}
	for _, rec := range deleted {
		if !rec.IsDeleted {
			t.Fatalf("deleted list contains live record %s", rec.ID)
		}
	}
}

func TestServer_UploadThenGet(t *testing.T) {
	client := newTestClient(t, NewEmptyServer())
	ctx := context.Background()

	resp, err := client.Upload(ctx, cvapi.UploadRequest{
		File:     &cvapi.UploadFile{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		Name:     "Noa Bar",
		Email:    "noa.bar@email.com",
		Phone:    "+972-54-000-1111",
		Campaign: "Referral",
	})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("Upload() returned empty id")
	}
	if resp.Status != candidate.StatusSubmitted.Wire() {
		t.Fatalf("Upload() status = %q, want %q", resp.Status, candidate.StatusSubmitted.Wire())
	}

	rec, err := client.Get(ctx, resp.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.KnownData.Name != "Noa Bar" || rec.KnownData.Campaign != "Referral" {
		t.Fatalf("Get() known data = %#v, want upload fields", rec.KnownData)
	}
	if rec.FileMetadata == nil {
		t.Fatal("Get() file metadata missing")
	}
	if rec.FileMetadata.Filename != "cv.pdf" {
		t.Fatalf("FileMetadata.Filename = %q, want cv.pdf", rec.FileMetadata.Filename)
	}
	if len(rec.StatusHistory) != 1 {
		t.Fatalf("StatusHistory = %#v, want one submitted entry", rec.StatusHistory)
	}
}

func TestServer_StatusTransitionAppendsHistory(t *testing.T) {
	client := newTestClient(t, NewEmptyServer())
	ctx := context.Background()

	resp, err := client.Upload(ctx, cvapi.UploadRequest{Name: "Noa Bar"})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	rec, err := client.UpdateStatus(ctx, resp.ID, cvapi.StatusUpdateRequest{
		StatusID: candidate.StatusBotInterview.LegacyID(),
		Status:   candidate.StatusBotInterview.Wire(),
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if rec.CurrentStatus != candidate.StatusBotInterview.Wire() {
		t.Fatalf("CurrentStatus = %q, want bot interview", rec.CurrentStatus)
	}
	if len(rec.StatusHistory) != 2 {
		t.Fatalf("StatusHistory length = %d, want 2 (append-only)", len(rec.StatusHistory))
	}
	if rec.StatusHistory[0].Status != candidate.StatusSubmitted.Wire() {
		t.Fatalf("history[0] = %q, original entry must survive", rec.StatusHistory[0].Status)
	}

	// Legacy numeric id alone is enough.
	rec, err = client.UpdateStatus(ctx, resp.ID, cvapi.StatusUpdateRequest{StatusID: 7})
	if err != nil {
		t.Fatalf("UpdateStatus(legacy id) error: %v", err)
	}
	if rec.CurrentStatus != candidate.StatusReadyForRecruit.Wire() {
		t.Fatalf("CurrentStatus = %q, want ready for recruit from legacy id 7", rec.CurrentStatus)
	}
}

func TestServer_DeleteAndRestore(t *testing.T) {
	client := newTestClient(t, NewEmptyServer())
	ctx := context.Background()

	resp, err := client.Upload(ctx, cvapi.UploadRequest{Name: "Noa Bar"})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if err := client.Delete(ctx, resp.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	live, err := client.List(ctx, false)
	if err != nil {
		t.Fatalf("List(live) error: %v", err)
	}
	if len(live) != 0 {
		t.Fatalf("live list after delete = %d records, want 0", len(live))
	}
	deleted, err := client.List(ctx, true)
	if err != nil {
		t.Fatalf("List(deleted) error: %v", err)
	}
	if len(deleted) != 1 || deleted[0].DeletedAt == "" {
		t.Fatalf("deleted list = %#v, want one record with deleted_at", deleted)
	}

	rec, err := client.Restore(ctx, resp.ID)
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if rec.IsDeleted || rec.DeletedAt != "" {
		t.Fatalf("restored record = %#v, want live with cleared deleted_at", rec)
	}
}

func TestServer_SearchFilters(t *testing.T) {
	client := newTestClient(t, NewServer())
	ctx := context.Background()

	tests := []struct {
		name   string
		params cvapi.SearchParams
		verify func(t *testing.T, records []cvapi.Record)
	}{
		{
			name:   "free text matches name",
			params: cvapi.SearchParams{FreeText: "mitchell"},
			verify: func(t *testing.T, records []cvapi.Record) {
				if len(records) != 1 || records[0].KnownData.Name != "Sarah Mitchell" {
					t.Fatalf("records = %#v, want only Sarah Mitchell", records)
				}
			},
		},
		{
			name:   "status filter",
			params: cvapi.SearchParams{CurrentStatus: candidate.StatusSubmitted.Wire()},
			verify: func(t *testing.T, records []cvapi.Record) {
				if len(records) == 0 {
					t.Fatal("no submitted candidates found")
				}
				for _, rec := range records {
					if candidate.ParseStatus(rec.CurrentStatus) != candidate.StatusSubmitted {
						t.Fatalf("record %s status = %q, want submitted", rec.ID, rec.CurrentStatus)
					}
				}
			},
		},
		{
			name:   "match score band",
			params: cvapi.SearchParams{MatchScore: "90-100"},
			verify: func(t *testing.T, records []cvapi.Record) {
				if len(records) != 3 {
					t.Fatalf("band 90-100 = %d records, want 3", len(records))
				}
			},
		},
		{
			name:   "campaign and job type combine",
			params: cvapi.SearchParams{Campaign: "LinkedIn Campaign Q4", JobType: "headquarters_staff"},
			verify: func(t *testing.T, records []cvapi.Record) {
				if len(records) != 2 {
					t.Fatalf("combined filter = %d records, want 2", len(records))
				}
			},
		},
		{
			name:   "deleted records excluded",
			params: cvapi.SearchParams{FreeText: "anderson"},
			verify: func(t *testing.T, records []cvapi.Record) {
				if len(records) != 0 {
					t.Fatalf("search found deleted record: %#v", records)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := client.Search(ctx, tt.params)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			tt.verify(t, records)
		})
	}
}

func TestServer_TriggersAdvanceWaitingCandidates(t *testing.T) {
	client := newTestClient(t, NewServer())
	ctx := context.Background()

	if err := client.TriggerBotProcessor(ctx); err != nil {
		t.Fatalf("TriggerBotProcessor() error: %v", err)
	}
	records, err := client.List(ctx, false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, rec := range records {
		if candidate.ParseStatus(rec.CurrentStatus) == candidate.StatusReadyForBotInterview {
			t.Fatalf("record %s still waiting for bot after trigger", rec.ID)
		}
	}

	if err := client.TriggerClassification(ctx); err != nil {
		t.Fatalf("TriggerClassification() error: %v", err)
	}
	records, err = client.List(ctx, false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, rec := range records {
		if candidate.ParseStatus(rec.CurrentStatus) == candidate.StatusSubmitted {
			t.Fatalf("record %s still unclassified after trigger", rec.ID)
		}
	}
}

func TestServer_UnknownIDReturns404(t *testing.T) {
	client := newTestClient(t, NewEmptyServer())

	_, err := client.Get(context.Background(), "no-such-id")
	var apiErr *cvapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %v, want *cvapi.APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Fatalf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "CV not found" {
		t.Fatalf("Message = %q, want detail passed through", apiErr.Message)
	}
}
