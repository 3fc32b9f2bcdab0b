// Package stub implements an in-memory CV backend for development and
// tests. It speaks the same HTTP contract as the production backend, so
// the client and store can run against it unmodified.
package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/cvapi"
)

// Server is an in-memory CV backend for development and tests. It
// implements the same HTTP contract the real backend exposes, including
// soft delete, append-only status history, and the batch trigger
// endpoints. State lives in a map guarded by a mutex; restarts lose
// everything, which is the point.
type Server struct {
	mu      sync.Mutex
	records map[string]*cvapi.Record
	order   []string
	mux     *http.ServeMux
	now     func() time.Time
}

// NewServer builds a stub backend seeded with sample candidates.
func NewServer() *Server {
	s := &Server{
		records: make(map[string]*cvapi.Record),
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	s.routes()
	for _, rec := range seedRecords(s.now()) {
		s.insert(rec)
	}
	return s
}

// NewEmptyServer builds a stub backend with no seed data; tests start
// from a known-empty state and upload what they need.
func NewEmptyServer() *Server {
	s := &Server{
		records: make(map[string]*cvapi.Record),
		mux:     http.NewServeMux(),
		now:     time.Now,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /cv", s.handleList)
	s.mux.HandleFunc("GET /cv/search", s.handleSearch)
	s.mux.HandleFunc("GET /cv/{id}", s.handleGet)
	s.mux.HandleFunc("PATCH /cv/{id}", s.handleUpdate)
	s.mux.HandleFunc("PATCH /cv/{id}/status", s.handleUpdateStatus)
	s.mux.HandleFunc("DELETE /cv/{id}", s.handleDelete)
	s.mux.HandleFunc("POST /cv/{id}/restore", s.handleRestore)
	s.mux.HandleFunc("POST /upload-cv", s.handleUpload)
	s.mux.HandleFunc("POST /process-waiting-for-bot", s.handleProcessWaitingBot)
	s.mux.HandleFunc("POST /process-waiting-classification", s.handleProcessClassification)
}

func (s *Server) insert(rec cvapi.Record) {
	s.records[rec.ID] = &rec
	s.order = append(s.order, rec.ID)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	deletedOnly := r.URL.Query().Get("deleted") == "true"

	s.mu.Lock()
	out := make([]cvapi.Record, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if rec.IsDeleted == deletedOnly {
			out = append(out, *rec)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	freeText := strings.ToLower(q.Get("free_text"))
	status := q.Get("current_status")
	jobType := q.Get("job_type")
	matchBand := q.Get("match_score")
	campaign := q.Get("campaign")
	country := q.Get("country")

	s.mu.Lock()
	out := make([]cvapi.Record, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if rec.IsDeleted {
			continue
		}
		if freeText != "" && !matchesFreeText(rec, freeText) {
			continue
		}
		if status != "" && !statusEqual(rec.CurrentStatus, status) {
			continue
		}
		if jobType != "" && string(candidate.ParseJobType(rec.KnownData.JobType)) != jobType {
			continue
		}
		if matchBand != "" && !matchesBand(rec.KnownData.MatchScore, matchBand) {
			continue
		}
		if campaign != "" && !strings.EqualFold(rec.KnownData.Campaign, campaign) {
			continue
		}
		if country != "" && !strings.EqualFold(rec.KnownData.Nationality, country) {
			continue
		}
		out = append(out, *rec)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "CV not found")
		return
	}
	writeJSON(w, http.StatusOK, *rec)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid multipart form")
		return
	}

	now := s.now().UTC().Format(time.RFC3339)
	rec := cvapi.Record{
		ID:            uuid.NewString(),
		CurrentStatus: candidate.StatusSubmitted.Wire(),
		CreatedAt:     now,
		UpdatedAt:     now,
		StatusHistory: []cvapi.StatusHistoryEntry{{
			Status:    candidate.StatusSubmitted.Wire(),
			Timestamp: now,
		}},
		KnownData: cvapi.KnownData{
			Name:        r.FormValue("name"),
			LatinName:   r.FormValue("name"),
			PhoneNumber: r.FormValue("phone"),
			Email:       r.FormValue("email"),
			Campaign:    r.FormValue("campaign"),
			Notes:       r.FormValue("notes"),
		},
	}
	if file, header, err := r.FormFile("file"); err == nil {
		file.Close()
		rec.FileMetadata = &cvapi.FileMetadata{
			Filename:    header.Filename,
			SizeBytes:   header.Size,
			ContentType: header.Header.Get("Content-Type"),
			UploadedAt:  now,
		}
	}

	s.mu.Lock()
	s.insert(rec)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, cvapi.UploadResponse{ID: rec.ID, Status: rec.CurrentStatus})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req cvapi.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid update payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "CV not found")
		return
	}
	applyUpdate(&rec.KnownData, req)
	rec.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, *rec)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req cvapi.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid status payload")
		return
	}

	target, ok := resolveStatus(req)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "unknown status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.records[r.PathValue("id")]
	if !found {
		writeError(w, http.StatusNotFound, "CV not found")
		return
	}
	s.transitionLocked(rec, target)
	writeJSON(w, http.StatusOK, *rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "CV not found")
		return
	}
	rec.IsDeleted = true
	rec.DeletedAt = s.now().UTC().Format(time.RFC3339)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "CV not found")
		return
	}
	rec.IsDeleted = false
	rec.DeletedAt = ""
	writeJSON(w, http.StatusOK, *rec)
}

// handleProcessWaitingBot advances every candidate that is ready for a bot
// interview into the interview itself.
func (s *Server) handleProcessWaitingBot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	moved := 0
	for _, id := range s.order {
		rec := s.records[id]
		if rec.IsDeleted {
			continue
		}
		if candidate.ParseStatus(rec.CurrentStatus) == candidate.StatusReadyForBotInterview {
			s.transitionLocked(rec, candidate.StatusBotInterview)
			moved++
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]int{"processed": moved})
}

// handleProcessClassification classifies submitted candidates: they gain a
// job type when missing and move on to ready-for-bot-interview.
func (s *Server) handleProcessClassification(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	moved := 0
	for _, id := range s.order {
		rec := s.records[id]
		if rec.IsDeleted {
			continue
		}
		if candidate.ParseStatus(rec.CurrentStatus) == candidate.StatusSubmitted {
			if rec.KnownData.JobType == "" {
				rec.KnownData.JobType = string(candidate.JobTypeOperationalWorker)
			}
			s.transitionLocked(rec, candidate.StatusReadyForBotInterview)
			moved++
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]int{"processed": moved})
}

func (s *Server) transitionLocked(rec *cvapi.Record, target candidate.Status) {
	now := s.now().UTC().Format(time.RFC3339)
	rec.CurrentStatus = target.Wire()
	rec.UpdatedAt = now
	rec.StatusHistory = append(rec.StatusHistory, cvapi.StatusHistoryEntry{
		Status:    target.Wire(),
		Timestamp: now,
	})
}

// resolveStatus accepts the status string, the legacy numeric id, or both;
// the string wins when both are present.
func resolveStatus(req cvapi.StatusUpdateRequest) (candidate.Status, bool) {
	if req.Status != "" {
		return candidate.ParseStatus(req.Status), true
	}
	if req.StatusID > 0 {
		return candidate.ParseStatus(strconv.Itoa(req.StatusID)), true
	}
	return "", false
}

func statusEqual(recorded, query string) bool {
	return candidate.ParseStatus(recorded) == candidate.ParseStatus(query)
}

func matchesFreeText(rec *cvapi.Record, needle string) bool {
	haystacks := []string{
		rec.KnownData.Name,
		rec.KnownData.LatinName,
		rec.KnownData.HebrewName,
		rec.KnownData.Email,
		rec.KnownData.PhoneNumber,
		rec.KnownData.Notes,
		rec.KnownData.Campaign,
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// matchesBand checks a raw match score against a band like "80-89",
// "90-100", or "below 70". Records without a parsable score never match.
func matchesBand(raw, band string) bool {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if band == "below 70" {
		return score < 70
	}
	lo, hi, found := strings.Cut(band, "-")
	if !found {
		return false
	}
	min, err1 := strconv.Atoi(strings.TrimSpace(lo))
	max, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil {
		return false
	}
	return score >= min && score <= max
}

func applyUpdate(data *cvapi.KnownData, req cvapi.UpdateRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&data.LatinName, req.LatinName)
	set(&data.HebrewName, req.HebrewName)
	set(&data.Email, req.Email)
	set(&data.Campaign, req.Campaign)
	set(&data.Age, req.Age)
	set(&data.Nationality, req.Nationality)
	set(&data.CanTravelEurope, req.CanTravelEurope)
	set(&data.CanVisitIsrael, req.CanVisitIsrael)
	set(&data.LivesInEurope, req.LivesInEurope)
	set(&data.NativeIsraeli, req.NativeIsraeli)
	set(&data.EnglishLevel, req.EnglishLevel)
	set(&data.RemembersJobApplication, req.RemembersJobApplication)
	set(&data.SkillsSummary, req.SkillsSummary)
	set(&data.JobType, req.JobType)
	set(&data.MatchScore, req.MatchScore)
	set(&data.ClassExplain, req.ClassExplain)
	set(&data.Notes, req.Notes)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
