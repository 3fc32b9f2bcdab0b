package candidate

import (
	"strconv"
	"strings"
	"time"

	"github.com/noamzr/recdeck/internal/cvapi"
)

// statusLookup folds every status string the backend is known to emit into
// the closed internal set. Keys are lowercase; lookups are case-insensitive.
// The backend mixes Title Case strings and legacy numeric codes ("1".."7").
var statusLookup = map[string]Status{
	"received":                "submitted",
	"submitted":               "submitted",
	"extracting":              "submitted",
	"waiting bot interview":   "submitted",
	"waiting classification":  "submitted",
	"ready for bot interview": "ready_for_bot_interview",
	"in classification":       "ready_for_bot_interview",
	"bot interview":           "bot_interview",
	"ready for recruit":       "ready_for_recruit",

	// Internal snake_case forms, in case they round-trip.
	"ready_for_bot_interview": "ready_for_bot_interview",
	"bot_interview":           "bot_interview",
	"ready_for_recruit":       "ready_for_recruit",

	// Legacy numeric status ids.
	"1": "submitted",
	"2": "submitted",
	"3": "submitted",
	"4": "bot_interview",
	"5": "ready_for_bot_interview",
	"6": "ready_for_bot_interview",
	"7": "ready_for_recruit",
}

// jobTypeLookup accepts the backend's Title Case forms, its short forms,
// and the internal snake_case forms. Keys are lowercase.
var jobTypeLookup = map[string]JobType{
	"headquarters_staff":   JobTypeHeadquartersStaff,
	"headquarters staff":   JobTypeHeadquartersStaff,
	"headquarters":         JobTypeHeadquartersStaff,
	"training_instruction": JobTypeTrainingInstruction,
	"training/instruction": JobTypeTrainingInstruction,
	"training":             JobTypeTrainingInstruction,
	"instruction":          JobTypeTrainingInstruction,
	"sales":                JobTypeSales,
	"operational_worker":   JobTypeOperationalWorker,
	"operational worker":   JobTypeOperationalWorker,
	"operational":          JobTypeOperationalWorker,
}

// ParseStatus normalizes a backend status string. Unrecognized values fold
// to StatusSubmitted: a half-known backend state must never break the list.
func ParseStatus(value string) Status {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return StatusSubmitted
	}
	if status, ok := statusLookup[key]; ok {
		return status
	}
	return StatusSubmitted
}

// ParseJobType normalizes a backend job-type string. The literal string
// "null" and the empty string both mean unclassified; so does anything
// unrecognized. Never defaults to a concrete job type.
func ParseJobType(value string) JobType {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" || key == "null" {
		return JobTypeUnknown
	}
	if jobType, ok := jobTypeLookup[key]; ok {
		return jobType
	}
	return JobTypeUnknown
}

// parseScore parses a match score string into [0,100], treating empty,
// "null", and unparsable values as absent.
func parseScore(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	score := int(f)
	if score < 0 || score > 100 {
		return nil
	}
	return &score
}

// parseAge parses an age string; "0" is the backend's sentinel for unknown.
func parseAge(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return 0
	}
	age, err := strconv.Atoi(trimmed)
	if err != nil || age < 0 {
		return 0
	}
	return age
}

// yes reports whether a free-text answer is affirmative. Only an exact
// case-insensitive "yes" or "true" counts; absent and anything else is false.
func yes(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.EqualFold(trimmed, "yes") || strings.EqualFold(trimmed, "true")
}

// MapRecord converts a wire record into the internal entity. It is pure and
// total: malformed or missing fields yield defaults, never an error, so a
// single bad record cannot take down a whole list refresh.
func MapRecord(rec cvapi.Record) Candidate {
	known := rec.KnownData

	fullName := known.LatinName
	if fullName == "" {
		fullName = known.Name
	}

	history := make([]StatusEvent, 0, len(rec.StatusHistory))
	for _, entry := range rec.StatusHistory {
		history = append(history, StatusEvent{
			Status:    entry.Status,
			Timestamp: ParseTime(entry.Timestamp),
			Note:      entry.Note,
		})
	}

	groupName := known.ClassExplain
	if groupName == "" {
		groupName = "Unclassified"
	}

	summary := known.SkillsSummary
	if summary == "" {
		summary = rec.ExtractedText
	}

	createdAt := time.Time{}
	if rec.FileMetadata != nil {
		createdAt = ParseTime(rec.FileMetadata.UploadedAt)
	}
	if createdAt.IsZero() {
		createdAt = ParseTime(rec.CreatedAt)
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	englishLevel := strings.ToLower(strings.TrimSpace(known.EnglishLevel))
	speaksEnglish := englishLevel != "" && englishLevel != "none"

	return Candidate{
		ID:             rec.ID,
		FullName:       fullName,
		FullNameHebrew: known.HebrewName,
		Email:          known.Email,
		Phone:          known.PhoneNumber,
		Age:            parseAge(known.Age),
		Citizenship:    known.Nationality,
		CampaignSource: known.Campaign,

		Status:        ParseStatus(rec.CurrentStatus),
		JobType:       ParseJobType(known.JobType),
		StatusHistory: history,

		PrimaryGroup: Group{
			Name:       groupName,
			MatchScore: parseScore(known.MatchScore),
		},
		AISkillsSummary: summary,
		ClassExplain:    known.ClassExplain,

		Notes: known.Notes,

		CVURL:         rec.CVURL,
		ExtractedText: rec.ExtractedText,
		ProfileImage:  rec.ProfileImage,
		CreatedAt:     createdAt,

		Deleted:   rec.IsDeleted,
		DeletedAt: ParseTime(rec.DeletedAt),

		CanTravelEurope:   yes(known.CanTravelEurope),
		CanTravelIsrael:   yes(known.CanVisitIsrael),
		LivesInEurope:     yes(known.LivesInEurope),
		NativeIsraeli:     yes(known.NativeIsraeli),
		SpeaksEnglish:     speaksEnglish,
		RemembersPosition: yes(known.RemembersJobApplication),
	}
}

// MapRecords converts a full wire response, preserving order.
func MapRecords(records []cvapi.Record) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, rec := range records {
		out = append(out, MapRecord(rec))
	}
	return out
}
