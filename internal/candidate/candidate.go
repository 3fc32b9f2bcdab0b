package candidate

import (
	"strings"
	"time"
)

// Status is the closed set of pipeline stages the dashboard understands.
// The backend uses a richer internal state machine; everything it reports
// is folded into one of these four at the mapping boundary.
type Status string

const (
	StatusSubmitted            Status = "submitted"
	StatusBotInterview         Status = "bot_interview"
	StatusReadyForBotInterview Status = "ready_for_bot_interview"
	StatusReadyForRecruit      Status = "ready_for_recruit"
)

// JobType classifies a candidate's target role. The zero value means
// unclassified, which is semantically distinct from every concrete type.
type JobType string

const (
	JobTypeUnknown             JobType = ""
	JobTypeHeadquartersStaff   JobType = "headquarters_staff"
	JobTypeTrainingInstruction JobType = "training_instruction"
	JobTypeSales               JobType = "sales"
	JobTypeOperationalWorker   JobType = "operational_worker"
)

// Known reports whether the candidate has been classified at all.
func (j JobType) Known() bool { return j != JobTypeUnknown }

// Group is an AI classification result with an optional score in [0,100].
type Group struct {
	Name       string
	MatchScore *int
}

// StatusEvent is one entry of a candidate's append-only status history.
// The raw backend status string is kept as-is; history is display-only.
type StatusEvent struct {
	Status    string
	Timestamp time.Time
	Note      string
}

// MatchParameter records whether one screening parameter matched.
type MatchParameter struct {
	Name    string
	Matched bool
}

// BotMessage is a single message of the WhatsApp bot interview.
type BotMessage struct {
	Sender    string // "bot" or "user"
	Text      string
	Timestamp time.Time
}

// BotConversation is the transcript of a candidate's bot interview.
type BotConversation struct {
	Messages    []BotMessage
	StartedAt   time.Time
	CompletedAt time.Time
}

// Candidate is the normalized in-memory representation used by the store
// and the UI. Instances are treated as immutable once built: refreshes
// replace whole lists, never mutate fields in place.
type Candidate struct {
	ID             string
	FullName       string
	FullNameHebrew string
	Email          string
	Phone          string
	Age            int // 0 means unknown
	Citizenship    string
	CampaignSource string

	Status        Status
	JobType       JobType
	StatusHistory []StatusEvent

	PrimaryGroup      Group
	AlternativeGroups []Group
	MatchedParameters []MatchParameter
	AISkillsSummary   string
	ClassExplain      string

	Notes       string
	ManualNotes string
	Warnings    []string

	CVURL         string
	ExtractedText string
	ProfileImage  string
	CreatedAt     time.Time

	Deleted   bool
	DeletedAt time.Time

	// Screening answers derived from free-text yes/no fields. Always
	// concrete booleans, never tri-state.
	CanTravelEurope   bool
	CanTravelIsrael   bool
	LivesInEurope     bool
	NativeIsraeli     bool
	SpeaksEnglish     bool
	RemembersPosition bool

	// Client-only annotations. The mapper never populates these and no
	// backend value exists for them; they survive refreshes through
	// reconciliation until explicitly cleared.
	IsNew           bool
	StatusChangedAt time.Time
	NewAnswersAt    time.Time

	BotConversation *BotConversation
}

// statusWire maps each internal status to the string form the backend's
// status endpoint accepts.
var statusWire = map[Status]string{
	StatusSubmitted:            "Submitted",
	StatusBotInterview:         "Bot Interview",
	StatusReadyForBotInterview: "Ready For Bot Interview",
	StatusReadyForRecruit:      "Ready For Recruit",
}

// statusLegacyID maps each internal status to the backend's legacy numeric
// status id (1=Submitted, 4=Bot Interview, 5=Waiting Classification,
// 7=Ready For Recruit).
var statusLegacyID = map[Status]int{
	StatusSubmitted:            1,
	StatusBotInterview:         4,
	StatusReadyForBotInterview: 5,
	StatusReadyForRecruit:      7,
}

// Wire returns the backend string form of the status.
func (s Status) Wire() string {
	if wire, ok := statusWire[s]; ok {
		return wire
	}
	return "Submitted"
}

// LegacyID returns the backend's numeric status id.
func (s Status) LegacyID() int {
	if id, ok := statusLegacyID[s]; ok {
		return id
	}
	return 1
}

// Label returns the status in human-readable form.
func (s Status) Label() string {
	return s.Wire()
}

// AllStatuses lists the closed status set in pipeline order.
func AllStatuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusReadyForBotInterview,
		StatusBotInterview,
		StatusReadyForRecruit,
	}
}

// AllJobTypes lists the concrete job types.
func AllJobTypes() []JobType {
	return []JobType{
		JobTypeHeadquartersStaff,
		JobTypeTrainingInstruction,
		JobTypeSales,
		JobTypeOperationalWorker,
	}
}

// Label returns the job type in human-readable form, "Unclassified" for the
// zero value.
func (j JobType) Label() string {
	if !j.Known() {
		return "Unclassified"
	}
	parts := strings.Split(string(j), "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

const backendTimestampLayout = "2006-01-02 15:04:05"

// ParseTime parses a backend-serialized timestamp, returning the zero time
// for empty or unrecognized values.
func ParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(backendTimestampLayout, value, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	return time.Time{}
}
