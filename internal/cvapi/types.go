package cvapi

// Record mirrors a CV document as returned by the recruiting backend.
type Record struct {
	ID            string               `json:"id"`
	FileMetadata  *FileMetadata        `json:"file_metadata,omitempty"`
	ExtractedText string               `json:"extracted_text,omitempty"`
	KnownData     KnownData            `json:"known_data"`
	IsDeleted     bool                 `json:"is_deleted"`
	CurrentStatus string               `json:"current_status"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`
	CreatedAt     string               `json:"created_at,omitempty"`
	UpdatedAt     string               `json:"updated_at,omitempty"`
	DeletedAt     string               `json:"deleted_at,omitempty"`
	CVURL         string               `json:"cv_url,omitempty"`
	ProfileImage  string               `json:"profile_image,omitempty"`
}

// FileMetadata describes the uploaded CV file.
type FileMetadata struct {
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
}

// KnownData carries the free-text fields the backend extracted or was told
// about a candidate. Everything is a string on the wire, including numbers
// and yes/no answers; normalization happens in the candidate package.
type KnownData struct {
	Name                    string `json:"name,omitempty"`
	LatinName               string `json:"latin_name,omitempty"`
	HebrewName              string `json:"hebrew_name,omitempty"`
	Email                   string `json:"email,omitempty"`
	PhoneNumber             string `json:"phone_number,omitempty"`
	Age                     string `json:"age,omitempty"`
	Nationality             string `json:"nationality,omitempty"`
	Campaign                string `json:"campaign,omitempty"`
	Notes                   string `json:"notes,omitempty"`
	JobType                 string `json:"job_type,omitempty"`
	MatchScore              string `json:"match_score,omitempty"`
	ClassExplain            string `json:"class_explain,omitempty"`
	SkillsSummary           string `json:"skills_summary,omitempty"`
	EnglishLevel            string `json:"english_level,omitempty"`
	CanTravelEurope         string `json:"can_travel_europe,omitempty"`
	CanVisitIsrael          string `json:"can_visit_israel,omitempty"`
	LivesInEurope           string `json:"lives_in_europe,omitempty"`
	NativeIsraeli           string `json:"native_israeli,omitempty"`
	RemembersJobApplication string `json:"remembers_job_application,omitempty"`
}

// StatusHistoryEntry is one append-only status transition.
type StatusHistoryEntry struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note,omitempty"`
}

// UploadResponse is returned by POST /upload-cv.
type UploadResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UploadFile is an optional CV file attached to an upload.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadRequest carries the multipart form fields for POST /upload-cv.
// Empty fields are omitted from the form.
type UploadRequest struct {
	File     *UploadFile
	Name     string
	Phone    string
	Email    string
	Campaign string
	Notes    string
}

// UpdateRequest is the partial-update payload for PATCH /cv/{id}.
// Nil pointers are omitted so untouched fields stay untouched server-side.
type UpdateRequest struct {
	LatinName               *string `json:"latin_name,omitempty"`
	HebrewName              *string `json:"hebrew_name,omitempty"`
	Email                   *string `json:"email,omitempty"`
	Campaign                *string `json:"campaign,omitempty"`
	Age                     *string `json:"age,omitempty"`
	Nationality             *string `json:"nationality,omitempty"`
	CanTravelEurope         *string `json:"can_travel_europe,omitempty"`
	CanVisitIsrael          *string `json:"can_visit_israel,omitempty"`
	LivesInEurope           *string `json:"lives_in_europe,omitempty"`
	NativeIsraeli           *string `json:"native_israeli,omitempty"`
	EnglishLevel            *string `json:"english_level,omitempty"`
	RemembersJobApplication *string `json:"remembers_job_application,omitempty"`
	SkillsSummary           *string `json:"skills_summary,omitempty"`
	JobType                 *string `json:"job_type,omitempty"`
	MatchScore              *string `json:"match_score,omitempty"`
	ClassExplain            *string `json:"class_explain,omitempty"`
	Notes                   *string `json:"notes,omitempty"`
}

// StatusUpdateRequest is the payload for PATCH /cv/{id}/status. The backend
// accepts either the legacy numeric id or the status string; both are sent.
type StatusUpdateRequest struct {
	StatusID int    `json:"status_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

// SearchParams configures GET /cv/search. Empty values are omitted from the
// query string; everything is string-valued on the wire.
type SearchParams struct {
	FreeText      string
	CurrentStatus string
	JobType       string
	MatchScore    string
	Campaign      string
	Country       string
}

// ValidationError is one entry of the backend's structured error payload.
type ValidationError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// errorBody is the backend's validation-error envelope.
type errorBody struct {
	Detail []ValidationError `json:"detail"`
}

// String returns a pointer to s, for building partial UpdateRequests.
func String(s string) *string {
	return &s
}
