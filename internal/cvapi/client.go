package cvapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is the typed error raised for every failed backend call. A
// StatusCode of 0 means the request never produced an HTTP response
// (network unreachable, DNS failure, timeout); the underlying cause is
// attached and reachable via errors.Unwrap.
type APIError struct {
	StatusCode int
	Message    string
	Detail     []ValidationError
	cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("cv api: %s", e.Message)
	}
	return fmt.Sprintf("cv api: %s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.cause }

// IsTransport reports whether the error happened below the HTTP layer.
func (e *APIError) IsTransport() bool { return e.StatusCode == 0 }

// Backend is the surface of the recruiting backend the rest of the
// application depends on. Implemented by *Client; stub implementations
// serve tests.
type Backend interface {
	List(ctx context.Context, deletedOnly bool) ([]Record, error)
	Search(ctx context.Context, params SearchParams) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Record, error)
	UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (Record, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (Record, error)
	TriggerBotProcessor(ctx context.Context) error
	TriggerClassification(ctx context.Context) error
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the recruiting backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "recdeck/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// accepted and defaults to http.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// List retrieves all non-deleted records, or all soft-deleted records when
// deletedOnly is set. The two populations are never mixed in one response.
func (c *Client) List(ctx context.Context, deletedOnly bool) ([]Record, error) {
	rel := &url.URL{Path: "/cv"}
	if deletedOnly {
		rel.RawQuery = url.Values{"deleted": {"true"}}.Encode()
	}
	var records []Record
	if err := c.do(ctx, http.MethodGet, rel, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Search retrieves records matching the given filters.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Record, error) {
	values := url.Values{}
	if v := strings.TrimSpace(params.FreeText); v != "" {
		values.Set("free_text", v)
	}
	if v := strings.TrimSpace(params.CurrentStatus); v != "" {
		values.Set("current_status", v)
	}
	if v := strings.TrimSpace(params.JobType); v != "" {
		values.Set("job_type", v)
	}
	if v := strings.TrimSpace(params.MatchScore); v != "" {
		values.Set("match_score", v)
	}
	if v := strings.TrimSpace(params.Campaign); v != "" {
		values.Set("campaign", v)
	}
	if v := strings.TrimSpace(params.Country); v != "" {
		values.Set("country", v)
	}
	rel := &url.URL{Path: "/cv/search", RawQuery: values.Encode()}
	var records []Record
	if err := c.do(ctx, http.MethodGet, rel, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get retrieves a single record by id.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, recordPath(id), nil, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Upload creates a new candidate record via the multipart upload endpoint.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (UploadResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if req.File != nil {
		part, err := form.CreateFormFile("file", req.File.Name)
		if err != nil {
			return UploadResponse{}, fmt.Errorf("build upload form: %w", err)
		}
		if _, err := part.Write(req.File.Data); err != nil {
			return UploadResponse{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	fields := map[string]string{
		"name":     req.Name,
		"phone":    req.Phone,
		"email":    req.Email,
		"campaign": req.Campaign,
		"notes":    req.Notes,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(key, value); err != nil {
			return UploadResponse{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return UploadResponse{}, fmt.Errorf("build upload form: %w", err)
	}

	var resp UploadResponse
	rel := &url.URL{Path: "/upload-cv"}
	err := c.doBody(ctx, http.MethodPost, rel, &buf, form.FormDataContentType(), &resp)
	if err != nil {
		return UploadResponse{}, err
	}
	return resp, nil
}

// Update applies a partial update and returns the canonical record.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodPatch, recordPath(id), req, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// UpdateStatus asks the backend to transition a candidate's status and
// returns the canonical record. The backend owns the status machine; the
// caller must not assume the transition was applied as requested.
func (c *Client) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (Record, error) {
	rel := &url.URL{Path: "/cv/" + id + "/status"}
	var record Record
	if err := c.do(ctx, http.MethodPatch, rel, req, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Delete soft-deletes a record.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, recordPath(id), nil, nil)
}

// Restore brings a soft-deleted record back and returns it.
func (c *Client) Restore(ctx context.Context, id string) (Record, error) {
	rel := &url.URL{Path: "/cv/" + id + "/restore"}
	var record Record
	if err := c.do(ctx, http.MethodPost, rel, nil, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// TriggerBotProcessor kicks the backend's bot-interview processor. Fire and
// forget; candidates waiting for an interview are picked up server-side.
func (c *Client) TriggerBotProcessor(ctx context.Context) error {
	rel := &url.URL{Path: "/process-waiting-for-bot"}
	return c.do(ctx, http.MethodPost, rel, nil, nil)
}

// TriggerClassification kicks the backend's AI classification processor.
func (c *Client) TriggerClassification(ctx context.Context) error {
	rel := &url.URL{Path: "/process-waiting-classification"}
	return c.do(ctx, http.MethodPost, rel, nil, nil)
}

func recordPath(id string) *url.URL {
	return &url.URL{Path: "/cv/" + id}
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, payload any, dest any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doBody(ctx, method, rel, body, contentType, dest)
}

func (c *Client) doBody(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{StatusCode: 0, Message: err.Error(), cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newStatusError(resp)
	}
	if dest == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	// Some mutations answer 200 with an empty body.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newStatusError builds an APIError from a non-2xx response, preferring the
// first structured validation message over the bare status text.
func newStatusError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Detail = body.Detail
		if len(body.Detail) > 0 && strings.TrimSpace(body.Detail[0].Msg) != "" {
			apiErr.Message = body.Detail[0].Msg
		}
		return apiErr
	}
	// Plain errors carry a bare string detail instead of the structured
	// validation list.
	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &plain); err == nil && strings.TrimSpace(plain.Detail) != "" {
		apiErr.Message = plain.Detail
	}
	return apiErr
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, fmt.Errorf("api base is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
