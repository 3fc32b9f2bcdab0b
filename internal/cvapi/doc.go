// Package cvapi provides an HTTP client for the recruiting backend.
//
// # Overview
//
// This package defines the API client for the CV service that stores
// candidate records, runs the status machine, and orchestrates the bot
// interviews. It handles HTTP communication, JSON and multipart
// serialization, and type-safe representation of the wire format. Nothing
// in this package interprets candidate data; normalization into the
// internal entity lives in the candidate package.
//
// # Endpoints
//
//   - POST /upload-cv: multipart create (optional file plus form fields)
//   - GET /cv?deleted=true: list records; deleted and live populations are
//     fetched separately and never mixed
//   - GET /cv/search: filtered search, all parameters optional strings
//   - GET /cv/{id}: fetch one record
//   - PATCH /cv/{id}: partial update
//   - PATCH /cv/{id}/status: status transition (backend-owned state machine)
//   - DELETE /cv/{id}: soft delete
//   - POST /cv/{id}/restore: undo a soft delete
//   - POST /process-waiting-for-bot: trigger the bot-interview processor
//   - POST /process-waiting-classification: trigger AI classification
//
// # Error Handling
//
// Every failed call surfaces an *APIError:
//
//   - Transport failures (connection refused, DNS, timeout) carry
//     StatusCode 0 with the underlying cause attached.
//   - 4xx responses carry the HTTP status and, when the backend sent its
//     structured validation payload ({"detail": [{loc, msg, type}]}), the
//     first entry's message and the full detail list.
//   - 5xx responses carry the HTTP status text unless a structured body
//     was present.
//
// Malformed success responses (bad JSON) are wrapped with fmt.Errorf and
// are not APIErrors; they indicate a contract violation, not a backend
// failure mode.
//
// # Retries
//
// The client never retries. Background retry cadence belongs to the
// poller; user-initiated actions surface the error immediately.
//
// # Thread Safety
//
// Client is safe for concurrent use; the underlying http.Client handles
// connection pooling.
package cvapi
