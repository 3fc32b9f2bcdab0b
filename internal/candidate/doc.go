// Package candidate defines the normalized candidate entity and the pure
// functions that keep the dashboard's view of the pipeline consistent.
//
// # Overview
//
// The backend speaks in free-text records: Title Case status strings,
// legacy numeric status codes, yes/no answers, stringly-typed numbers, and
// the literal string "null" where data is missing. This package owns the
// boundary where all of that is folded into a closed, typed entity, and it
// owns the change-detection and reconciliation logic the background sync
// is built on.
//
// # Components
//
//   - candidate.go: the Candidate entity, Status and JobType enums, and
//     timestamp parsing
//   - mapper.go: MapRecord, the pure wire-to-entity conversion with all
//     defensive defaulting
//   - fingerprint.go: Fingerprint and ListChanged, the no-op refresh
//     detection
//   - reconcile.go: Reconcile and the transient-annotation helpers
//
// # Mapping Rules
//
// MapRecord is total: no input raises. Unrecognized statuses fold to
// "submitted" so a partially-known backend state never crashes the list.
// Job type is the one place that must NOT default: an unclassified
// candidate is semantically different from any concrete classification, so
// "null", empty, and unknown values all yield the zero JobType. Numeric
// fields parse defensively (age "0" and score ""/"null" mean absent);
// yes/no answers are true only on an exact case-insensitive "yes"/"true".
//
// # Change Detection
//
// Fingerprint covers identity, contact fields, status, classification,
// notes, warnings, the deleted flag, and the bot-interview transcript. It
// excludes the client-only annotations (IsNew, StatusChangedAt,
// NewAnswersAt), so carrying those forward never reads as a data change.
// ListChanged compares two snapshots in O(n) using an id-keyed index and
// is the gate that keeps identical polls from re-rendering anything.
//
// # Reconciliation
//
// Reconcile copies the client-only annotations from the previous list onto
// the fresh one by id. Fresh entities always arrive with those fields
// zeroed (the mapper never sets them), so the previous list is the sole
// authority: flags set locally survive, flags cleared locally stay
// cleared, and ids unknown to the previous list keep their defaults.
package candidate
