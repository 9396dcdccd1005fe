package jira

import "errors"

// Sentinel errors for backend adapter operations. The dispatcher and tool
// handlers classify failures with errors.Is against these.

// ErrNotFound indicates the referenced issue, project, board, sprint or
// transition does not exist.
var ErrNotFound = errors.New("not found")

// ErrQuerySyntax indicates the tracker rejected a JQL expression as malformed.
var ErrQuerySyntax = errors.New("invalid JQL query")

// ErrValidation indicates the tracker rejected a field combination on a
// create or update.
var ErrValidation = errors.New("tracker rejected fields")

// ErrConflict indicates the tracker rejected a mutation due to a state
// mismatch.
var ErrConflict = errors.New("conflicting update")

// ErrUpstream indicates a transport or authentication failure talking to
// the tracker.
var ErrUpstream = errors.New("tracker request failed")
