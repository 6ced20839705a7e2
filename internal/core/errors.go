package core

// errors.go defines the error taxonomy for the pipeline and the mapping
// from technical errors to user-facing messages with support codes.
//
// Codes are grouped by category:
//
//	FILE001 - file too large
//	FILE002 - input is not valid CSV / header missing
//	FILE003 - empty file
//	RUN001  - no artifact for the requested process identifier
//	RUN002  - too many concurrent runs
//	ING001  - row mapping or transactional insert failed
//	ING002  - no database configured
//	ERR000  - fallback
//
// Patterns are matched after typed errors; the first match wins.

import (
	"errors"
	"fmt"
	"strings"

	"salespipe/internal/store"
)

// ErrNoSink is returned from ingestion when no database is configured.
var ErrNoSink = errors.New("no persistence sink configured")

// FormatError indicates the uploaded file could not be parsed as
// delimited text with the expected header.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid csv: %s: %v", e.Reason, e.Err)
	}
	return "invalid csv: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// IngestionError indicates a sink mapping or transactional failure.
// The whole batch is aborted; Line is 1-based within the serialized
// cleaned dataset, 0 when the failure is not row-specific.
type IngestionError struct {
	Line   int
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	msg := "ingestion failed"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IngestionError) Unwrap() error { return e.Err }

// UserMessage is a user-friendly rendering of an error, with a code the
// user can quote to support staff.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// MapError converts a technical error into a UserMessage. Typed errors
// take precedence over string pattern matching.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Code: "ERR000", Message: "An unexpected error occurred", Action: "Please try again"}
	}

	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return UserMessage{
			Code:    "FILE002",
			Message: "The file is not a valid CSV: " + formatErr.Reason,
			Action:  "Ensure the file is comma-separated with the expected header row",
		}
	}

	var ingErr *IngestionError
	if errors.As(err, &ingErr) {
		return UserMessage{
			Code:    "ING001",
			Message: "Loading the cleaned data into the database failed; no rows were inserted",
			Action:  "Fix the reported row and push again",
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		return UserMessage{
			Code:    "RUN001",
			Message: "No processed data exists for this process ID",
			Action:  "Upload the CSV again to produce a new run",
		}
	}

	if errors.Is(err, ErrNoSink) {
		return UserMessage{
			Code:    "ING002",
			Message: "No database is configured for ingestion",
			Action:  "Set DATABASE_URL and restart the service",
		}
	}

	if errors.Is(err, ErrTooManyRuns) {
		return UserMessage{
			Code:    "RUN002",
			Message: "Too many uploads are being processed right now",
			Action:  "Please wait a moment and try again",
		}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "file too large"):
		return UserMessage{
			Code:    "FILE001",
			Message: "The file exceeds the maximum upload size",
			Action:  "Split the file into smaller chunks",
		}
	case strings.Contains(lower, "empty file"):
		return UserMessage{
			Code:    "FILE003",
			Message: "The uploaded file is empty",
			Action:  "Upload a CSV with a header row and data rows",
		}
	case strings.Contains(lower, "context canceled"), strings.Contains(lower, "context deadline exceeded"):
		return UserMessage{
			Code:    "ERR000",
			Message: "The request was cancelled or timed out",
			Action:  "Please try again",
		}
	}

	return UserMessage{
		Code:    "ERR000",
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
	}
}
