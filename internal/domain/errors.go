package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for identification and cache operations
var (
	// ErrValidation indicates the submitted input was rejected locally
	ErrValidation = errors.New("invalid input")

	// ErrRequestFailed indicates a non-success transport response
	ErrRequestFailed = errors.New("request failed")

	// ErrProtocol indicates a malformed or incomplete response body
	ErrProtocol = errors.New("malformed response")

	// ErrNotFound indicates the job finished but no movie matched
	ErrNotFound = errors.New("movie not found")

	// ErrBackend indicates the backend reported an explicit error status
	ErrBackend = errors.New("backend error")

	// ErrUnexpectedStatus indicates a status value outside the known set
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrCacheCorrupt indicates the durable record failed to parse
	ErrCacheCorrupt = errors.New("saved movies cache is corrupt")

	// ErrStaleJob indicates a job was superseded by a newer submission
	ErrStaleJob = errors.New("job superseded")

	// ErrPollInFlight indicates a status check is already running for the job
	ErrPollInFlight = errors.New("status check already in flight")
)

// User-facing messages
const (
	MsgInvalidURL   = "Please enter a valid URL"
	MsgNotFound     = "Movie not found. Please try a different clip."
	MsgBackendError = "An error occurred while analyzing the video."
)

// RequestFailedError carries the HTTP status of a failed backend call.
// StatusCode is 0 when no response was received.
type RequestFailedError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s request failed: %d", e.Op, e.StatusCode)
}

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

func (e *RequestFailedError) Unwrap() error { return e.Err }

// BackendError carries the message from an "error" job status
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// UnexpectedStatusError carries the raw status value that was not recognized
type UnexpectedStatusError struct {
	Status string
}

func (e *UnexpectedStatusError) Error() string {
	return "Unexpected status received: " + e.Status
}

func (e *UnexpectedStatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// SubmitError marks a failure while starting an analysis
type SubmitError struct{ Err error }

func (e *SubmitError) Error() string { return "Failed to analyze video: " + e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }

// PollError marks a transport or protocol failure while checking status
type PollError struct{ Err error }

func (e *PollError) Error() string { return "Failed to check analysis status: " + e.Err.Error() }

func (e *PollError) Unwrap() error { return e.Err }

// UserMessage collapses any identification error into the text shown
// in the single error slot.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var backendErr *BackendError
	var statusErr *UnexpectedStatusError

	switch {
	case errors.Is(err, ErrValidation):
		return MsgInvalidURL
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.As(err, &backendErr):
		return backendErr.Message
	case errors.As(err, &statusErr):
		return statusErr.Error()
	default:
		return err.Error()
	}
}
