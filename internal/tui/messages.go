package tui

import (
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error outside the identification flow
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// JobStartedMsg carries the outcome of a submit call
type JobStartedMsg struct {
	Job service.Job // Job with the backend ID, or the registered job on error
	Err error
}

// PollDueMsg fires when the interval after a status check has elapsed
type PollDueMsg struct {
	Job service.Job
}

// StepMsg carries the outcome of one status check
type StepMsg struct {
	Job  service.Job
	Step service.Step
	Err  error
}

// PreviewLoadedMsg carries the clip share-page preview
type PreviewLoadedMsg struct {
	URL     string
	Preview domain.ClipPreview
}

// URLOpenedMsg signals that a detail page was handed to the browser
type URLOpenedMsg struct {
	URL string
}

// TickMsg drives the spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
