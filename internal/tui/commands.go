package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/service"
)

// Command factories for async operations

// requestTimeout bounds a single submit or status call
const requestTimeout = 60 * time.Second

// StartJobCmd sends a registered job to the backend
func StartJobCmd(poller *service.JobPoller, job service.Job) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		started, err := poller.Start(ctx, job)
		if err != nil {
			return JobStartedMsg{Job: job, Err: err}
		}
		return JobStartedMsg{Job: started}
	}
}

// SchedulePollCmd waits the poll interval before the next status check
func SchedulePollCmd(job service.Job, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollDueMsg{Job: job}
	})
}

// CheckJobCmd issues one status check
func CheckJobCmd(poller *service.JobPoller, job service.Job) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		step, err := poller.Check(ctx, job)
		return StepMsg{Job: job, Step: step, Err: err}
	}
}

// FetchPreviewCmd loads the clip caption. Failures are dropped.
func FetchPreviewCmd(previewer domain.ClipPreviewer, url string) tea.Cmd {
	if previewer == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		preview, err := previewer.Fetch(ctx, url)
		if err != nil {
			return nil
		}
		return PreviewLoadedMsg{URL: url, Preview: preview}
	}
}

// OpenURLCmd opens a detail page in the browser
func OpenURLCmd(opener domain.URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return URLOpenedMsg{URL: url}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
