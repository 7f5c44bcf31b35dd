// Package controller holds the interaction state shared by the terminal UI
// and the headless identify command.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/service"
)

// noPending marks the absence of a delete request
const noPending = -1

// Controller owns the loading flag, the single error slot, the current
// result and the delete confirmation target.
//
// It is not safe for concurrent use. The UI mutates it from its update loop;
// network calls run elsewhere and report back through JobStarted and ApplyStep.
type Controller struct {
	poller *service.JobPoller
	saved  *service.SavedService
	logger *slog.Logger

	loading bool
	err     string
	current *domain.MovieRecord
	movies  []domain.SavedMovie
	pending pendingDelete
	job     service.Job
}

// pendingDelete is the movie awaiting delete confirmation. It is followed
// by external ID so that list changes around it keep the target.
type pendingDelete struct {
	index int // Index at request time, noPending when none
	id    string
}

// New creates a controller over the poller and the saved-movies service
func New(poller *service.JobPoller, saved *service.SavedService, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		poller:  poller,
		saved:   saved,
		logger:  logger,
		movies:  []domain.SavedMovie{},
		pending: pendingDelete{index: noPending},
	}
}

// Loading returns true while a job is being submitted or polled
func (c *Controller) Loading() bool { return c.loading }

// Err returns the user-visible error, or "" when there is none
func (c *Controller) Err() string { return c.err }

// Current returns the identified movie of the last finished job
func (c *Controller) Current() *domain.MovieRecord { return c.current }

// Saved returns the saved movies as last loaded or mutated
func (c *Controller) Saved() []domain.SavedMovie { return c.movies }

// Job returns the job the controller is waiting on
func (c *Controller) Job() service.Job { return c.job }

// LoadSaved reads the saved movies from durable storage
func (c *Controller) LoadSaved() []domain.SavedMovie {
	c.movies = c.saved.Load()
	return c.movies
}

// BeginSubmit validates input, registers a new job with the poller and
// resets the result state. Blank input sets the validation message and
// leaves any running job alone. The returned job is handed to
// JobPoller.Start; until then no request has been made.
func (c *Controller) BeginSubmit(input string) (service.Job, error) {
	if strings.TrimSpace(input) == "" {
		c.err = domain.MsgInvalidURL
		return service.Job{}, domain.ErrValidation
	}

	job, err := c.poller.Begin(input)
	if err != nil {
		c.err = domain.UserMessage(err)
		return service.Job{}, err
	}

	c.err = ""
	c.current = nil
	c.loading = true
	c.job = job
	return job, nil
}

// JobStarted records the outcome of a submit call. It returns true if job
// is current and polling should begin. The poller reports a superseded
// submit as domain.ErrStaleJob, so any other error belongs to the current job.
func (c *Controller) JobStarted(job service.Job, err error) bool {
	switch {
	case errors.Is(err, domain.ErrStaleJob):
		return false
	case err != nil:
		c.fail(err)
		return false
	case job.Token != c.job.Token:
		return false
	}
	c.job = job
	return true
}

// ApplyStep records the outcome of one status check. It returns true if the
// job is still processing and another check should be scheduled.
// Steps for superseded jobs are dropped.
func (c *Controller) ApplyStep(job service.Job, step service.Step, err error) bool {
	if job.Token != c.job.Token || !c.poller.IsCurrent(job) {
		c.logger.Debug("dropping step for stale job", "jobID", job.ID)
		return false
	}
	if err != nil {
		// Stale or overlapping checks leave state to the chain that owns it
		return false
	}

	switch step.Kind {
	case service.StepResolved:
		c.loading = false
		c.current = step.Result
		return false
	case service.StepFailed:
		c.fail(step.Err)
		return false
	default:
		return true
	}
}

// Run submits input and blocks until the job finishes, updating state the
// same way the UI does.
func (c *Controller) Run(ctx context.Context, input string, observer domain.PollObserver) error {
	job, err := c.BeginSubmit(input)
	if err != nil {
		return err
	}

	job, err = c.poller.Start(ctx, job)
	if !c.JobStarted(job, err) {
		return err
	}

	record, err := c.poller.Follow(ctx, job, observer)
	if err != nil {
		c.fail(err)
		return err
	}

	c.loading = false
	c.current = &record
	return nil
}

func (c *Controller) fail(err error) {
	c.loading = false
	c.current = nil
	c.err = domain.UserMessage(err)
}

// IsBookmarked returns true if the current result is saved
func (c *Controller) IsBookmarked() bool {
	if c.current == nil {
		return false
	}
	return c.saved.Contains(c.current.ExternalID())
}

// ToggleBookmark saves or removes the current result. A pending delete
// keeps its target; it is dropped only if the toggle removed that movie.
func (c *Controller) ToggleBookmark() ([]domain.SavedMovie, error) {
	if c.current == nil || !c.current.CanBookmark() {
		return c.movies, nil
	}

	movies, err := c.saved.Toggle(*c.current)
	c.movies = movies
	if _, ok := c.PendingDelete(); !ok {
		c.CancelDelete()
	}
	return movies, err
}

// RequestDelete marks the saved movie at index i for deletion.
// Nothing is removed until ConfirmDelete.
func (c *Controller) RequestDelete(i int) bool {
	if i < 0 || i >= len(c.movies) {
		return false
	}
	c.pending = pendingDelete{index: i, id: c.movies[i].IMDbID}
	return true
}

// PendingDelete returns the current index of the movie awaiting
// confirmation. Records without an external ID are followed by index.
func (c *Controller) PendingDelete() (int, bool) {
	if c.pending.index == noPending {
		return noPending, false
	}
	if c.pending.id == "" {
		return c.pending.index, c.pending.index < len(c.movies)
	}
	for i, m := range c.movies {
		if m.IMDbID == c.pending.id {
			return i, true
		}
	}
	return noPending, false
}

// CancelDelete drops the pending delete request
func (c *Controller) CancelDelete() {
	c.pending = pendingDelete{index: noPending}
}

// ConfirmDelete removes the movie selected by RequestDelete, wherever it
// sits in the list now. Without a pending request it does nothing.
func (c *Controller) ConfirmDelete() ([]domain.SavedMovie, error) {
	i, ok := c.PendingDelete()
	c.CancelDelete()
	if !ok {
		return c.movies, nil
	}

	movies, err := c.saved.RemoveAt(i)
	c.movies = movies
	if err != nil {
		return movies, err
	}
	c.logger.Info("removed saved movie", "index", i)
	return movies, nil
}
