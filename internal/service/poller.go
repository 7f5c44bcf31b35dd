package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/reelfind/internal/analysis"
	"github.com/mmcdole/reelfind/internal/domain"
)

// DefaultPollInterval is the delay between status checks
const DefaultPollInterval = 12 * time.Second

// PollerState is the lifecycle state of the current job
type PollerState int

const (
	StateIdle PollerState = iota
	StateSubmitting
	StatePolling
	StateResolved
	StateFailed
)

func (s PollerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job identifies one submission. Token is minted locally per submission and
// is what supersession is checked against; ID is the backend's job token.
type Job struct {
	Token uuid.UUID
	ID    domain.JobID
	URL   string
}

// StepKind says what the poll chain should do after a status check
type StepKind int

const (
	StepContinue StepKind = iota // Still processing, check again after the interval
	StepResolved                 // Movie identified
	StepFailed                   // Terminal failure, see Step.Err
)

// Step is the interpreted outcome of one status check
type Step struct {
	Kind   StepKind
	Result *domain.MovieRecord
	Err    error
}

// Terminal returns true if the job is finished
func (s Step) Terminal() bool {
	return s.Kind != StepContinue
}

// JobPoller drives one identification job at a time.
// Submitting a new job supersedes the previous one: checks for the old job
// return domain.ErrStaleJob and late responses for it are discarded.
type JobPoller struct {
	repo     domain.AnalysisRepository
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	state    PollerState
	current  Job
	inFlight bool
	attempts int
}

// NewJobPoller creates a poller. A non-positive interval uses DefaultPollInterval.
func NewJobPoller(repo domain.AnalysisRepository, interval time.Duration, logger *slog.Logger) *JobPoller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &JobPoller{
		repo:     repo,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the delay between status checks
func (p *JobPoller) Interval() time.Duration {
	return p.interval
}

// State returns the state of the current job
func (p *JobPoller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the active job, if any
func (p *JobPoller) Current() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current.Token != uuid.Nil
}

// IsCurrent returns true if job has not been superseded
func (p *JobPoller) IsCurrent(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isCurrentLocked(job)
}

func (p *JobPoller) isCurrentLocked(job Job) bool {
	return job.Token != uuid.Nil && job.Token == p.current.Token
}

// Submit validates the URL and runs the submit call for a new job,
// superseding any previous one.
func (p *JobPoller) Submit(ctx context.Context, rawURL string) (Job, error) {
	job, err := p.Begin(rawURL)
	if err != nil {
		return Job{}, err
	}
	return p.Start(ctx, job)
}

// Begin validates the URL and registers a new job without contacting the
// backend. Blank input fails with domain.ErrValidation and leaves the
// current job alone.
func (p *JobPoller) Begin(rawURL string) (Job, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return Job{}, fmt.Errorf("%w: empty url", domain.ErrValidation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current.Token != uuid.Nil {
		p.logger.Debug("superseding job", "token", p.current.Token, "jobID", p.current.ID)
	}
	job := Job{Token: uuid.New(), URL: url}
	p.current = job
	p.state = StateSubmitting
	p.inFlight = false
	p.attempts = 0
	return job, nil
}

// Start submits a job registered by Begin and returns it with the
// backend's job ID filled in.
func (p *JobPoller) Start(ctx context.Context, job Job) (Job, error) {
	p.mu.Lock()
	if !p.isCurrentLocked(job) || p.state != StateSubmitting {
		p.mu.Unlock()
		return Job{}, domain.ErrStaleJob
	}
	p.mu.Unlock()

	p.logger.Info("submitting clip", "url", job.URL, "token", job.Token)

	id, err := p.repo.Submit(ctx, job.URL)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isCurrentLocked(job) {
		return Job{}, domain.ErrStaleJob
	}
	if err != nil {
		p.state = StateFailed
		p.logger.Error("submit failed", "url", job.URL, "error", err)
		return Job{}, &domain.SubmitError{Err: err}
	}

	job.ID = id
	p.current = job
	p.state = StatePolling
	return job, nil
}

// Check issues one status request for job and interprets the answer.
// The returned error is only for checks that must not affect state:
// a superseded or finished job (domain.ErrStaleJob) or a check already in
// flight (domain.ErrPollInFlight). Job failures are reported in Step.Err.
func (p *JobPoller) Check(ctx context.Context, job Job) (Step, error) {
	p.mu.Lock()
	if !p.isCurrentLocked(job) {
		p.mu.Unlock()
		return Step{}, domain.ErrStaleJob
	}
	if p.state != StatePolling {
		state := p.state
		p.mu.Unlock()
		return Step{}, fmt.Errorf("%w: job is %s", domain.ErrStaleJob, state)
	}
	if p.inFlight {
		p.mu.Unlock()
		return Step{}, domain.ErrPollInFlight
	}
	p.inFlight = true
	p.attempts++
	attempt := p.attempts
	p.mu.Unlock()

	payload, err := p.repo.Poll(ctx, job.ID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isCurrentLocked(job) {
		p.logger.Debug("discarding late status", "jobID", job.ID)
		return Step{}, domain.ErrStaleJob
	}
	p.inFlight = false

	step := interpretStatus(payload, err)
	switch step.Kind {
	case StepResolved:
		p.state = StateResolved
		p.logger.Info("movie identified", "jobID", job.ID, "title", step.Result.Title, "attempt", attempt)
	case StepFailed:
		p.state = StateFailed
		p.logger.Warn("job failed", "jobID", job.ID, "error", step.Err, "attempt", attempt)
	default:
		p.logger.Debug("job still processing", "jobID", job.ID, "attempt", attempt)
	}
	return step, nil
}

// interpretStatus maps a status response onto the next step of the chain
func interpretStatus(payload *domain.StatusPayload, err error) Step {
	if err != nil {
		return Step{Kind: StepFailed, Err: &domain.PollError{Err: err}}
	}

	switch payload.JobStatus() {
	case domain.JobStatusProcessing:
		return Step{Kind: StepContinue}

	case domain.JobStatusDone:
		if !payload.Result.HasOriginalTitle() {
			return Step{Kind: StepFailed, Err: domain.ErrNotFound}
		}
		record := analysis.MapResult(payload.Result)
		return Step{Kind: StepResolved, Result: &record}

	case domain.JobStatusError:
		msg := payload.ErrorText()
		if msg == "" {
			msg = domain.MsgBackendError
		}
		return Step{Kind: StepFailed, Err: &domain.BackendError{Message: msg}}

	default:
		return Step{Kind: StepFailed, Err: &domain.UnexpectedStatusError{Status: payload.Status}}
	}
}

// Run submits rawURL and follows the job until it finishes
func (p *JobPoller) Run(ctx context.Context, rawURL string, observer domain.PollObserver) (domain.MovieRecord, error) {
	job, err := p.Submit(ctx, rawURL)
	if err != nil {
		return domain.MovieRecord{}, err
	}
	return p.Follow(ctx, job, observer)
}

// Follow polls a started job until it finishes, waiting the poll interval
// between checks. Each check is reported to observer.
func (p *JobPoller) Follow(ctx context.Context, job Job, observer domain.PollObserver) (domain.MovieRecord, error) {
	if observer == nil {
		observer = domain.NoOpObserver{}
	}

	for attempt := 1; ; attempt++ {
		step, err := p.Check(ctx, job)
		if err != nil {
			return domain.MovieRecord{}, err
		}

		observer.OnProgress(domain.PollProgress{
			Job:     job.ID,
			Attempt: attempt,
			Done:    step.Terminal(),
			Result:  step.Result,
			Error:   step.Err,
		})

		switch step.Kind {
		case StepResolved:
			return *step.Result, nil
		case StepFailed:
			return domain.MovieRecord{}, step.Err
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.MovieRecord{}, ctx.Err()
		case <-timer.C:
		}
	}
}
