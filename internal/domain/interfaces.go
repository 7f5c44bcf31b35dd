package domain

import "context"

// AnalysisRepository starts identification jobs and reports their status.
// Implementations are stateless between calls and never retry.
type AnalysisRepository interface {
	// Submit sends a clip URL for analysis and returns the job token
	Submit(ctx context.Context, url string) (JobID, error)

	// Poll fetches the current status of a job
	Poll(ctx context.Context, id JobID) (*StatusPayload, error)
}

// ClipPreviewer fetches share-page metadata for a clip URL
type ClipPreviewer interface {
	Fetch(ctx context.Context, url string) (ClipPreview, error)
}

// URLOpener opens a URL outside the application (browser, system handler)
type URLOpener interface {
	Open(url string) error
}

// StatusPayload is a validated response from the status endpoint
type StatusPayload struct {
	Status  string          // Raw status value
	Result  *AnalysisResult // Present only when the backend sent one
	Error   string
	Message string
}

// JobStatus returns the status tag for the payload
func (p StatusPayload) JobStatus() JobStatus {
	return ParseJobStatus(p.Status)
}

// ErrorText returns the backend's error text, preferring Error over Message
func (p StatusPayload) ErrorText() string {
	if p.Error != "" {
		return p.Error
	}
	return p.Message
}

// AnalysisResult is the raw result object of a finished job.
// Pointer fields are nil when the backend omitted them.
type AnalysisResult struct {
	PosterPath    string
	Title         string
	OriginalTitle *string
	Overview      string
	ReleaseDate   string
	Runtime       *int
	Genres        []string
	VoteAverage   *float64
	Tagline       *string
	IMDbID        *string
	AIConfidence  *float64
	BackdropPath  string
	Providers     []string
}

// HasOriginalTitle reports whether the result identifies a movie
func (r *AnalysisResult) HasOriginalTitle() bool {
	return r != nil && r.OriginalTitle != nil && *r.OriginalTitle != ""
}
