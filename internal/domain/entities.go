package domain

import (
	"fmt"
	"math"
)

// imdbTitleURL is the public film-database detail page for an external ID
const imdbTitleURL = "https://www.imdb.com/title/%s"

// YearUnknown is shown when the release date carries no usable year
const YearUnknown = "N/A"

// JobID is the opaque token the analysis backend issues for one submission
type JobID string

// JobStatus is the status tag reported by the backend for a job
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusError      JobStatus = "error"
	JobStatusUnknown    JobStatus = "unknown"
)

// ParseJobStatus maps a raw status value onto the closed set of known tags.
// Anything outside the set is JobStatusUnknown.
func ParseJobStatus(raw string) JobStatus {
	switch JobStatus(raw) {
	case JobStatusProcessing, JobStatusDone, JobStatusError:
		return JobStatus(raw)
	default:
		return JobStatusUnknown
	}
}

// IsTerminal returns true if no further status checks should follow
func (s JobStatus) IsTerminal() bool {
	return s != JobStatusProcessing
}

// MovieRecord is the normalized identification result
type MovieRecord struct {
	Title         string   // Localized display title
	OriginalTitle string   // Title in the original language
	Poster        string   // Poster image reference
	Overview      string   // Plot synopsis
	Year          string   // Release year, or YearUnknown
	Runtime       *int     // Minutes
	Genres        []string // Ordered genre names
	VoteAverage   *float64 // 0-10 audience rating
	Tagline       *string
	IMDbID        *string  // External ID: bookmark dedup key and deep-link key
	Confidence    *float64 // Identification confidence in [0,1], unscaled
	Backdrop      string   // Backdrop image reference

	// Providers is empty when the backend supplies no availability data.
	// Empty means "no data", not "not available anywhere".
	Providers []WatchProvider
}

// ExternalID returns the external identifier, or "" if absent
func (m MovieRecord) ExternalID() string {
	if m.IMDbID == nil {
		return ""
	}
	return *m.IMDbID
}

// CanBookmark returns true if the record has an external ID to dedup on
func (m MovieRecord) CanBookmark() bool {
	return m.ExternalID() != ""
}

// DetailURL returns the film-database deep link for the record
func (m MovieRecord) DetailURL() (string, bool) {
	id := m.ExternalID()
	if id == "" {
		return "", false
	}
	return fmt.Sprintf(imdbTitleURL, id), true
}

// ConfidencePercent scales the raw confidence to a rounded percentage
func (m MovieRecord) ConfidencePercent() (int, bool) {
	if m.Confidence == nil {
		return 0, false
	}
	return int(math.Round(*m.Confidence * 100)), true
}

// FormattedRuntime returns the runtime as "148 min", or "" when unknown
func (m MovieRecord) FormattedRuntime() string {
	if m.Runtime == nil || *m.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", *m.Runtime)
}

// FormattedRating returns the vote average with one decimal, or "" when unknown
func (m MovieRecord) FormattedRating() string {
	if m.VoteAverage == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *m.VoteAverage)
}

// SavedMovie is the persisted projection of a bookmarked MovieRecord
type SavedMovie struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
	IMDbID string `json:"imdbId"`
}

// NewSavedMovie projects a MovieRecord onto the fields that get persisted
func NewSavedMovie(m MovieRecord) SavedMovie {
	return SavedMovie{
		Title:  m.Title,
		Year:   m.Year,
		Poster: m.Poster,
		IMDbID: m.ExternalID(),
	}
}

// DetailURL returns the film-database deep link for the saved movie
func (s SavedMovie) DetailURL() (string, bool) {
	if s.IMDbID == "" {
		return "", false
	}
	return fmt.Sprintf(imdbTitleURL, s.IMDbID), true
}

// ClipPreview holds the share-page metadata for a submitted clip
type ClipPreview struct {
	URL         string
	Title       string
	Description string
	Image       string
}

// IsEmpty returns true if nothing useful was found on the share page
func (p ClipPreview) IsEmpty() bool {
	return p.Title == "" && p.Description == ""
}
