package analysis

import (
	"strings"

	"github.com/mmcdole/reelfind/internal/domain"
)

// MapStatus converts a validated status response to a domain payload
func MapStatus(r StatusResponse) *domain.StatusPayload {
	payload := &domain.StatusPayload{
		Error:   r.Error,
		Message: r.Message,
	}
	if r.Status != nil {
		payload.Status = *r.Status
	}
	if r.Result != nil {
		payload.Result = mapResultDTO(*r.Result)
	}
	return payload
}

// mapResultDTO copies the wire result into the domain shape, keeping
// presence information for optional fields
func mapResultDTO(r ResultDTO) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		PosterPath:    deref(r.PosterPath),
		Title:         deref(r.Title),
		OriginalTitle: r.OriginalTitle,
		Overview:      deref(r.Overview),
		ReleaseDate:   deref(r.ReleaseDate),
		Runtime:       r.Runtime,
		Genres:        r.Genres,
		VoteAverage:   r.VoteAverage,
		Tagline:       r.Tagline,
		IMDbID:        r.IMDbID,
		AIConfidence:  r.AIConfidence,
		BackdropPath:  deref(r.BackdropPath),
	}
}

// MapResult normalizes a finished job's result into a MovieRecord.
// It is pure and total: a nil result yields a zero record with Year "N/A".
func MapResult(r *domain.AnalysisResult) domain.MovieRecord {
	if r == nil {
		return domain.MovieRecord{
			Year:      domain.YearUnknown,
			Providers: []domain.WatchProvider{},
		}
	}

	return domain.MovieRecord{
		Title:         r.Title,
		OriginalTitle: deref(r.OriginalTitle),
		Poster:        r.PosterPath,
		Overview:      r.Overview,
		Year:          ReleaseYear(r.ReleaseDate),
		Runtime:       r.Runtime,
		Genres:        r.Genres,
		VoteAverage:   r.VoteAverage,
		Tagline:       r.Tagline,
		IMDbID:        nonEmpty(r.IMDbID),
		Confidence:    r.AIConfidence,
		Backdrop:      r.BackdropPath,
		Providers:     domain.FilterKnownProviders(r.Providers),
	}
}

// ReleaseYear extracts the year from a "YYYY-MM-DD" release date.
// The segment before the first '-' must be exactly four digits.
func ReleaseYear(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if len(year) != 4 {
		return domain.YearUnknown
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return domain.YearUnknown
		}
	}
	return year
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonEmpty treats an empty external ID the same as a missing one
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
