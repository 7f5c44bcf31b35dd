package analysis

import (
	"fmt"

	"github.com/mmcdole/reelfind/internal/domain"
)

// AnalyzeRequest is the body of POST /analyze/
type AnalyzeRequest struct {
	TikTokURL string `json:"tiktok_url"`
}

// AnalyzeResponse is the body returned by POST /analyze/
type AnalyzeResponse struct {
	JobID *string `json:"job_id"`
}

func (r AnalyzeResponse) validate() error {
	if r.JobID == nil || *r.JobID == "" {
		return fmt.Errorf("%w: no job ID received from server", domain.ErrProtocol)
	}
	return nil
}

// StatusRequest is the body of POST /status/
type StatusRequest struct {
	JobID string `json:"job_id"`
}

// StatusResponse is the body returned by POST /status/
type StatusResponse struct {
	Status  *string    `json:"status"`
	Result  *ResultDTO `json:"result,omitempty"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

func (r StatusResponse) validate() error {
	if r.Status == nil {
		return fmt.Errorf("%w: status field missing", domain.ErrProtocol)
	}
	return nil
}

// ResultDTO is the identification result inside a "done" status.
// Optional fields are pointers so absence survives decoding.
type ResultDTO struct {
	PosterPath    *string  `json:"poster_path"`
	Title         *string  `json:"title"`
	OriginalTitle *string  `json:"original_title"`
	Overview      *string  `json:"overview"`
	ReleaseDate   *string  `json:"release_date"`
	Runtime       *int     `json:"runtime"`
	Genres        []string `json:"genres"`
	VoteAverage   *float64 `json:"vote_average"`
	Tagline       *string  `json:"tagline"`
	IMDbID        *string  `json:"imdb_id"`
	AIConfidence  *float64 `json:"ai_confidence"`
	BackdropPath  *string  `json:"backdrop_path"`
}
