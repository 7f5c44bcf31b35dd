package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want JobStatus
	}{
		{"processing", JobStatusProcessing},
		{"done", JobStatusDone},
		{"error", JobStatusError},
		{"queued", JobStatusUnknown},
		{"", JobStatusUnknown},
		{"DONE", JobStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJobStatus(tt.raw))
		})
	}

	assert.False(t, JobStatusProcessing.IsTerminal())
	assert.True(t, JobStatusDone.IsTerminal())
	assert.True(t, JobStatusUnknown.IsTerminal())
}

func TestMovieRecord_Presentation(t *testing.T) {
	m := MovieRecord{
		Title:       "The Dark Knight",
		IMDbID:      strPtr("tt0468569"),
		Confidence:  floatPtr(0.876),
		VoteAverage: floatPtr(8.52),
	}

	url, ok := m.DetailURL()
	assert.True(t, ok)
	assert.Equal(t, "https://www.imdb.com/title/tt0468569", url)

	pct, ok := m.ConfidencePercent()
	assert.True(t, ok)
	assert.Equal(t, 88, pct)
	// The raw value is untouched by display rounding
	assert.Equal(t, 0.876, *m.Confidence)

	assert.Equal(t, "8.5", m.FormattedRating())
	assert.Equal(t, "", m.FormattedRuntime())
	assert.True(t, m.CanBookmark())
}

func TestMovieRecord_WithoutExternalID(t *testing.T) {
	m := MovieRecord{Title: "Untitled"}

	_, ok := m.DetailURL()
	assert.False(t, ok)
	assert.False(t, m.CanBookmark())

	_, ok = m.ConfidencePercent()
	assert.False(t, ok)

	empty := MovieRecord{IMDbID: strPtr("")}
	assert.False(t, empty.CanBookmark())
}

func TestNewSavedMovie(t *testing.T) {
	m := MovieRecord{
		Title:  "Inception",
		Year:   "2010",
		Poster: "/poster.jpg",
		IMDbID: strPtr("tt1375666"),
	}

	assert.Equal(t, SavedMovie{
		Title:  "Inception",
		Year:   "2010",
		Poster: "/poster.jpg",
		IMDbID: "tt1375666",
	}, NewSavedMovie(m))
}

func TestFilterKnownProviders(t *testing.T) {
	got := FilterKnownProviders([]string{"Netflix", "Betamax", "HBO", ""})
	assert.Equal(t, []WatchProvider{"Netflix", "HBO"}, got)

	none := FilterKnownProviders(nil)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	style, ok := LookupProvider("Netflix")
	assert.True(t, ok)
	assert.Equal(t, "#E50914", style.Color)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", fmt.Errorf("%w: empty url", ErrValidation), MsgInvalidURL},
		{"not found", ErrNotFound, MsgNotFound},
		{"backend", &BackendError{Message: "quota exceeded"}, "quota exceeded"},
		{"unexpected", &UnexpectedStatusError{Status: "queued"}, "Unexpected status received: queued"},
		{"submit", &SubmitError{Err: &RequestFailedError{Op: "analysis", StatusCode: 500}}, "Failed to analyze video: analysis request failed: 500"},
		{"poll", &PollError{Err: ErrProtocol}, "Failed to check analysis status: malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	err := &SubmitError{Err: &RequestFailedError{Op: "analysis", StatusCode: 502}}
	assert.True(t, errors.Is(err, ErrRequestFailed))

	var rf *RequestFailedError
	assert.True(t, errors.As(err, &rf))
	assert.Equal(t, 502, rf.StatusCode)

	assert.True(t, errors.Is(&BackendError{Message: "x"}, ErrBackend))
	assert.True(t, errors.Is(&UnexpectedStatusError{Status: "x"}, ErrUnexpectedStatus))
}
