package analysis

import (
	"encoding/json"
	"testing"

	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResult(t *testing.T, raw string) *domain.AnalysisResult {
	t.Helper()
	var resp StatusResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return MapStatus(resp).Result
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2010-07-16", "2010"},
		{"1999", "1999"},
		{"", "N/A"},
		{"07-16-2010", "N/A"},
		{"20x0-01-01", "N/A"},
		{"  2008-07-18 ", "2008"},
		{"-2008", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, ReleaseYear(tt.date))
		})
	}
}

func TestMapResult_FullPayload(t *testing.T) {
	r := decodeResult(t, `{"status":"done","result":{
		"title": "The Dark Knight",
		"original_title": "The Dark Knight",
		"overview": "Batman raises the stakes.",
		"release_date": "2008-07-16",
		"runtime": 152,
		"genres": ["Drama", "Action", "Crime"],
		"vote_average": 8.516,
		"tagline": "Why so serious?",
		"imdb_id": "tt0468569",
		"ai_confidence": 0.8765,
		"poster_path": "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
		"backdrop_path": "/nMKdUUepR0i5zn0y1T4CsSB5chy.jpg"
	}}`)

	m := MapResult(r)

	assert.Equal(t, "The Dark Knight", m.Title)
	assert.Equal(t, "2008", m.Year)
	assert.Equal(t, []string{"Drama", "Action", "Crime"}, m.Genres)
	require.NotNil(t, m.Confidence)
	assert.Equal(t, 0.8765, *m.Confidence)
	require.NotNil(t, m.Tagline)
	assert.Equal(t, "Why so serious?", *m.Tagline)
	assert.Equal(t, "tt0468569", m.ExternalID())
	assert.Equal(t, "/qJ2tW6WMUDux911r6m7haRef0WH.jpg", m.Poster)

	assert.NotNil(t, m.Providers)
	assert.Empty(t, m.Providers)
}

func TestMapResult_MissingOptionalFields(t *testing.T) {
	r := decodeResult(t, `{"status":"done","result":{"original_title":"Heat","title":"Heat"}}`)

	m := MapResult(r)

	assert.Equal(t, "Heat", m.OriginalTitle)
	assert.Equal(t, domain.YearUnknown, m.Year)
	assert.Nil(t, m.Runtime)
	assert.Nil(t, m.Genres)
	assert.Nil(t, m.VoteAverage)
	assert.Nil(t, m.Tagline)
	assert.Nil(t, m.Confidence)
	assert.Nil(t, m.IMDbID)
	assert.False(t, m.CanBookmark())
}

func TestMapResult_EmptyIMDbIDIsAbsent(t *testing.T) {
	r := decodeResult(t, `{"status":"done","result":{"original_title":"Heat","imdb_id":""}}`)
	assert.Nil(t, MapResult(r).IMDbID)
}

func TestMapResult_Nil(t *testing.T) {
	m := MapResult(nil)
	assert.Equal(t, domain.YearUnknown, m.Year)
	assert.NotNil(t, m.Providers)
}

func TestMapResult_DropsUnknownProviders(t *testing.T) {
	title := "Heat"
	m := MapResult(&domain.AnalysisResult{
		OriginalTitle: &title,
		Providers:     []string{"Netflix", "LaserDisc"},
	})
	assert.Equal(t, []domain.WatchProvider{"Netflix"}, m.Providers)
}

func TestHasOriginalTitle(t *testing.T) {
	assert.False(t, decodeResult(t, `{"status":"done","result":{}}`).HasOriginalTitle())
	assert.False(t, decodeResult(t, `{"status":"done","result":{"original_title":""}}`).HasOriginalTitle())
	assert.Nil(t, decodeResult(t, `{"status":"done"}`))
	assert.True(t, decodeResult(t, `{"status":"done","result":{"original_title":"Inception"}}`).HasOriginalTitle())
}
