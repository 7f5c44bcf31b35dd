package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a store and fails writes on demand
type failingStore struct {
	domain.KeyValueStore
	failPut bool
}

func (f *failingStore) Put(key string, value []byte) error {
	if f.failPut {
		return errors.New("disk full")
	}
	return f.KeyValueStore.Put(key, value)
}

func memStore(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocalStore("")
	require.NoError(t, err)
	return s
}

func movie(title, year, id string) domain.MovieRecord {
	m := domain.MovieRecord{Title: title, Year: year, Poster: "/" + id + ".jpg"}
	if id != "" {
		m.IMDbID = &id
	}
	return m
}

func TestSavedService_LoadEmpty(t *testing.T) {
	svc := NewSavedService(memStore(t), nil)

	movies := svc.Load()
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestSavedService_ToggleAddsAtHeadThenRemoves(t *testing.T) {
	kv := memStore(t)
	svc := NewSavedService(kv, nil)
	svc.Load()

	_, err := svc.Toggle(movie("Heat", "1995", "tt0113277"))
	require.NoError(t, err)

	// Seed list [A], toggle B: B lands at index 0
	list, err := svc.Toggle(movie("Inception", "2010", "tt1375666"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tt1375666", list[0].IMDbID)
	assert.Equal(t, "tt0113277", list[1].IMDbID)
	assert.True(t, svc.Contains("tt1375666"))

	// Toggling B again restores [A]
	list, err = svc.Toggle(movie("Inception", "2010", "tt1375666"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tt0113277", list[0].IMDbID)
	assert.False(t, svc.Contains("tt1375666"))
}

func TestSavedService_ToggleIsItsOwnInverse(t *testing.T) {
	kv := memStore(t)
	svc := NewSavedService(kv, nil)
	svc.Load()

	for _, m := range []domain.MovieRecord{
		movie("Heat", "1995", "tt0113277"),
		movie("Alien", "1979", "tt0078748"),
	} {
		_, err := svc.Toggle(m)
		require.NoError(t, err)
	}
	before := svc.List()

	for _, m := range []domain.MovieRecord{
		movie("Alien", "1979", "tt0078748"),     // present
		movie("Inception", "2010", "tt1375666"), // absent
	} {
		_, err := svc.Toggle(m)
		require.NoError(t, err)
		_, err = svc.Toggle(m)
		require.NoError(t, err)

		assert.Equal(t, before, svc.List()[:len(before)])
	}

	after := svc.List()
	assert.Equal(t, before, after)

	afterRecord, _, _ := kv.Get(domain.SavedMoviesKey)
	var persisted []domain.SavedMovie
	require.NoError(t, json.Unmarshal(afterRecord, &persisted))
	assert.Equal(t, after, persisted)
}

func TestSavedService_ToggleAbsentTwiceRestoresList(t *testing.T) {
	svc := NewSavedService(memStore(t), nil)
	svc.Load()
	_, err := svc.Toggle(movie("Heat", "1995", "tt0113277"))
	require.NoError(t, err)
	before := svc.List()

	m := movie("Inception", "2010", "tt1375666")
	_, err = svc.Toggle(m)
	require.NoError(t, err)
	list, err := svc.Toggle(m)
	require.NoError(t, err)

	assert.Equal(t, before, list)
}

func TestSavedService_ToggleWithoutExternalID(t *testing.T) {
	kv := memStore(t)
	svc := NewSavedService(kv, nil)
	svc.Load()

	list, err := svc.Toggle(movie("Untitled", "N/A", ""))
	require.NoError(t, err)
	assert.Empty(t, list)

	_, ok, err := kv.Get(domain.SavedMoviesKey)
	require.NoError(t, err)
	assert.False(t, ok, "no write for a record without an external id")
}

func TestSavedService_RemoveAt(t *testing.T) {
	svc := NewSavedService(memStore(t), nil)
	svc.Load()
	for _, m := range []domain.MovieRecord{
		movie("Heat", "1995", "tt0113277"),
		movie("Alien", "1979", "tt0078748"),
		movie("Inception", "2010", "tt1375666"),
	} {
		_, err := svc.Toggle(m)
		require.NoError(t, err)
	}
	// List is [Inception, Alien, Heat]

	list, err := svc.RemoveAt(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Inception", list[0].Title)
	assert.Equal(t, "Heat", list[1].Title)

	for _, i := range []int{-1, 2, 99} {
		list, err = svc.RemoveAt(i)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	}
}

func TestSavedService_RoundTripThroughDisk(t *testing.T) {
	dir := t.TempDir()

	kv, err := store.NewLocalStore(dir)
	require.NoError(t, err)
	svc := NewSavedService(kv, nil)
	svc.Load()
	_, err = svc.Toggle(movie("Heat", "1995", "tt0113277"))
	require.NoError(t, err)
	want, err := svc.Toggle(movie("Inception", "2010", "tt1375666"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	reopened, err := store.NewLocalStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got := NewSavedService(reopened, nil).Load()
	assert.Equal(t, want, got)
	assert.Equal(t, domain.SavedMovie{
		Title:  "Inception",
		Year:   "2010",
		Poster: "/tt1375666.jpg",
		IMDbID: "tt1375666",
	}, got[0])
}

func TestSavedService_CorruptRecordIsCleared(t *testing.T) {
	kv := memStore(t)
	require.NoError(t, kv.Put(domain.SavedMoviesKey, []byte("{not json")))

	svc := NewSavedService(kv, nil)
	assert.Empty(t, svc.Load())

	_, ok, err := kv.Get(domain.SavedMoviesKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSavedService_NullRecordLoadsEmpty(t *testing.T) {
	kv := memStore(t)
	require.NoError(t, kv.Put(domain.SavedMoviesKey, []byte("null")))

	movies := NewSavedService(kv, nil).Load()
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestSavedService_FailedWriteKeepsList(t *testing.T) {
	kv := &failingStore{KeyValueStore: memStore(t)}
	svc := NewSavedService(kv, nil)
	svc.Load()

	_, err := svc.Toggle(movie("Heat", "1995", "tt0113277"))
	require.NoError(t, err)

	kv.failPut = true
	list, err := svc.Toggle(movie("Inception", "2010", "tt1375666"))
	require.Error(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Heat", list[0].Title)

	list, err = svc.RemoveAt(0)
	require.Error(t, err)
	assert.Len(t, list, 1)
	assert.True(t, svc.Contains("tt0113277"))
}

func TestSavedService_ListReturnsCopy(t *testing.T) {
	svc := NewSavedService(memStore(t), nil)
	svc.Load()
	_, err := svc.Toggle(movie("Heat", "1995", "tt0113277"))
	require.NoError(t, err)

	list := svc.List()
	list[0].Title = "changed"

	assert.Equal(t, "Heat", svc.List()[0].Title)
}

func TestSavedService_Search(t *testing.T) {
	svc := NewSavedService(memStore(t), nil)
	svc.Load()
	for _, m := range []domain.MovieRecord{
		movie("The Dark Knight", "2008", "tt0468569"),
		movie("Heat", "1995", "tt0113277"),
		movie("Dark City", "1998", "tt0118929"),
	} {
		_, err := svc.Toggle(m)
		require.NoError(t, err)
	}

	assert.Len(t, svc.Search(""), 3)
	assert.Len(t, svc.Search("  "), 3)

	results := svc.Search("dark")
	require.Len(t, results, 2)
	titles := []string{results[0].Title, results[1].Title}
	assert.ElementsMatch(t, []string{"The Dark Knight", "Dark City"}, titles)
	// Shorter target is the closer match
	assert.Equal(t, "Dark City", results[0].Title)

	assert.Empty(t, svc.Search("zzz"))
}
