package service

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reelfind/internal/domain"
)

// SavedService keeps the bookmarked movies in memory and mirrors the full
// list to the durable record on every mutation.
type SavedService struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu     sync.Mutex // Serializes mutations and their writes
	movies []domain.SavedMovie
}

// NewSavedService creates a saved-movies service. Call Load before use.
func NewSavedService(kv domain.KeyValueStore, logger *slog.Logger) *SavedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedService{
		kv:     kv,
		logger: logger,
		movies: []domain.SavedMovie{},
	}
}

// Load reads the durable record. A record that fails to parse is deleted
// and an empty list is returned.
func (s *SavedService) Load() []domain.SavedMovie {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies = s.readRecord()
	return s.copyLocked()
}

func (s *SavedService) readRecord() []domain.SavedMovie {
	data, ok, err := s.kv.Get(domain.SavedMoviesKey)
	if err != nil {
		s.logger.Error("failed to read saved movies", "error", err)
		return []domain.SavedMovie{}
	}
	if !ok {
		return []domain.SavedMovie{}
	}

	var movies []domain.SavedMovie
	if err := json.Unmarshal(data, &movies); err != nil {
		s.logger.Warn("discarding saved movies record", "error", domain.ErrCacheCorrupt, "cause", err)
		if err := s.kv.Delete(domain.SavedMoviesKey); err != nil {
			s.logger.Error("failed to clear corrupt saved movies record", "error", err)
		}
		return []domain.SavedMovie{}
	}
	if movies == nil {
		movies = []domain.SavedMovie{}
	}

	s.logger.Debug("loaded saved movies", "count", len(movies))
	return movies
}

// List returns the saved movies, newest first
func (s *SavedService) List() []domain.SavedMovie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Contains returns true if a movie with the external ID is saved
func (s *SavedService) Contains(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// Toggle saves the movie at the head of the list, or removes it if already
// saved. Records without an external ID are left alone.
func (s *SavedService) Toggle(m domain.MovieRecord) ([]domain.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := m.ExternalID()
	if id == "" {
		s.logger.Debug("ignoring bookmark toggle without external id", "title", m.Title)
		return s.copyLocked(), nil
	}

	var next []domain.SavedMovie
	if i := s.indexLocked(id); i >= 0 {
		next = without(s.movies, i)
	} else {
		next = make([]domain.SavedMovie, 0, len(s.movies)+1)
		next = append(next, domain.NewSavedMovie(m))
		next = append(next, s.movies...)
	}

	if err := s.commitLocked(next); err != nil {
		return s.copyLocked(), err
	}
	return s.copyLocked(), nil
}

// RemoveAt removes the movie at index i. Out-of-range indexes are a no-op.
func (s *SavedService) RemoveAt(i int) ([]domain.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.movies) {
		return s.copyLocked(), nil
	}

	if err := s.commitLocked(without(s.movies, i)); err != nil {
		return s.copyLocked(), err
	}
	return s.copyLocked(), nil
}

// Search fuzzy-matches saved titles against query, best match first.
// An empty query returns the whole list.
func (s *SavedService) Search(query string) []domain.SavedMovie {
	movies := s.List()

	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better), keeping list order on ties
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	results := make([]domain.SavedMovie, 0, len(matches))
	for _, match := range matches {
		results = append(results, movies[match.OriginalIndex])
	}
	return results
}

// commitLocked writes next to durable storage, then adopts it.
// On a failed write the in-memory list is unchanged.
func (s *SavedService) commitLocked(next []domain.SavedMovie) error {
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.kv.Put(domain.SavedMoviesKey, data); err != nil {
		s.logger.Error("failed to write saved movies", "error", err)
		return err
	}
	s.movies = next
	return nil
}

func (s *SavedService) indexLocked(id string) int {
	for i, m := range s.movies {
		if m.IMDbID == id {
			return i
		}
	}
	return -1
}

func (s *SavedService) copyLocked() []domain.SavedMovie {
	out := make([]domain.SavedMovie, len(s.movies))
	copy(out, s.movies)
	return out
}

// without returns a new slice with element i removed
func without(movies []domain.SavedMovie, i int) []domain.SavedMovie {
	out := make([]domain.SavedMovie, 0, len(movies)-1)
	out = append(out, movies[:i]...)
	return append(out, movies[i+1:]...)
}
