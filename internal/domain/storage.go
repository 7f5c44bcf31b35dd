package domain

// SavedMoviesKey is the durable record holding the saved-movies list
const SavedMoviesKey = "moviefinder_saved_movies"

// KeyValueStore is local durable storage for whole records.
// Values are rewritten in full; there is no partial update.
type KeyValueStore interface {
	// Get returns the stored bytes and whether the key exists
	Get(key string) ([]byte, bool, error)

	// Put replaces the value for key
	Put(key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error

	Close() error
}

// PollProgress reports one step of an identification job.
type PollProgress struct {
	Job     JobID
	Attempt int  // Status checks issued so far
	Done    bool // Terminal step
	Result  *MovieRecord
	Error   error
}

// PollObserver receives progress updates while a job is polled.
type PollObserver interface {
	OnProgress(progress PollProgress)
}

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnProgress(PollProgress) {}
