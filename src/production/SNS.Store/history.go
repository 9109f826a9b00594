package store

import (
	"sync"
	"time"

	snsmodels "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Models"
)

// History owns the bounded most-recent-first entry list and the
// process-wide Counters. Gin handlers run on concurrent goroutines, so
// every read-modify-write on either goes through the mutex.
type History struct {
	mu       sync.Mutex
	cap      int
	nextID   int64
	entries  []snsmodels.Entry
	counters snsmodels.Counters
}

// NewHistory creates an empty history bounded to cap entries. The cap
// applies to the primary ingest path only; see InsertUncapped.
func NewHistory(cap int) *History {
	return &History{
		cap:     cap,
		entries: make([]snsmodels.Entry, 0, cap),
	}
}

// Touch records one inbound request: total-request count +1 and
// last-request timestamp. Called before any parsing so failed ingests
// are counted too.
func (h *History) Touch() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now().UTC()
	h.counters.TotalRequests++
	h.counters.LastRequest = &now
}

// Insert stores a reading at the front of the history, trims the tail
// beyond the cap, and counts one successful ingest. The reading's ID
// token is assigned here from a process-monotonic sequence. Returns the
// stored reading and the new history length.
func (h *History) Insert(r snsmodels.Reading) (snsmodels.Reading, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	r.ID = h.nextID

	h.entries = append([]snsmodels.Entry{r}, h.entries...)
	if len(h.entries) > h.cap {
		h.entries = h.entries[:h.cap]
	}
	h.counters.SuccessfulPosts++

	return r, len(h.entries)
}

// InsertUncapped stores a query-string entry at the front of the
// history without enforcing the cap. The primary POST path trims on
// every insert, so the list stays near the cap in practice; this path
// deliberately skips the trim to match the original endpoint's
// behavior.
func (h *History) InsertUncapped(e snsmodels.SimpleEntry) snsmodels.SimpleEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]snsmodels.Entry{e}, h.entries...)
	return e
}

// Snapshot returns a copy of the current entries (most recent first)
// and the counters. The copy keeps callers from racing later inserts.
func (h *History) Snapshot() ([]snsmodels.Entry, snsmodels.Counters) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]snsmodels.Entry, len(h.entries))
	copy(entries, h.entries)
	return entries, h.counters
}

// Recent returns a copy of the n most recent entries.
func (h *History) Recent(n int) []snsmodels.Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	entries := make([]snsmodels.Entry, n)
	copy(entries, h.entries[:n])
	return entries
}

// Len returns the current history length.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Counters returns a snapshot of the request tallies.
func (h *History) Counters() snsmodels.Counters {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counters
}
