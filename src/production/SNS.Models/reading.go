package snsmodels

import "time"

// Entry is a stored history element. The POST path stores Readings and
// the query-string path stores SimpleEntries; both live in one history.
type Entry interface {
	EntryTime() time.Time
	EntryTemperature() string
	EntryHumidity() string
}

// Reading is one ingested sensor sample. Immutable once created; only
// evicted in bulk when the history cap trims the tail.
type Reading struct {
	ID          int64     `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
	ReceivedAt  time.Time `json:"received_at"`
	ClientID    string    `json:"client_id,omitempty"`
	Source      string    `json:"source"`
}

// SimpleEntry is the lighter-weight record stored by the query-string
// ingest path. Values are kept exactly as received, without numeric
// coercion.
type SimpleEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature string    `json:"temperature"`
	Humidity    string    `json:"humidity"`
	Method      string    `json:"method"`
}

// Counters are the process-wide request tallies. Counts are
// monotonically non-decreasing; LastRequest is nil until the first
// request arrives.
type Counters struct {
	TotalRequests   int64      `json:"totalRequests"`
	SuccessfulPosts int64      `json:"successfulPosts"`
	LastRequest     *time.Time `json:"lastRequest"`
}

// Ingest sources
const (
	SourceHTTP = "http"
	SourceMQTT = "mqtt"
)

func (r Reading) EntryTime() time.Time { return r.Timestamp }

func (r Reading) EntryTemperature() string { return FormatNumber(r.Temperature) }

func (r Reading) EntryHumidity() string { return FormatNumber(r.Humidity) }

func (e SimpleEntry) EntryTime() time.Time { return e.Timestamp }

func (e SimpleEntry) EntryTemperature() string { return e.Temperature }

func (e SimpleEntry) EntryHumidity() string { return e.Humidity }
