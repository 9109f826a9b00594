package snsingestor

import (
	"testing"
	"time"

	snsmodels "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Models"
)

func TestReadingFromPayloadParsesJSON(t *testing.T) {
	received := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	r := ReadingFromPayload("sensors/room1", []byte(`{"temp":25.5,"hum":60.0}`), received)

	if r.Temperature != 25.5 || r.Humidity != 60 {
		t.Fatalf("parsed %v/%v, want 25.5/60", r.Temperature, r.Humidity)
	}
	if r.Source != snsmodels.SourceMQTT {
		t.Fatalf("expected mqtt source, got %q", r.Source)
	}
	if r.ClientID != "sensors/room1" {
		t.Fatalf("expected the topic as client id, got %q", r.ClientID)
	}
	if !r.ReceivedAt.Equal(received) || !r.Timestamp.Equal(received) {
		t.Fatalf("expected both timestamps to default to arrival time, got %v/%v", r.Timestamp, r.ReceivedAt)
	}
}

func TestReadingFromPayloadUsesPayloadTimestamp(t *testing.T) {
	received := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	r := ReadingFromPayload("sensors/room1", []byte(`{"temp":1,"hum":2,"timestamp":"2026-08-01T11:59:00Z"}`), received)

	want := time.Date(2026, 8, 1, 11, 59, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Fatalf("expected payload timestamp %v, got %v", want, r.Timestamp)
	}
	if !r.ReceivedAt.Equal(received) {
		t.Fatalf("arrival time must stay %v, got %v", received, r.ReceivedAt)
	}
}

// The bridge shares the HTTP path's coercion policy: garbage never
// rejects a sample, it degrades to zeros.
func TestReadingFromPayloadCoercesGarbageToZero(t *testing.T) {
	received := time.Now().UTC()

	cases := []struct {
		name string
		body string
	}{
		{"not JSON", "temp is 25"},
		{"wrong types", `{"temp":{"v":1},"hum":false}`},
		{"missing fields", `{"battery":98}`},
		{"empty body", ""},
	}

	for _, tc := range cases {
		r := ReadingFromPayload("sensors/x", []byte(tc.body), received)
		if r.Temperature != 0 || r.Humidity != 0 {
			t.Fatalf("%s: expected zeros, got %v/%v", tc.name, r.Temperature, r.Humidity)
		}
	}
}

func TestReadingFromPayloadIgnoresBadTimestamp(t *testing.T) {
	received := time.Now().UTC()

	r := ReadingFromPayload("sensors/x", []byte(`{"temp":1,"hum":2,"timestamp":"yesterday"}`), received)
	if !r.Timestamp.Equal(received) {
		t.Fatalf("unparsable timestamp must fall back to arrival time, got %v", r.Timestamp)
	}
}
