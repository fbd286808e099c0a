package staff

import (
	"testing"
	"time"
)

func TestParseQueryTime(t *testing.T) {
	if got := parseQueryTime(""); got != nil {
		t.Fatalf("empty input should return nil, got %v", got)
	}

	got := parseQueryTime("2026-08-30T10:15:00Z")
	if got == nil {
		t.Fatalf("RFC3339 input should parse")
	}
	if got.UTC().Hour() != 10 {
		t.Fatalf("hour want 10 got %d", got.UTC().Hour())
	}

	got = parseQueryTime("2026-08-30")
	if got == nil {
		t.Fatalf("date-only input should parse")
	}
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("date want %v got %v", want, got)
	}

	if got := parseQueryTime("yesterday"); got != nil {
		t.Fatalf("unparseable input should return nil, got %v", got)
	}
}
