package busday

import (
	"testing"
	"time"
)

func TestDateBoundary(t *testing.T) {
	before := time.Date(2025, 3, 14, 20, 59, 59, 0, time.UTC)
	after := time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)

	if got := Date(before); !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2025-03-14, got %v", got)
	}
	if got := Date(after); !got.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2025-03-15, got %v", got)
	}
}

func TestDateIgnoresInputZone(t *testing.T) {
	zone := time.FixedZone("weird", -7*3600)
	instant := time.Date(2025, 3, 14, 13, 59, 59, 0, zone) // 20:59:59 UTC
	if got := Date(instant); !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2025-03-14, got %v", got)
	}
}

func TestSpan(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	start, end := Span(date)
	if !start.Equal(time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected span start %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 15, 21, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected span end %v", end)
	}
	if got := Date(start); !got.Equal(date) {
		t.Fatalf("span start must land on its own date, got %v", got)
	}
	if got := Date(end.Add(-time.Second)); !got.Equal(date) {
		t.Fatalf("last second of span must land on its own date, got %v", got)
	}
	if got := Date(end); got.Equal(date) {
		t.Fatalf("span end is exclusive, must belong to the next date")
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := At(date, 12, 30)
	if !got.Equal(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("12:30 business must be 09:30 UTC, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("At must return UTC instants")
	}
}

func TestParseFormatDate(t *testing.T) {
	date, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if FormatDate(date) != "2025-03-15" {
		t.Fatalf("round trip failed: %s", FormatDate(date))
	}
	if _, err := ParseDate("15.03.2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
