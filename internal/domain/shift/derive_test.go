package shift

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDeriveVideoed(t *testing.T) {
	markers := []Marker{
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerStart, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T08:05:00Z")},
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerStart, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T08:00:00Z")},
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerEnd, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T16:00:00Z")},
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerEnd, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T16:30:00Z")},
	}
	got, ok := Derive(markers, nil)
	if !ok {
		t.Fatalf("expected a shift")
	}
	if got.Source != SourceVideoed {
		t.Fatalf("expected videoed, got %s", got.Source)
	}
	if !got.StartAt.Equal(at("2025-03-15T08:00:00Z")) {
		t.Fatalf("start must be the earliest start marker, got %v", got.StartAt)
	}
	if !got.EndAt.Equal(at("2025-03-15T16:30:00Z")) {
		t.Fatalf("end must be the latest end marker, got %v", got.EndAt)
	}
}

func TestDerivePartial(t *testing.T) {
	markers := []Marker{
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerStart, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T08:00:00Z")},
	}
	got, ok := Derive(markers, nil)
	if !ok || got.Source != SourcePartial {
		t.Fatalf("expected partial, got %+v ok=%v", got, ok)
	}
	if got.StartAt == nil || got.EndAt != nil {
		t.Fatalf("partial start-only must have nil end")
	}

	markers[0].Kind = MarkerEnd
	got, ok = Derive(markers, nil)
	if !ok || got.Source != SourcePartial {
		t.Fatalf("expected partial, got %+v ok=%v", got, ok)
	}
	if got.StartAt != nil || got.EndAt == nil {
		t.Fatalf("partial end-only must have nil start")
	}
}

func TestDeriveManualFallback(t *testing.T) {
	manual := &ManualShift{
		PromoterID: "p1", OrgID: "o1", Date: day("2025-03-15"),
		StartAt: at("2025-03-15T09:00:00Z"), EndAt: at("2025-03-15T17:00:00Z"),
	}
	got, ok := Derive(nil, manual)
	if !ok || got.Source != SourceManual {
		t.Fatalf("expected manual, got %+v ok=%v", got, ok)
	}
	if !got.StartAt.Equal(manual.StartAt) || !got.EndAt.Equal(manual.EndAt) {
		t.Fatalf("manual span must carry over")
	}
}

func TestDeriveVideoedShadowsManual(t *testing.T) {
	markers := []Marker{
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerStart, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T08:00:00Z")},
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerEnd, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T16:00:00Z")},
	}
	manual := &ManualShift{
		PromoterID: "p1", OrgID: "o1", Date: day("2025-03-15"),
		StartAt: at("2025-03-15T09:00:00Z"), EndAt: at("2025-03-15T17:00:00Z"),
	}
	got, ok := Derive(markers, manual)
	if !ok || got.Source != SourceVideoed {
		t.Fatalf("markers must shadow the manual row, got %+v", got)
	}
	if !got.StartAt.Equal(at("2025-03-15T08:00:00Z")) {
		t.Fatalf("span must come from markers, got %v", got.StartAt)
	}
}

func TestDeriveNone(t *testing.T) {
	if _, ok := Derive(nil, nil); ok {
		t.Fatalf("no markers and no manual row must derive nothing")
	}
}

func TestMergeOneShiftPerKey(t *testing.T) {
	markers := []Marker{
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerStart, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T08:00:00Z")},
		{PromoterID: "p1", OrgID: "o1", Kind: MarkerEnd, Date: day("2025-03-15"), CreatedAt: at("2025-03-15T16:00:00Z")},
	}
	manuals := []ManualShift{
		{PromoterID: "p1", OrgID: "o1", Date: day("2025-03-15"), StartAt: at("2025-03-15T09:00:00Z"), EndAt: at("2025-03-15T17:00:00Z")},
		{PromoterID: "p2", OrgID: "o1", Date: day("2025-03-15"), StartAt: at("2025-03-15T10:00:00Z"), EndAt: at("2025-03-15T18:00:00Z")},
	}

	got := Merge(markers, manuals)
	if len(got) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(got))
	}
	for _, s := range got {
		switch s.PromoterID {
		case "p1":
			if s.Source != SourceVideoed {
				t.Fatalf("p1 must be videoed, got %s", s.Source)
			}
		case "p2":
			if s.Source != SourceManual {
				t.Fatalf("p2 must be manual, got %s", s.Source)
			}
		default:
			t.Fatalf("unexpected promoter %s", s.PromoterID)
		}
	}
}

func TestMergeSortedDeterministically(t *testing.T) {
	manuals := []ManualShift{
		{PromoterID: "p2", OrgID: "o1", Date: day("2025-03-16"), StartAt: at("2025-03-16T10:00:00Z"), EndAt: at("2025-03-16T18:00:00Z")},
		{PromoterID: "p1", OrgID: "o2", Date: day("2025-03-15"), StartAt: at("2025-03-15T10:00:00Z"), EndAt: at("2025-03-15T18:00:00Z")},
		{PromoterID: "p1", OrgID: "o1", Date: day("2025-03-15"), StartAt: at("2025-03-15T10:00:00Z"), EndAt: at("2025-03-15T18:00:00Z")},
	}
	got := Merge(nil, manuals)
	if len(got) != 3 {
		t.Fatalf("expected 3 shifts, got %d", len(got))
	}
	if got[0].OrgID != "o1" || got[1].OrgID != "o2" || !got[2].Date.Equal(day("2025-03-16")) {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSyntheticTimesOneMinuteApart(t *testing.T) {
	start := at("2025-03-15T08:00:00Z")
	times := SyntheticTimes(start, 3)
	if len(times) != 3 {
		t.Fatalf("expected 3 timestamps, got %d", len(times))
	}
	for i, ts := range times {
		want := start.Add(time.Duration(i) * time.Minute)
		if !ts.Equal(want) {
			t.Fatalf("timestamp %d: expected %v, got %v", i, want, ts)
		}
	}
	if len(SyntheticTimes(start, 0)) != 0 {
		t.Fatalf("zero count must synthesize nothing")
	}
}
