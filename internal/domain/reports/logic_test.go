package reports

import (
	"testing"
	"time"

	"promoback/internal/domain/payroll"
)

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSortActivityNoShiftFirstThenDaysDescending(t *testing.T) {
	d10 := day("2025-03-05")
	d3 := day("2025-03-12")
	rows := []ActivityRow{
		{OrgID: "a", OrgName: "Alpha", LastShiftDate: &d3, DaysSinceLast: 3, HadShiftInRange: true},
		{OrgID: "b", OrgName: "Beta", DaysSinceLast: -1, HadShiftInRange: false},
		{OrgID: "c", OrgName: "Gamma", LastShiftDate: &d10, DaysSinceLast: 10, HadShiftInRange: false},
		{OrgID: "d", OrgName: "Delta", LastShiftDate: &d10, DaysSinceLast: 10, HadShiftInRange: true},
	}
	SortActivity(rows)

	if rows[0].OrgID != "c" {
		t.Fatalf("stale org with no in-range shift must come first, got %s", rows[0].OrgID)
	}
	if rows[1].OrgID != "b" {
		t.Fatalf("never-worked org follows by days ordering, got %s", rows[1].OrgID)
	}
	if !rows[2].HadShiftInRange || !rows[3].HadShiftInRange {
		t.Fatalf("in-range orgs must come last: %+v", rows)
	}
	if rows[2].OrgID != "d" || rows[3].OrgID != "a" {
		t.Fatalf("in-range orgs must sort by days descending, got %s then %s", rows[2].OrgID, rows[3].OrgID)
	}
}

func TestDaysSince(t *testing.T) {
	ref := day("2025-03-15")
	last := day("2025-03-12")
	if got := DaysSince(&last, ref); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := DaysSince(nil, ref); got != -1 {
		t.Fatalf("expected -1 for never, got %d", got)
	}
	if got := DaysSince(&ref, ref); got != 0 {
		t.Fatalf("expected 0 for same day, got %d", got)
	}
}

func TestBuildLeaderboardSingleShift(t *testing.T) {
	priced := []payroll.ShiftPay{
		{PromoterID: "p1", OrgID: "o1", Date: day("2025-03-15"), Contacts: 7, Rate: 200, GrossPay: 700},
	}
	rows := BuildLeaderboard(priced)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Contacts != 7 || row.Shifts != 1 || row.AvgPerShift != 7 || row.MaxContacts != 7 || row.GrossPay != 700 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestBuildLeaderboardAggregatesAndRanks(t *testing.T) {
	priced := []payroll.ShiftPay{
		{PromoterID: "p1", Contacts: 7, GrossPay: 700},
		{PromoterID: "p1", Contacts: 12, GrossPay: 2400},
		{PromoterID: "p2", Contacts: 10, GrossPay: 2000},
	}
	rows := BuildLeaderboard(priced)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].PromoterID != "p1" {
		t.Fatalf("p1 has more contacts and must rank first, got %s", rows[0].PromoterID)
	}
	p1 := rows[0]
	if p1.Contacts != 19 || p1.Shifts != 2 || p1.MaxContacts != 12 || p1.GrossPay != 3100 {
		t.Fatalf("unexpected p1 row: %+v", p1)
	}
	if p1.AvgPerShift != 10 { // round(19/2)
		t.Fatalf("expected avg 10, got %d", p1.AvgPerShift)
	}
}
