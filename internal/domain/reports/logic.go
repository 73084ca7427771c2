package reports

import (
	"sort"
	"time"

	"promoback/internal/domain/payroll"
)

// SortActivity orders the activity panel: organizations with no shift in
// range come first, then by days since last shift descending, so the most
// neglected organizations top the panel. Ties fall back to name.
func SortActivity(rows []ActivityRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HadShiftInRange != rows[j].HadShiftInRange {
			return !rows[i].HadShiftInRange
		}
		if rows[i].DaysSinceLast != rows[j].DaysSinceLast {
			return rows[i].DaysSinceLast > rows[j].DaysSinceLast
		}
		return rows[i].OrgName < rows[j].OrgName
	})
}

// DaysSince counts whole business days between a shift date and a reference
// date. Organizations that never had a shift report -1 and sort above
// everything through SortActivity's missing-shift rule.
func DaysSince(last *time.Time, ref time.Time) int {
	if last == nil {
		return -1
	}
	return int(ref.Sub(*last).Hours() / 24)
}

// BuildLeaderboard folds priced shifts into per-promoter leaderboard rows,
// sorted by total contacts descending.
func BuildLeaderboard(priced []payroll.ShiftPay) []LeaderboardRow {
	grouped := make(map[string]*LeaderboardRow)
	for _, p := range priced {
		row, ok := grouped[p.PromoterID]
		if !ok {
			row = &LeaderboardRow{PromoterID: p.PromoterID}
			grouped[p.PromoterID] = row
		}
		row.Contacts += p.Contacts
		row.Shifts++
		row.GrossPay += p.GrossPay
		if p.Contacts > row.MaxContacts {
			row.MaxContacts = p.Contacts
		}
	}

	out := make([]LeaderboardRow, 0, len(grouped))
	for _, row := range grouped {
		row.AvgPerShift = payroll.AverageRate(row.Contacts, row.Shifts)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contacts != out[j].Contacts {
			return out[i].Contacts > out[j].Contacts
		}
		return out[i].PromoterID < out[j].PromoterID
	})
	return out
}
