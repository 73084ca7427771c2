package shift

import (
	"sort"
	"time"
)

// Derive produces the canonical shift for one (promoter, date, org) from its
// raw markers and optional manual row. Video markers win over the manual
// span: start is the earliest start marker, end the latest end marker,
// source "videoed" with both present and "partial" with one. The manual row
// only surfaces when no marker exists at all, which is what prevents a
// videoed day from being counted twice.
func Derive(markers []Marker, manual *ManualShift) (Shift, bool) {
	var start, end *time.Time
	var out Shift

	for i := range markers {
		m := &markers[i]
		switch m.Kind {
		case MarkerStart:
			if start == nil || m.CreatedAt.Before(*start) {
				t := m.CreatedAt
				start = &t
			}
		case MarkerEnd:
			if end == nil || m.CreatedAt.After(*end) {
				t := m.CreatedAt
				end = &t
			}
		}
		out.PromoterID = m.PromoterID
		out.OrgID = m.OrgID
		out.Date = m.Date
	}

	if start != nil || end != nil {
		out.StartAt = start
		out.EndAt = end
		if start != nil && end != nil {
			out.Source = SourceVideoed
		} else {
			out.Source = SourcePartial
		}
		return out, true
	}

	if manual != nil {
		s, e := manual.StartAt, manual.EndAt
		return Shift{
			PromoterID: manual.PromoterID,
			OrgID:      manual.OrgID,
			Date:       manual.Date,
			StartAt:    &s,
			EndAt:      &e,
			Source:     SourceManual,
		}, true
	}

	return Shift{}, false
}

type groupKey struct {
	promoterID string
	orgID      string
	date       time.Time
}

// Merge builds the merged listing: exactly one shift per
// (promoter, date, org), videoed shadowing manual whenever both exist.
func Merge(markers []Marker, manuals []ManualShift) []Shift {
	grouped := make(map[groupKey][]Marker)
	for _, m := range markers {
		key := groupKey{m.PromoterID, m.OrgID, m.Date}
		grouped[key] = append(grouped[key], m)
	}
	manualByKey := make(map[groupKey]*ManualShift)
	for i := range manuals {
		m := &manuals[i]
		manualByKey[groupKey{m.PromoterID, m.OrgID, m.Date}] = m
	}

	seen := make(map[groupKey]bool)
	var out []Shift
	for key, group := range grouped {
		if shift, ok := Derive(group, manualByKey[key]); ok {
			out = append(out, shift)
			seen[key] = true
		}
	}
	for key, manual := range manualByKey {
		if seen[key] {
			continue
		}
		if shift, ok := Derive(nil, manual); ok {
			out = append(out, shift)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].PromoterID != out[j].PromoterID {
			return out[i].PromoterID < out[j].PromoterID
		}
		return out[i].OrgID < out[j].OrgID
	})
	return out
}

// SyntheticTimes spaces n event timestamps one minute apart starting at the
// shift start. The spacing keeps synthesized rows from colliding with real
// per-minute events.
func SyntheticTimes(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.UTC().Add(time.Duration(i)*time.Minute))
	}
	return out
}
