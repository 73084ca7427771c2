package shift

import "time"

const (
	MarkerStart = "start"
	MarkerEnd   = "end"

	SourceVideoed = "videoed"
	SourcePartial = "partial"
	SourceManual  = "manual"
)

// Marker is one start/end video marker sent by the promoter app.
type Marker struct {
	ID         int64     `json:"id"`
	PromoterID string    `json:"promoterId"`
	OrgID      string    `json:"orgId"`
	Kind       string    `json:"kind"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ManualShift is an admin-entered span, unique per (promoter, date, org).
type ManualShift struct {
	ID         int64     `json:"id"`
	PromoterID string    `json:"promoterId"`
	OrgID      string    `json:"orgId"`
	Date       time.Time `json:"date"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

// Shift is never stored; it is derived on read from markers or manual rows
// so that contact events stay the single source of truth.
type Shift struct {
	PromoterID string     `json:"promoterId"`
	OrgID      string     `json:"orgId"`
	Date       time.Time  `json:"date"`
	StartAt    *time.Time `json:"startAt,omitempty"`
	EndAt      *time.Time `json:"endAt,omitempty"`
	Source     string     `json:"source"`
	Contacts   int        `json:"contacts"`
}
