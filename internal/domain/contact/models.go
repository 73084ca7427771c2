package contact

import "time"

const (
	KindContact  = "contact"
	KindApproach = "approach"

	// ResultAgreed is the positive outcome label the promoter app sends and
	// the shift editor stamps on synthesized events.
	ResultAgreed = "согласие"
)

type Event struct {
	ID         int64     `json:"id"`
	PromoterID string    `json:"promoterId"`
	OrgID      string    `json:"orgId"`
	Kind       string    `json:"kind"`
	Result     string    `json:"result,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Active     bool      `json:"active"`
	Comment    string    `json:"comment,omitempty"`
	ChannelRef string    `json:"channelRef,omitempty"`
}

// Key addresses one derived shift: promoter, business date, organization.
type Key struct {
	PromoterID string
	Date       time.Time
	OrgID      string
}
