package reports

import "time"

type DailyOrgRow struct {
	OrgID      string `json:"orgId"`
	Contacts   int    `json:"contacts"`
	Approaches int    `json:"approaches"`
}

type DailyPromoterRow struct {
	PromoterID string        `json:"promoterId"`
	Total      int           `json:"total"`
	Contacts   int           `json:"contacts"`
	Approaches int           `json:"approaches"`
	Orgs       []DailyOrgRow `json:"orgs"`
}

type ActivityRow struct {
	OrgID           string     `json:"orgId"`
	OrgName         string     `json:"orgName"`
	LastShiftDate   *time.Time `json:"lastShiftDate,omitempty"`
	DaysSinceLast   int        `json:"daysSinceLast"`
	HadShiftInRange bool       `json:"hadShiftInRange"`
}

type LeaderboardRow struct {
	PromoterID  string `json:"promoterId"`
	Contacts    int    `json:"contacts"`
	Shifts      int    `json:"shifts"`
	AvgPerShift int    `json:"avgPerShift"`
	MaxContacts int    `json:"maxContacts"`
	GrossPay    int    `json:"grossPay"`
}
