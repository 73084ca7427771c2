package org

import "time"

// ResolveRate picks the rate in effect for an organization on a business
// date. Every period whose start is on or before the date and whose end is
// absent or on or after the date is a candidate; the greatest start date
// wins, ties broken by greatest id so overlapping periods resolve
// last-writer-wins. With no candidate the organization defaults apply, which
// makes the resolver total over all dates.
func ResolveRate(organization Organization, periods []RatePeriod, date time.Time) Rate {
	var best *RatePeriod
	for i := range periods {
		p := &periods[i]
		if p.OrgID != "" && p.OrgID != organization.ID {
			continue
		}
		if p.StartDate.After(date) {
			continue
		}
		if p.EndDate != nil && p.EndDate.Before(date) {
			continue
		}
		if best == nil || p.StartDate.After(best.StartDate) ||
			(p.StartDate.Equal(best.StartDate) && p.ID > best.ID) {
			best = p
		}
	}
	if best == nil {
		return Rate{ContactRate: organization.ContactRate, PaymentType: organization.PaymentType}
	}
	return Rate{ContactRate: best.ContactRate, PaymentType: best.PaymentType}
}
