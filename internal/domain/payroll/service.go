package payroll

import (
	"context"
	"sort"
	"time"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/org"
	"promoback/internal/domain/shift"
)

type Totals struct {
	Key         string `json:"key"`
	Contacts    int    `json:"contacts"`
	Shifts      int    `json:"shifts"`
	GrossPay    int    `json:"grossPay"`
	AverageRate int    `json:"averageRate"`
}

// ShiftPay is one priced shift, the unit both aggregations sum over.
type ShiftPay struct {
	PromoterID  string    `json:"promoterId"`
	OrgID       string    `json:"orgId"`
	Date        time.Time `json:"date"`
	Contacts    int       `json:"contacts"`
	Rate        int       `json:"rate"`
	PaymentType string    `json:"paymentType"`
	GrossPay    int       `json:"grossPay"`
}

type Service struct {
	Shifts   *shift.Store
	Contacts *contact.Store
	Orgs     *org.Store
}

func NewService(shifts *shift.Store, contacts *contact.Store, orgs *org.Store) *Service {
	return &Service{Shifts: shifts, Contacts: contacts, Orgs: orgs}
}

// PricedShifts derives every shift in the range, attaches its contact count
// through the aggregator and prices it with the rate in effect on its date.
func (s *Service) PricedShifts(ctx context.Context, from, to time.Time) ([]ShiftPay, error) {
	shifts, err := s.Shifts.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, nil
	}

	keys := make([]contact.Key, 0, len(shifts))
	for _, sh := range shifts {
		keys = append(keys, contact.Key{PromoterID: sh.PromoterID, Date: sh.Date, OrgID: sh.OrgID})
	}
	counts, err := s.Contacts.CountBulk(ctx, keys)
	if err != nil {
		return nil, err
	}

	// One organizations+periods fetch per distinct org, not per shift.
	orgCache := make(map[string]org.Organization)
	periodCache := make(map[string][]org.RatePeriod)
	for _, sh := range shifts {
		if _, ok := orgCache[sh.OrgID]; ok {
			continue
		}
		organization, err := s.Orgs.Get(ctx, sh.OrgID)
		if err != nil {
			return nil, err
		}
		periods, err := s.Orgs.ListPeriods(ctx, sh.OrgID)
		if err != nil {
			return nil, err
		}
		orgCache[sh.OrgID] = organization
		periodCache[sh.OrgID] = periods
	}

	out := make([]ShiftPay, 0, len(shifts))
	for _, sh := range shifts {
		count := counts[contact.Key{PromoterID: sh.PromoterID, Date: busday.Date(sh.Date), OrgID: sh.OrgID}]
		rate := org.ResolveRate(orgCache[sh.OrgID], periodCache[sh.OrgID], sh.Date)
		out = append(out, ShiftPay{
			PromoterID:  sh.PromoterID,
			OrgID:       sh.OrgID,
			Date:        sh.Date,
			Contacts:    count,
			Rate:        rate.ContactRate,
			PaymentType: rate.PaymentType,
			GrossPay:    GrossPay(count, rate.ContactRate),
		})
	}
	return out, nil
}

func (s *Service) ByPromoter(ctx context.Context, from, to time.Time) ([]Totals, error) {
	priced, err := s.PricedShifts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return aggregate(priced, func(p ShiftPay) string { return p.PromoterID }), nil
}

func (s *Service) ByOrganization(ctx context.Context, from, to time.Time) ([]Totals, error) {
	priced, err := s.PricedShifts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return aggregate(priced, func(p ShiftPay) string { return p.OrgID }), nil
}

func aggregate(priced []ShiftPay, keyOf func(ShiftPay) string) []Totals {
	grouped := make(map[string]*Totals)
	for _, p := range priced {
		key := keyOf(p)
		totals, ok := grouped[key]
		if !ok {
			totals = &Totals{Key: key}
			grouped[key] = totals
		}
		totals.Contacts += p.Contacts
		totals.Shifts++
		totals.GrossPay += p.GrossPay
	}

	out := make([]Totals, 0, len(grouped))
	for _, totals := range grouped {
		totals.AverageRate = AverageRate(totals.GrossPay, totals.Contacts)
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
