package org

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(value string) *time.Time {
	d := date(value)
	return &d
}

var testOrg = Organization{ID: "o1", Name: "Org", Active: true, ContactRate: 200, PaymentType: PaymentCash}

func TestResolveRateFallsBackToDefaults(t *testing.T) {
	got := ResolveRate(testOrg, nil, date("2025-03-15"))
	if got.ContactRate != 200 || got.PaymentType != PaymentCash {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestResolveRateBoundaries(t *testing.T) {
	periods := []RatePeriod{
		{ID: 1, OrgID: "o1", StartDate: date("2025-06-01"), EndDate: datePtr("2025-06-30"), ContactRate: 300, PaymentType: PaymentCashless},
	}

	cases := []struct {
		day  string
		rate int
	}{
		{"2025-05-31", 200}, // day before start
		{"2025-06-01", 300}, // exactly start
		{"2025-06-30", 300}, // exactly end
		{"2025-07-01", 200}, // day after end
	}
	for _, tc := range cases {
		got := ResolveRate(testOrg, periods, date(tc.day))
		if got.ContactRate != tc.rate {
			t.Fatalf("%s: expected rate %d, got %d", tc.day, tc.rate, got.ContactRate)
		}
	}
}

func TestResolveRateOpenEnded(t *testing.T) {
	periods := []RatePeriod{
		{ID: 1, OrgID: "o1", StartDate: date("2025-06-01"), ContactRate: 300, PaymentType: PaymentCashless},
	}
	got := ResolveRate(testOrg, periods, date("2030-01-01"))
	if got.ContactRate != 300 || got.PaymentType != PaymentCashless {
		t.Fatalf("open-ended period must keep applying, got %+v", got)
	}
}

func TestResolveRateGreatestStartWins(t *testing.T) {
	periods := []RatePeriod{
		{ID: 1, OrgID: "o1", StartDate: date("2025-01-01"), ContactRate: 250},
		{ID: 2, OrgID: "o1", StartDate: date("2025-06-01"), ContactRate: 300},
	}
	got := ResolveRate(testOrg, periods, date("2025-07-10"))
	if got.ContactRate != 300 {
		t.Fatalf("most recent start must win, got %d", got.ContactRate)
	}
	got = ResolveRate(testOrg, periods, date("2025-03-10"))
	if got.ContactRate != 250 {
		t.Fatalf("earlier date must see earlier period, got %d", got.ContactRate)
	}
}

func TestResolveRateTieBreakOnGreatestID(t *testing.T) {
	periods := []RatePeriod{
		{ID: 7, OrgID: "o1", StartDate: date("2025-06-01"), ContactRate: 280},
		{ID: 9, OrgID: "o1", StartDate: date("2025-06-01"), ContactRate: 320},
		{ID: 8, OrgID: "o1", StartDate: date("2025-06-01"), ContactRate: 310},
	}
	got := ResolveRate(testOrg, periods, date("2025-06-15"))
	if got.ContactRate != 320 {
		t.Fatalf("greatest id must win the tie, got %d", got.ContactRate)
	}
}
