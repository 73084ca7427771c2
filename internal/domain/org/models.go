package org

import "time"

const (
	PaymentCash     = "cash"
	PaymentCashless = "cashless"
)

type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	ContactRate int    `json:"contactRate"`
	PaymentType string `json:"paymentType"`
}

// RatePeriod overrides an organization's default contact rate between
// StartDate and EndDate inclusive. A nil EndDate means open-ended.
type RatePeriod struct {
	ID          int64      `json:"id"`
	OrgID       string     `json:"orgId"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	ContactRate int        `json:"contactRate"`
	PaymentType string     `json:"paymentType"`
}

// Rate is what the resolver hands to payroll.
type Rate struct {
	ContactRate int    `json:"contactRate"`
	PaymentType string `json:"paymentType"`
}
