package payroll

import "math"

const (
	// BonusThreshold is the contact count at which the full rate applies.
	BonusThreshold = 10
	// Shortfall is subtracted from the rate below the threshold. Historically
	// the rule was "300 vs 200" over a 300 baseline; rate-100 reproduces
	// those numbers for any rate of 200 and above.
	Shortfall = 100
)

// GrossPay computes per-shift pay: contacts * rate at or above the
// threshold, contacts * (rate - shortfall) below it. Rates under the
// shortfall clamp at zero rather than going negative.
func GrossPay(contacts, rate int) int {
	if contacts >= BonusThreshold {
		return contacts * rate
	}
	reduced := rate - Shortfall
	if reduced < 0 {
		reduced = 0
	}
	return contacts * reduced
}

// AverageRate is total pay over total contacts, rounded to the nearest
// integer. Zero contacts yields zero.
func AverageRate(totalPay, totalContacts int) int {
	if totalContacts == 0 {
		return 0
	}
	return int(math.Round(float64(totalPay) / float64(totalContacts)))
}
