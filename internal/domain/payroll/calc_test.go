package payroll

import "testing"

func TestGrossPayTiers(t *testing.T) {
	cases := []struct {
		name     string
		contacts int
		rate     int
		want     int
	}{
		{"below threshold", 7, 200, 700},
		{"at threshold", 10, 200, 2000},
		{"just below threshold", 9, 200, 900},
		{"raised rate at threshold", 10, 300, 3000},
		{"raised rate below threshold", 7, 300, 1400},
		{"zero contacts", 0, 200, 0},
		{"rate below shortfall clamps", 5, 50, 0},
	}
	for _, tc := range cases {
		if got := GrossPay(tc.contacts, tc.rate); got != tc.want {
			t.Fatalf("%s: GrossPay(%d, %d) = %d, want %d", tc.name, tc.contacts, tc.rate, got, tc.want)
		}
	}
}

func TestAverageRate(t *testing.T) {
	if got := AverageRate(700, 7); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := AverageRate(2000, 10); got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}
	if got := AverageRate(1000, 3); got != 333 {
		t.Fatalf("expected 333, got %d", got)
	}
	if got := AverageRate(500, 3); got != 167 {
		t.Fatalf("expected rounding to 167, got %d", got)
	}
	if got := AverageRate(0, 0); got != 0 {
		t.Fatalf("zero contacts must yield 0, got %d", got)
	}
}
