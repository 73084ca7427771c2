package accounting

import "time"

// Row is the per-shift bookkeeping record, keyed by
// (promoter, business date, organization). Upsert semantics.
type Row struct {
	PromoterID string    `json:"promoterId"`
	Date       time.Time `json:"date"`
	OrgID      string    `json:"orgId"`

	ExpenseAmount int    `json:"expenseAmount"`
	ExpenseNote   string `json:"expenseNote,omitempty"`

	PaidByOrg          bool `json:"paidByOrg"`
	PaidToWorker       bool `json:"paidToWorker"`
	SalaryAtKVV        bool `json:"salaryAtKvv"`
	PaidKVV            bool `json:"paidKvv"`
	PaidKMS            bool `json:"paidKms"`
	InvoiceIssued      bool `json:"invoiceIssued"`
	InvoicePaid        bool `json:"invoicePaid"`
	PersonalFundsByKMS bool `json:"personalFundsByKms"`
	PersonalFundsByKVV bool `json:"personalFundsByKvv"`

	InvoiceIssuedDate *time.Time `json:"invoiceIssuedDate,omitempty"`
	InvoicePaidDate   *time.Time `json:"invoicePaidDate,omitempty"`

	PersonalFundsAmount int `json:"personalFundsAmount"`
	CompensationAmount  int `json:"compensationAmount"`
}
