package accounting

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"promoback/internal/platform/querier"
)

var ErrNotFound = errors.New("строка учёта не найдена")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Upsert(ctx context.Context, row Row) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO accounting_rows (
      promoter_id, date, org_id,
      expense_amount, expense_note,
      paid_by_org, paid_to_worker, salary_at_kvv, paid_kvv, paid_kms,
      invoice_issued, invoice_paid, personal_funds_by_kms, personal_funds_by_kvv,
      invoice_issued_date, invoice_paid_date,
      personal_funds_amount, compensation_amount
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    ON CONFLICT (promoter_id, date, org_id) DO UPDATE SET
      expense_amount = EXCLUDED.expense_amount,
      expense_note = EXCLUDED.expense_note,
      paid_by_org = EXCLUDED.paid_by_org,
      paid_to_worker = EXCLUDED.paid_to_worker,
      salary_at_kvv = EXCLUDED.salary_at_kvv,
      paid_kvv = EXCLUDED.paid_kvv,
      paid_kms = EXCLUDED.paid_kms,
      invoice_issued = EXCLUDED.invoice_issued,
      invoice_paid = EXCLUDED.invoice_paid,
      personal_funds_by_kms = EXCLUDED.personal_funds_by_kms,
      personal_funds_by_kvv = EXCLUDED.personal_funds_by_kvv,
      invoice_issued_date = EXCLUDED.invoice_issued_date,
      invoice_paid_date = EXCLUDED.invoice_paid_date,
      personal_funds_amount = EXCLUDED.personal_funds_amount,
      compensation_amount = EXCLUDED.compensation_amount
  `,
		row.PromoterID, row.Date, row.OrgID,
		row.ExpenseAmount, row.ExpenseNote,
		row.PaidByOrg, row.PaidToWorker, row.SalaryAtKVV, row.PaidKVV, row.PaidKMS,
		row.InvoiceIssued, row.InvoicePaid, row.PersonalFundsByKMS, row.PersonalFundsByKVV,
		row.InvoiceIssuedDate, row.InvoicePaidDate,
		row.PersonalFundsAmount, row.CompensationAmount,
	)
	return err
}

func (s *Store) Get(ctx context.Context, promoterID string, date time.Time, orgID string) (Row, error) {
	var row Row
	err := s.DB.QueryRow(ctx, `
    SELECT promoter_id, date, org_id,
           expense_amount, COALESCE(expense_note, ''),
           paid_by_org, paid_to_worker, salary_at_kvv, paid_kvv, paid_kms,
           invoice_issued, invoice_paid, personal_funds_by_kms, personal_funds_by_kvv,
           invoice_issued_date, invoice_paid_date,
           personal_funds_amount, compensation_amount
    FROM accounting_rows
    WHERE promoter_id = $1 AND date = $2 AND org_id = $3
  `, promoterID, date, orgID).Scan(
		&row.PromoterID, &row.Date, &row.OrgID,
		&row.ExpenseAmount, &row.ExpenseNote,
		&row.PaidByOrg, &row.PaidToWorker, &row.SalaryAtKVV, &row.PaidKVV, &row.PaidKMS,
		&row.InvoiceIssued, &row.InvoicePaid, &row.PersonalFundsByKMS, &row.PersonalFundsByKVV,
		&row.InvoiceIssuedDate, &row.InvoicePaidDate,
		&row.PersonalFundsAmount, &row.CompensationAmount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, ErrNotFound
	}
	return row, err
}

func (s *Store) Delete(ctx context.Context, promoterID string, date time.Time, orgID string) error {
	_, err := s.DB.Exec(ctx,
		"DELETE FROM accounting_rows WHERE promoter_id = $1 AND date = $2 AND org_id = $3",
		promoterID, date, orgID)
	return err
}

func (s *Store) ListForDate(ctx context.Context, date time.Time) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT promoter_id, date, org_id,
           expense_amount, COALESCE(expense_note, ''),
           paid_by_org, paid_to_worker, salary_at_kvv, paid_kvv, paid_kms,
           invoice_issued, invoice_paid, personal_funds_by_kms, personal_funds_by_kvv,
           invoice_issued_date, invoice_paid_date,
           personal_funds_amount, compensation_amount
    FROM accounting_rows
    WHERE date = $1
    ORDER BY promoter_id, org_id
  `, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.PromoterID, &row.Date, &row.OrgID,
			&row.ExpenseAmount, &row.ExpenseNote,
			&row.PaidByOrg, &row.PaidToWorker, &row.SalaryAtKVV, &row.PaidKVV, &row.PaidKMS,
			&row.InvoiceIssued, &row.InvoicePaid, &row.PersonalFundsByKMS, &row.PersonalFundsByKVV,
			&row.InvoiceIssuedDate, &row.InvoicePaidDate,
			&row.PersonalFundsAmount, &row.CompensationAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
