package org

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"promoback/internal/platform/querier"
)

var (
	ErrNotFound       = errors.New("организация не найдена")
	ErrPeriodConflict = errors.New("ставка на эти даты уже существует")
	ErrPeriodNotFound = errors.New("период ставки не найден")
	ErrNegativeRate   = errors.New("ставка не может быть отрицательной")
	ErrBadPaymentType = errors.New("неизвестный тип оплаты")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]Organization, error) {
	query := `
    SELECT id, name, active, contact_rate, payment_type
    FROM organizations
  `
	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []Organization
	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Active, &o.ContactRate, &o.PaymentType); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Organization, error) {
	var o Organization
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, active, contact_rate, payment_type
    FROM organizations
    WHERE id = $1
  `, id).Scan(&o.ID, &o.Name, &o.Active, &o.ContactRate, &o.PaymentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, ErrNotFound
	}
	return o, err
}

func (s *Store) Create(ctx context.Context, name string, contactRate int, paymentType string) (string, error) {
	if contactRate < 0 {
		return "", ErrNegativeRate
	}
	if paymentType != PaymentCash && paymentType != PaymentCashless {
		return "", ErrBadPaymentType
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO organizations (name, active, contact_rate, payment_type)
    VALUES ($1, true, $2, $3)
    RETURNING id
  `, name, contactRate, paymentType).Scan(&id)
	return id, err
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE organizations SET active = $1 WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListPeriods(ctx context.Context, orgID string) ([]RatePeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, org_id, start_date, end_date, contact_rate, payment_type
    FROM rate_periods
    WHERE org_id = $1
    ORDER BY start_date DESC, id DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []RatePeriod
	for rows.Next() {
		var p RatePeriod
		if err := rows.Scan(&p.ID, &p.OrgID, &p.StartDate, &p.EndDate, &p.ContactRate, &p.PaymentType); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) CreatePeriod(ctx context.Context, orgID string, startDate time.Time, endDate *time.Time, contactRate int, paymentType string) (int64, error) {
	if contactRate < 0 {
		return 0, ErrNegativeRate
	}
	if paymentType != PaymentCash && paymentType != PaymentCashless {
		return 0, ErrBadPaymentType
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO rate_periods (org_id, start_date, end_date, contact_rate, payment_type)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, orgID, startDate, endDate, contactRate, paymentType).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrPeriodConflict
		}
		return 0, err
	}
	return id, nil
}

func (s *Store) DeletePeriod(ctx context.Context, orgID string, periodID int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM rate_periods WHERE id = $1 AND org_id = $2", periodID, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPeriodNotFound
	}
	return nil
}

// RateFor resolves the rate in effect for an organization on a business date.
// This is the single authorized path from rate periods to payroll numbers.
func (s *Store) RateFor(ctx context.Context, orgID string, date time.Time) (Rate, error) {
	organization, err := s.Get(ctx, orgID)
	if err != nil {
		return Rate{}, err
	}
	periods, err := s.ListPeriods(ctx, orgID)
	if err != nil {
		return Rate{}, err
	}
	return ResolveRate(organization, periods, date), nil
}
