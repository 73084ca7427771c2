package shift

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"promoback/internal/platform/querier"
)

var (
	ErrManualConflict = errors.New("смена на эту дату уже существует")
	ErrInvalidSpan    = errors.New("окончание смены раньше начала")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateMarker(ctx context.Context, promoterID, orgID, kind string, date, createdAt time.Time) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO shift_markers (promoter_id, org_id, kind, date, created_at)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, promoterID, orgID, kind, date, createdAt.UTC()).Scan(&id)
	return id, err
}

func (s *Store) MarkersInRange(ctx context.Context, from, to time.Time) ([]Marker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, promoter_id, org_id, kind, date, created_at
    FROM shift_markers
    WHERE date >= $1 AND date <= $2
    ORDER BY created_at
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMarkers(rows)
}

func (s *Store) MarkersFor(ctx context.Context, promoterID, orgID string, date time.Time) ([]Marker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, promoter_id, org_id, kind, date, created_at
    FROM shift_markers
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
    ORDER BY created_at
  `, promoterID, orgID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMarkers(rows)
}

func scanMarkers(rows pgx.Rows) ([]Marker, error) {
	var markers []Marker
	for rows.Next() {
		var m Marker
		if err := rows.Scan(&m.ID, &m.PromoterID, &m.OrgID, &m.Kind, &m.Date, &m.CreatedAt); err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

func (s *Store) CreateManual(ctx context.Context, manual ManualShift) (int64, error) {
	if manual.EndAt.Before(manual.StartAt) {
		return 0, ErrInvalidSpan
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO manual_shifts (promoter_id, org_id, date, start_at, end_at)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, manual.PromoterID, manual.OrgID, manual.Date, manual.StartAt.UTC(), manual.EndAt.UTC()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrManualConflict
		}
		return 0, err
	}
	return id, nil
}

func (s *Store) ManualFor(ctx context.Context, promoterID, orgID string, date time.Time) (*ManualShift, error) {
	var m ManualShift
	err := s.DB.QueryRow(ctx, `
    SELECT id, promoter_id, org_id, date, start_at, end_at
    FROM manual_shifts
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
  `, promoterID, orgID, date).Scan(&m.ID, &m.PromoterID, &m.OrgID, &m.Date, &m.StartAt, &m.EndAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ManualsInRange(ctx context.Context, from, to time.Time) ([]ManualShift, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, promoter_id, org_id, date, start_at, end_at
    FROM manual_shifts
    WHERE date >= $1 AND date <= $2
    ORDER BY date, promoter_id
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manuals []ManualShift
	for rows.Next() {
		var m ManualShift
		if err := rows.Scan(&m.ID, &m.PromoterID, &m.OrgID, &m.Date, &m.StartAt, &m.EndAt); err != nil {
			return nil, err
		}
		manuals = append(manuals, m)
	}
	return manuals, rows.Err()
}

// DeriveFor runs shift derivation for one key against the store.
func (s *Store) DeriveFor(ctx context.Context, promoterID, orgID string, date time.Time) (Shift, bool, error) {
	markers, err := s.MarkersFor(ctx, promoterID, orgID, date)
	if err != nil {
		return Shift{}, false, err
	}
	manual, err := s.ManualFor(ctx, promoterID, orgID, date)
	if err != nil {
		return Shift{}, false, err
	}
	derived, ok := Derive(markers, manual)
	return derived, ok, nil
}

// ListInRange returns the merged listing over a date range.
func (s *Store) ListInRange(ctx context.Context, from, to time.Time) ([]Shift, error) {
	markers, err := s.MarkersInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	manuals, err := s.ManualsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return Merge(markers, manuals), nil
}
