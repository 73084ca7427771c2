package contact

import (
	"context"
	"errors"
	"time"

	"promoback/internal/domain/busday"
	"promoback/internal/platform/querier"
)

var (
	ErrNotFound = errors.New("контакт не найден")
	ErrBadKind  = errors.New("неизвестный тип события")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, promoterID, orgID, kind, result string, createdAt time.Time, comment, channelRef string) (int64, error) {
	if kind != KindContact && kind != KindApproach {
		return 0, ErrBadKind
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contact_events (promoter_id, org_id, kind, result, created_at, active, comment, channel_ref)
    VALUES ($1,$2,$3,NULLIF($4,''),$5,true,NULLIF($6,''),NULLIF($7,''))
    RETURNING id
  `, promoterID, orgID, kind, result, createdAt.UTC(), comment, channelRef).Scan(&id)
	return id, err
}

// Deactivate is the admin soft delete: the row stays for the archive but
// stops contributing to counts and payroll.
func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "UPDATE contact_events SET active = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountFor is contacts_in: active contact-kind events whose business date
// matches the key. The date test goes through the business day span so the
// 21:00 UTC boundary is honored by the index on created_at.
func (s *Store) CountFor(ctx context.Context, key Key) (int, error) {
	start, end := busday.Span(key.Date)
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM contact_events
    WHERE promoter_id = $1 AND org_id = $2 AND kind = $3 AND active = true
      AND created_at >= $4 AND created_at < $5
  `, key.PromoterID, key.OrgID, KindContact, start, end).Scan(&count)
	return count, err
}

// CountBulk resolves many keys in one round-trip per distinct date span.
func (s *Store) CountBulk(ctx context.Context, keys []Key) (map[Key]int, error) {
	out := make(map[Key]int, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	spans := make(map[time.Time][]Key)
	for _, key := range keys {
		day := busday.Date(key.Date)
		spans[day] = append(spans[day], Key{PromoterID: key.PromoterID, Date: day, OrgID: key.OrgID})
		out[Key{PromoterID: key.PromoterID, Date: day, OrgID: key.OrgID}] = 0
	}

	for day, dayKeys := range spans {
		start, end := busday.Span(day)
		rows, err := s.DB.Query(ctx, `
      SELECT promoter_id, org_id, COUNT(1)
      FROM contact_events
      WHERE kind = $1 AND active = true AND created_at >= $2 AND created_at < $3
      GROUP BY promoter_id, org_id
    `, KindContact, start, end)
		if err != nil {
			return nil, err
		}
		counts := make(map[[2]string]int)
		for rows.Next() {
			var promoterID, orgID string
			var count int
			if err := rows.Scan(&promoterID, &orgID, &count); err != nil {
				rows.Close()
				return nil, err
			}
			counts[[2]string{promoterID, orgID}] = count
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		for _, key := range dayKeys {
			out[key] = counts[[2]string{key.PromoterID, key.OrgID}]
		}
	}
	return out, nil
}

func (s *Store) ListFor(ctx context.Context, key Key) ([]Event, error) {
	start, end := busday.Span(key.Date)
	rows, err := s.DB.Query(ctx, `
    SELECT id, promoter_id, org_id, kind, COALESCE(result, ''), created_at, active, COALESCE(comment, ''), COALESCE(channel_ref, '')
    FROM contact_events
    WHERE promoter_id = $1 AND org_id = $2 AND created_at >= $3 AND created_at < $4
    ORDER BY created_at
  `, key.PromoterID, key.OrgID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.PromoterID, &e.OrgID, &e.Kind, &e.Result, &e.CreatedAt, &e.Active, &e.Comment, &e.ChannelRef); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
