package promoter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"promoback/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const promoterColumns = `
  id, name, email, password_hash, admin, active, approved,
  COALESCE(registration_ip, ''), last_seen_at, approved_at, COALESCE(approved_by::text, ''),
  COALESCE(location, ''), COALESCE(channel_chat_id, ''), COALESCE(avatar_url, ''), created_at`

func scanPromoter(row pgx.Row) (Promoter, error) {
	var p Promoter
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Admin, &p.Active, &p.Approved,
		&p.RegistrationIP, &p.LastSeenAt, &p.ApprovedAt, &p.ApprovedBy,
		&p.Location, &p.ChannelChatID, &p.AvatarURL, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Promoter{}, ErrNotFound
	}
	return p, err
}

func (s *Store) Get(ctx context.Context, id string) (Promoter, error) {
	return scanPromoter(s.DB.QueryRow(ctx,
		"SELECT"+promoterColumns+" FROM promoters WHERE id = $1", id))
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Promoter, error) {
	return scanPromoter(s.DB.QueryRow(ctx,
		"SELECT"+promoterColumns+" FROM promoters WHERE email = $1", email))
}

func (s *Store) List(ctx context.Context) ([]Promoter, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+promoterColumns+" FROM promoters ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Promoter
	for rows.Next() {
		var p Promoter
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Admin, &p.Active, &p.Approved,
			&p.RegistrationIP, &p.LastSeenAt, &p.ApprovedAt, &p.ApprovedBy,
			&p.Location, &p.ChannelChatID, &p.AvatarURL, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Register creates a pending promoter. A blocked registration IP or a taken
// email refuses the signup with its specific error.
func (s *Store) Register(ctx context.Context, name, email, passwordHash, registrationIP, location string) (string, error) {
	blocked, err := s.IsIPBlocked(ctx, registrationIP)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", ErrIPBlocked
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO promoters (name, email, password_hash, admin, active, approved, registration_ip, location)
    VALUES ($1,$2,$3,false,true,false,NULLIF($4,''),NULLIF($5,''))
    RETURNING id
  `, name, email, passwordHash, registrationIP, location).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return id, nil
}

func (s *Store) TouchLastSeen(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "UPDATE promoters SET last_seen_at = now() WHERE id = $1", id)
	return err
}

func (s *Store) SetChannelBinding(ctx context.Context, id, chatID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE promoters SET channel_chat_id = NULLIF($1,'') WHERE id = $2", chatID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetAvatarURL(ctx context.Context, id, url string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE promoters SET avatar_url = NULLIF($1,'') WHERE id = $2", url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Sessions.

func (s *Store) CreateSession(ctx context.Context, promoterID, token string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (token, promoter_id, expires_at)
    VALUES ($1,$2,$3)
  `, token, promoterID, expires.UTC())
	return err
}

// BySessionToken maps a live session token to its promoter. Expired or
// unknown tokens come back as ErrNotFound.
func (s *Store) BySessionToken(ctx context.Context, token string) (Promoter, error) {
	return scanPromoter(s.DB.QueryRow(ctx, `
    SELECT`+promoterColumns+`
    FROM promoters
    JOIN sessions ON sessions.promoter_id = promoters.id
    WHERE sessions.token = $1 AND sessions.expires_at > now()
  `, token))
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

func (s *Store) DeleteSessionsFor(ctx context.Context, promoterID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE promoter_id = $1", promoterID)
	return err
}

// Block list.

func (s *Store) IsIPBlocked(ctx context.Context, ip string) (bool, error) {
	if ip == "" {
		return false, nil
	}
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM blocked_ips WHERE ip = $1", ip).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) BlockIP(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	_, err := s.DB.Exec(ctx, "INSERT INTO blocked_ips (ip) VALUES ($1) ON CONFLICT (ip) DO NOTHING", ip)
	return err
}

func (s *Store) ListBlockedIPs(ctx context.Context) ([]BlockedIP, error) {
	rows, err := s.DB.Query(ctx, "SELECT ip, created_at FROM blocked_ips ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BlockedIP
	for rows.Next() {
		var b BlockedIP
		if err := rows.Scan(&b.IP, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) UnblockIP(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	_, err := s.DB.Exec(ctx, "DELETE FROM blocked_ips WHERE ip = $1", ip)
	return err
}

func (s *Store) LogApproval(ctx context.Context, promoterID, actorID, action string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO approvals_log (promoter_id, actor_id, action)
    VALUES ($1,$2,$3)
  `, promoterID, actorID, action)
	return err
}
