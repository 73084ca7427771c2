package promoter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionDeactivate = "deactivate"
	ActionActivate   = "activate"
)

// Service drives the approval workflow. Every transition that touches more
// than one table (block list, sessions, the promoter row itself) runs in a
// transaction so admins never observe half-applied states.
type Service struct {
	DB *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) withTx(ctx context.Context, fn func(store *Store) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Service) target(ctx context.Context, store *Store, id string) (Promoter, error) {
	p, err := store.Get(ctx, id)
	if err != nil {
		return Promoter{}, err
	}
	if p.Admin {
		return Promoter{}, ErrAdminAccount
	}
	return p, nil
}

// Approve moves pending → active. Idempotent: approving an already approved
// promoter changes nothing.
func (s *Service) Approve(ctx context.Context, id, actorID string) error {
	return s.withTx(ctx, func(store *Store) error {
		p, err := s.target(ctx, store, id)
		if err != nil {
			return err
		}
		if p.Approved {
			return nil
		}
		if _, err := store.DB.Exec(ctx, `
      UPDATE promoters
      SET approved = true, active = true, approved_at = now(), approved_by = $1
      WHERE id = $2
    `, actorID, id); err != nil {
			return err
		}
		return store.LogApproval(ctx, id, actorID, ActionApprove)
	})
}

// Reject removes a pending promoter and blocks the registration IP. Not
// idempotent: the second call finds nothing and reports not-found.
func (s *Service) Reject(ctx context.Context, id, actorID string) error {
	return s.withTx(ctx, func(store *Store) error {
		p, err := s.target(ctx, store, id)
		if err != nil {
			return err
		}
		if err := store.BlockIP(ctx, p.RegistrationIP); err != nil {
			return err
		}
		if err := store.LogApproval(ctx, id, actorID, ActionReject); err != nil {
			return err
		}
		_, err = store.DB.Exec(ctx, "DELETE FROM promoters WHERE id = $1", id)
		return err
	})
}

// Deactivate keeps the row but revokes sessions and blocks the IP.
func (s *Service) Deactivate(ctx context.Context, id, actorID string) error {
	return s.withTx(ctx, func(store *Store) error {
		p, err := s.target(ctx, store, id)
		if err != nil {
			return err
		}
		if _, err := store.DB.Exec(ctx, "UPDATE promoters SET active = false WHERE id = $1", id); err != nil {
			return err
		}
		if err := store.DeleteSessionsFor(ctx, id); err != nil {
			return err
		}
		if err := store.BlockIP(ctx, p.RegistrationIP); err != nil {
			return err
		}
		return store.LogApproval(ctx, id, actorID, ActionDeactivate)
	})
}

// Activate returns a deactivated promoter to active and unblocks the IP.
// Idempotent on already-active promoters.
func (s *Service) Activate(ctx context.Context, id, actorID string) error {
	return s.withTx(ctx, func(store *Store) error {
		p, err := s.target(ctx, store, id)
		if err != nil {
			return err
		}
		if !p.Approved {
			return ErrNotApproved
		}
		if err := store.UnblockIP(ctx, p.RegistrationIP); err != nil {
			return err
		}
		if p.Active {
			return nil
		}
		if _, err := store.DB.Exec(ctx, "UPDATE promoters SET active = true WHERE id = $1", id); err != nil {
			return err
		}
		return store.LogApproval(ctx, id, actorID, ActionActivate)
	})
}
