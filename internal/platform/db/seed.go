package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"promoback/internal/auth"
	"promoback/internal/platform/config"
)

// Seed creates the bootstrap admin when configured. An existing account with
// the same email is left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO promoters (name, email, password_hash, admin, active, approved)
    VALUES ('Administrator', $1, $2, true, true, true)
    ON CONFLICT (email) DO NOTHING
  `, cfg.SeedAdminEmail, hash)
	return err
}
