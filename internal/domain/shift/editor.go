package shift

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
)

// EditRequest moves a shift from Old to New (any component of the key may
// change), sets its span and contact count, and rewrites the accounting row.
type EditRequest struct {
	Old          contact.Key
	New          contact.Key
	StartAt      time.Time
	EndAt        time.Time
	ContactCount int
	Accounting   accounting.Row
}

// Editor applies atomic shift edits. Contact events stay the single source
// of truth: a changed count is realized by deleting the key's events and
// synthesizing new ones, never by storing an override.
type Editor struct {
	DB *pgxpool.Pool
}

func NewEditor(db *pgxpool.Pool) *Editor {
	return &Editor{DB: db}
}

// Edit runs the rewrite in one transaction. A row-level lock on the target
// manual shift (or, failing that, the accounting row) serializes concurrent
// edits of the same key. Any failure before the post-check aborts the whole
// transaction; the post-check itself is diagnostic only.
func (e *Editor) Edit(ctx context.Context, req EditRequest) error {
	if req.EndAt.Before(req.StartAt) {
		return ErrInvalidSpan
	}

	tx, err := e.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockTarget(ctx, tx, req.Old); err != nil {
		return err
	}

	oldStart, oldEnd := busday.Span(busday.Date(req.Old.Date))
	if _, err := tx.Exec(ctx, `
    DELETE FROM contact_events
    WHERE promoter_id = $1 AND org_id = $2 AND active = true
      AND created_at >= $3 AND created_at < $4
  `, req.Old.PromoterID, req.Old.OrgID, oldStart, oldEnd); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM manual_shifts
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
  `, req.Old.PromoterID, req.Old.OrgID, busday.Date(req.Old.Date)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    DELETE FROM accounting_rows
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
  `, req.Old.PromoterID, req.Old.OrgID, busday.Date(req.Old.Date)); err != nil {
		return err
	}

	newDate := busday.Date(req.New.Date)
	if _, err := tx.Exec(ctx, `
    INSERT INTO manual_shifts (promoter_id, org_id, date, start_at, end_at)
    VALUES ($1,$2,$3,$4,$5)
  `, req.New.PromoterID, req.New.OrgID, newDate, req.StartAt.UTC(), req.EndAt.UTC()); err != nil {
		return err
	}

	row := req.Accounting
	row.PromoterID = req.New.PromoterID
	row.OrgID = req.New.OrgID
	row.Date = newDate
	if err := accounting.NewStore(tx).Upsert(ctx, row); err != nil {
		return err
	}

	if req.ContactCount > 0 {
		events := contact.NewStore(tx)
		for _, at := range SyntheticTimes(req.StartAt, req.ContactCount) {
			if _, err := events.Create(ctx, req.New.PromoterID, req.New.OrgID,
				contact.KindContact, contact.ResultAgreed, at, "", ""); err != nil {
				return err
			}
		}
	}

	// Diagnostic post-check inside the transaction's own view.
	newKey := contact.Key{PromoterID: req.New.PromoterID, Date: newDate, OrgID: req.New.OrgID}
	observed, err := contact.NewStore(tx).CountFor(ctx, newKey)
	if err != nil {
		slog.Warn("shift edit post-check query failed", "err", err)
	} else if observed != req.ContactCount {
		slog.Warn("shift edit post-check mismatch",
			"promoterId", req.New.PromoterID,
			"orgId", req.New.OrgID,
			"date", busday.FormatDate(newDate),
			"expected", req.ContactCount,
			"observed", observed)
	}

	return tx.Commit(ctx)
}

func lockTarget(ctx context.Context, tx pgx.Tx, key contact.Key) error {
	date := busday.Date(key.Date)
	var id int64
	err := tx.QueryRow(ctx, `
    SELECT id FROM manual_shifts
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
    FOR UPDATE
  `, key.PromoterID, key.OrgID, date).Scan(&id)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	var promoterID string
	err = tx.QueryRow(ctx, `
    SELECT promoter_id FROM accounting_rows
    WHERE promoter_id = $1 AND org_id = $2 AND date = $3
    FOR UPDATE
  `, key.PromoterID, key.OrgID, date).Scan(&promoterID)
	if err == pgx.ErrNoRows {
		// Nothing to lock yet; the inserts below will create the rows.
		return nil
	}
	return err
}
