package contact

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/org"
	"promoback/internal/domain/promoter"
	"promoback/internal/platform/db/dbtest"
)

func seedFixtures(t *testing.T, pool *pgxpool.Pool) (promoterID, orgID string) {
	t.Helper()
	ctx := context.Background()
	email := fmt.Sprintf("events-%d@example.com", time.Now().UnixNano())
	promoterID, err := promoter.NewStore(pool).Register(ctx, "events", email, "hash", "", "")
	if err != nil {
		t.Fatalf("seed promoter: %v", err)
	}
	orgID, err = org.NewStore(pool).Create(ctx, "Контракт событий", 200, org.PaymentCash)
	if err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return promoterID, orgID
}

func TestCreateKeepsCommentAndChannelRefApart(t *testing.T) {
	pool := dbtest.Pool(t)
	ctx := context.Background()
	promoterID, orgID := seedFixtures(t, pool)
	store := NewStore(pool)

	at := busday.At(busday.Today(), 12, 0)
	if _, err := store.Create(ctx, promoterID, orgID,
		KindContact, ResultAgreed, at, "перезвонить вечером", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	key := Key{PromoterID: promoterID, Date: busday.Date(at), OrgID: orgID}
	events, err := store.ListFor(ctx, key)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Comment != "перезвонить вечером" {
		t.Fatalf("comment = %q", events[0].Comment)
	}
	if events[0].ChannelRef != "" {
		t.Fatalf("channel ref must stay empty, got %q", events[0].ChannelRef)
	}
}

func TestDeactivateExcludesFromCountButKeepsArchive(t *testing.T) {
	pool := dbtest.Pool(t)
	ctx := context.Background()
	promoterID, orgID := seedFixtures(t, pool)
	store := NewStore(pool)

	at := busday.At(busday.Today(), 13, 0)
	firstID, err := store.Create(ctx, promoterID, orgID, KindContact, ResultAgreed, at, "", "")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := store.Create(ctx, promoterID, orgID, KindContact, ResultAgreed, at.Add(time.Minute), "", ""); err != nil {
		t.Fatalf("create second: %v", err)
	}

	key := Key{PromoterID: promoterID, Date: busday.Date(at), OrgID: orgID}
	if count, err := store.CountFor(ctx, key); err != nil || count != 2 {
		t.Fatalf("count = %d, err = %v; want 2", count, err)
	}

	if err := store.Deactivate(ctx, firstID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if count, err := store.CountFor(ctx, key); err != nil || count != 1 {
		t.Fatalf("count after deactivate = %d, err = %v; want 1", count, err)
	}

	events, err := store.ListFor(ctx, key)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("archive must keep the row, got %d events", len(events))
	}
}
