package shift

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/org"
	"promoback/internal/domain/promoter"
	"promoback/internal/platform/db/dbtest"
)

func seedPromoter(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	email := fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
	id, err := promoter.NewStore(pool).Register(context.Background(), name, email, "hash", "", "")
	if err != nil {
		t.Fatalf("seed promoter: %v", err)
	}
	return id
}

func seedOrg(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	id, err := org.NewStore(pool).Create(context.Background(), name, 200, org.PaymentCash)
	if err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return id
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := busday.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return d
}

func TestEditMovesShiftToNewKey(t *testing.T) {
	pool := dbtest.Pool(t)
	ctx := context.Background()

	promoterID := seedPromoter(t, pool, "edit-move")
	oldOrg := seedOrg(t, pool, "Старый контракт")
	newOrg := seedOrg(t, pool, "Новый контракт")
	oldDate := mustDate(t, "2026-03-10")
	newDate := mustDate(t, "2026-03-11")

	shifts := NewStore(pool)
	if _, err := shifts.CreateManual(ctx, ManualShift{
		PromoterID: promoterID,
		OrgID:      oldOrg,
		Date:       oldDate,
		StartAt:    busday.At(oldDate, 10, 0),
		EndAt:      busday.At(oldDate, 18, 0),
	}); err != nil {
		t.Fatalf("seed manual shift: %v", err)
	}

	events := contact.NewStore(pool)
	for _, at := range SyntheticTimes(busday.At(oldDate, 10, 0), 12) {
		if _, err := events.Create(ctx, promoterID, oldOrg,
			contact.KindContact, contact.ResultAgreed, at, "", ""); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	newStart := busday.At(newDate, 11, 0)
	err := NewEditor(pool).Edit(ctx, EditRequest{
		Old:          contact.Key{PromoterID: promoterID, Date: oldDate, OrgID: oldOrg},
		New:          contact.Key{PromoterID: promoterID, Date: newDate, OrgID: newOrg},
		StartAt:      newStart,
		EndAt:        busday.At(newDate, 19, 0),
		ContactCount: 3,
		Accounting:   accounting.Row{PaidByOrg: true},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	oldKey := contact.Key{PromoterID: promoterID, Date: oldDate, OrgID: oldOrg}
	newKey := contact.Key{PromoterID: promoterID, Date: newDate, OrgID: newOrg}

	if count, err := events.CountFor(ctx, oldKey); err != nil || count != 0 {
		t.Fatalf("old key count = %d, err = %v; want 0", count, err)
	}
	if count, err := events.CountFor(ctx, newKey); err != nil || count != 3 {
		t.Fatalf("new key count = %d, err = %v; want 3", count, err)
	}

	listed, err := events.ListFor(ctx, newKey)
	if err != nil {
		t.Fatalf("list new key: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 synthesized events, got %d", len(listed))
	}
	for i, e := range listed {
		want := newStart.Add(time.Duration(i) * time.Minute)
		if !e.CreatedAt.Equal(want) {
			t.Fatalf("event %d at %v, want %v", i, e.CreatedAt, want)
		}
		if e.Result != contact.ResultAgreed {
			t.Fatalf("event %d result = %q", i, e.Result)
		}
	}

	if m, err := shifts.ManualFor(ctx, promoterID, oldOrg, oldDate); err != nil || m != nil {
		t.Fatalf("old manual shift must be gone, got %+v err %v", m, err)
	}
	m, err := shifts.ManualFor(ctx, promoterID, newOrg, newDate)
	if err != nil || m == nil {
		t.Fatalf("new manual shift missing: %+v err %v", m, err)
	}
	if !m.StartAt.Equal(newStart) {
		t.Fatalf("new manual start = %v, want %v", m.StartAt, newStart)
	}

	acc := accounting.NewStore(pool)
	if _, err := acc.Get(ctx, promoterID, oldDate, oldOrg); !errors.Is(err, accounting.ErrNotFound) {
		t.Fatalf("old accounting row must be gone, err = %v", err)
	}
	row, err := acc.Get(ctx, promoterID, newDate, newOrg)
	if err != nil {
		t.Fatalf("new accounting row: %v", err)
	}
	if !row.PaidByOrg {
		t.Fatal("accounting flags must follow the edit")
	}
}

func TestEditRoundTripKeepsShiftIntact(t *testing.T) {
	pool := dbtest.Pool(t)
	ctx := context.Background()

	promoterID := seedPromoter(t, pool, "edit-noop")
	orgID := seedOrg(t, pool, "Круговой контракт")
	date := mustDate(t, "2026-03-12")
	start := busday.At(date, 9, 30)
	end := busday.At(date, 17, 30)

	shifts := NewStore(pool)
	if _, err := shifts.CreateManual(ctx, ManualShift{
		PromoterID: promoterID, OrgID: orgID, Date: date, StartAt: start, EndAt: end,
	}); err != nil {
		t.Fatalf("seed manual shift: %v", err)
	}
	events := contact.NewStore(pool)
	for _, at := range SyntheticTimes(start, 5) {
		if _, err := events.Create(ctx, promoterID, orgID,
			contact.KindContact, contact.ResultAgreed, at, "", ""); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	before, ok, err := shifts.DeriveFor(ctx, promoterID, orgID, date)
	if err != nil || !ok {
		t.Fatalf("derive before edit: ok=%v err=%v", ok, err)
	}

	key := contact.Key{PromoterID: promoterID, Date: date, OrgID: orgID}
	if err := NewEditor(pool).Edit(ctx, EditRequest{
		Old: key, New: key,
		StartAt: start, EndAt: end,
		ContactCount: 5,
		Accounting:   accounting.Row{},
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	after, ok, err := shifts.DeriveFor(ctx, promoterID, orgID, date)
	if err != nil || !ok {
		t.Fatalf("derive after edit: ok=%v err=%v", ok, err)
	}
	if after.Source != before.Source {
		t.Fatalf("source changed: %s -> %s", before.Source, after.Source)
	}
	if !after.StartAt.Equal(*before.StartAt) || !after.EndAt.Equal(*before.EndAt) {
		t.Fatalf("span changed: %v-%v -> %v-%v", before.StartAt, before.EndAt, after.StartAt, after.EndAt)
	}
	if count, err := events.CountFor(ctx, key); err != nil || count != 5 {
		t.Fatalf("count after no-op edit = %d, err = %v; want 5", count, err)
	}
}
