package reports

import (
	"context"
	"sort"
	"time"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/org"
	"promoback/internal/domain/payroll"
	"promoback/internal/platform/querier"
)

// Service answers the read-only panels. Every query is safe against a
// replica: no writes, no locks, consistency is whatever the store gives a
// single statement.
type Service struct {
	DB      querier.Querier
	Orgs    *org.Store
	Payroll *payroll.Service
}

func NewService(db querier.Querier, orgs *org.Store, pay *payroll.Service) *Service {
	return &Service{DB: db, Orgs: orgs, Payroll: pay}
}

// DailyPanel breaks one business date down per promoter and per organization.
func (s *Service) DailyPanel(ctx context.Context, date time.Time) ([]DailyPromoterRow, error) {
	start, end := busday.Span(date)
	rows, err := s.DB.Query(ctx, `
    SELECT promoter_id, org_id, kind, COUNT(1)
    FROM contact_events
    WHERE active = true AND created_at >= $1 AND created_at < $2
    GROUP BY promoter_id, org_id, kind
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPromoter := make(map[string]*DailyPromoterRow)
	orgIndex := make(map[string]map[string]*DailyOrgRow)
	for rows.Next() {
		var promoterID, orgID, kind string
		var count int
		if err := rows.Scan(&promoterID, &orgID, &kind, &count); err != nil {
			return nil, err
		}
		row, ok := byPromoter[promoterID]
		if !ok {
			row = &DailyPromoterRow{PromoterID: promoterID}
			byPromoter[promoterID] = row
			orgIndex[promoterID] = make(map[string]*DailyOrgRow)
		}
		orgRow, ok := orgIndex[promoterID][orgID]
		if !ok {
			row.Orgs = append(row.Orgs, DailyOrgRow{OrgID: orgID})
			orgRow = &row.Orgs[len(row.Orgs)-1]
			orgIndex[promoterID][orgID] = orgRow
		}
		row.Total += count
		switch kind {
		case contact.KindContact:
			row.Contacts += count
			orgRow.Contacts += count
		case contact.KindApproach:
			row.Approaches += count
			orgRow.Approaches += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]DailyPromoterRow, 0, len(byPromoter))
	for _, row := range byPromoter {
		sort.Slice(row.Orgs, func(i, j int) bool { return row.Orgs[i].OrgID < row.Orgs[j].OrgID })
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contacts != out[j].Contacts {
			return out[i].Contacts > out[j].Contacts
		}
		return out[i].PromoterID < out[j].PromoterID
	})
	return out, nil
}

// ActivityPanel reports, per organization, the last shift date, days since,
// and whether any shift fell inside the range.
func (s *Service) ActivityPanel(ctx context.Context, from, to time.Time) ([]ActivityRow, error) {
	orgs, err := s.Orgs.List(ctx, false)
	if err != nil {
		return nil, err
	}

	lastDates, err := s.lastShiftDates(ctx, to)
	if err != nil {
		return nil, err
	}
	inRange, err := s.orgsWithShiftIn(ctx, from, to)
	if err != nil {
		return nil, err
	}

	today := busday.Today()
	out := make([]ActivityRow, 0, len(orgs))
	for _, o := range orgs {
		row := ActivityRow{OrgID: o.ID, OrgName: o.Name, HadShiftInRange: inRange[o.ID]}
		if last, ok := lastDates[o.ID]; ok {
			t := last
			row.LastShiftDate = &t
		}
		row.DaysSinceLast = DaysSince(row.LastShiftDate, today)
		out = append(out, row)
	}
	SortActivity(out)
	return out, nil
}

func (s *Service) lastShiftDates(ctx context.Context, upTo time.Time) (map[string]time.Time, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT org_id, MAX(date)
    FROM (
      SELECT org_id, date FROM shift_markers WHERE date <= $1
      UNION ALL
      SELECT org_id, date FROM manual_shifts WHERE date <= $1
    ) AS all_shifts
    GROUP BY org_id
  `, upTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var orgID string
		var last time.Time
		if err := rows.Scan(&orgID, &last); err != nil {
			return nil, err
		}
		out[orgID] = last
	}
	return out, rows.Err()
}

func (s *Service) orgsWithShiftIn(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT org_id
    FROM (
      SELECT org_id FROM shift_markers WHERE date >= $1 AND date <= $2
      UNION ALL
      SELECT org_id FROM manual_shifts WHERE date >= $1 AND date <= $2
    ) AS ranged
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var orgID string
		if err := rows.Scan(&orgID); err != nil {
			return nil, err
		}
		out[orgID] = true
	}
	return out, rows.Err()
}

// Leaderboard ranks promoters over a range by contacts, with pay attached.
func (s *Service) Leaderboard(ctx context.Context, from, to time.Time) ([]LeaderboardRow, error) {
	priced, err := s.Payroll.PricedShifts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(priced), nil
}
