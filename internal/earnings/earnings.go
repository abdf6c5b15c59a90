// Package earnings summarizes cached weekly earnings entries into
// per-week and multi-week reports, and enforces the hours confirmation
// window.
package earnings

import (
	"context"
	"fmt"
	"sort"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

// WeekSummary aggregates one week of earnings across businesses.
type WeekSummary struct {
	Week          week.Start            `json:"-"`
	WeekStart     string                `json:"week_start"`
	Label         string                `json:"label"`
	Entries       []model.EarningsEntry `json:"entries,omitempty"`
	Hours         float64               `json:"hours"`
	GrossCents    int64                 `json:"gross_cents"`
	PendingCents  int64                 `json:"pending_cents"`
	ApprovedCents int64                 `json:"approved_cents"`
	PaidCents     int64                 `json:"paid_cents"`
}

// Report covers a contiguous range of weeks, oldest first.
type Report struct {
	Weeks      []WeekSummary `json:"weeks"`
	Hours      float64       `json:"hours"`
	GrossCents int64         `json:"gross_cents"`
}

// Service builds earnings reports for one account from the local cache.
type Service struct {
	store      store.Store
	employeeID string
	businessID string
	window     week.Window
}

// NewService creates an earnings service. The window is the hours
// confirmation window from configuration.
func NewService(st store.Store, employeeID, businessID string, window week.Window) *Service {
	return &Service{
		store:      st,
		employeeID: employeeID,
		businessID: businessID,
		window:     window,
	}
}

// WeekSummary loads and aggregates the cached earnings for a single week.
func (s *Service) WeekSummary(ctx context.Context, wk week.Start) (*WeekSummary, error) {
	entries, err := s.store.GetEarnings(ctx, store.EarningsFilter{
		EmployeeID: s.employeeID,
		BusinessID: s.businessID,
		WeekStarts: []string{wk.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("loading earnings for week %s: %w", wk, err)
	}

	summary := buildWeekSummary(wk, entries)
	return &summary, nil
}

// Report aggregates every week from from through to, inclusive. Weeks
// with no cached entries still appear, zeroed, so the report has no gaps.
func (s *Service) Report(ctx context.Context, from, to week.Start) (*Report, error) {
	if to.Before(from) {
		from, to = to, from
	}

	var weeks []string
	for wk := from; !wk.After(to); wk = wk.Next() {
		weeks = append(weeks, wk.String())
	}

	entries, err := s.store.GetEarnings(ctx, store.EarningsFilter{
		EmployeeID: s.employeeID,
		BusinessID: s.businessID,
		WeekStarts: weeks,
	})
	if err != nil {
		return nil, fmt.Errorf("loading earnings %s through %s: %w", from, to, err)
	}

	byWeek := make(map[string][]model.EarningsEntry)
	for _, e := range entries {
		byWeek[e.WeekStart] = append(byWeek[e.WeekStart], e)
	}

	report := &Report{}
	for wk := from; !wk.After(to); wk = wk.Next() {
		summary := buildWeekSummary(wk, byWeek[wk.String()])
		report.Weeks = append(report.Weeks, summary)
		report.Hours += summary.Hours
		report.GrossCents += summary.GrossCents
	}

	return report, nil
}

// CanConfirm reports whether hours for wk may still be confirmed.
func (s *Service) CanConfirm(wk week.Start) bool {
	return s.window.Contains(week.Current(), wk)
}

// buildWeekSummary folds entries into a single week's totals.
func buildWeekSummary(wk week.Start, entries []model.EarningsEntry) WeekSummary {
	summary := WeekSummary{
		Week:      wk,
		WeekStart: wk.String(),
		Label:     wk.FormatRange(),
		Entries:   entries,
	}

	for _, e := range entries {
		summary.Hours += e.Hours
		summary.GrossCents += e.GrossCents
		switch e.Status {
		case model.EarningsApproved:
			summary.ApprovedCents += e.GrossCents
		case model.EarningsPaid:
			summary.PaidCents += e.GrossCents
		default:
			summary.PendingCents += e.GrossCents
		}
	}

	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].BusinessName < summary.Entries[j].BusinessName
	})

	return summary
}

// FormatCents renders a cent amount as dollars, e.g. 123450 -> "$1234.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
