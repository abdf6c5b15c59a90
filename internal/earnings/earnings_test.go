package earnings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftdesk/shiftdesk/internal/earnings"
	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/week"
	"github.com/shiftdesk/shiftdesk/tests/testutil"
)

func entryFor(id, weekStart, businessName, status string, hours float64, grossCents int64) model.EarningsEntry {
	fetched := time.Date(2025, 1, 26, 8, 0, 0, 0, time.UTC)
	e := model.EarningsEntry{
		ID:           id,
		EmployeeID:   "emp-1",
		BusinessID:   "biz-" + businessName,
		BusinessName: businessName,
		WeekStart:    weekStart,
		Hours:        hours,
		RateCents:    1850,
		GrossCents:   grossCents,
		Status:       status,
		FetchedAt:    fetched,
	}
	if status != model.EarningsPending {
		approved := fetched.Add(-24 * time.Hour)
		e.ApprovedAt = &approved
	}
	return e
}

func seedEarnings(t *testing.T, s *store.SQLiteStore, entries ...model.EarningsEntry) {
	t.Helper()
	require.NoError(t, s.UpsertEarnings(context.Background(), entries))
}

func TestWeekSummaryBuckets(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := earnings.NewService(s, "emp-1", "", week.Window{Back: 2})

	wk, err := week.Parse("2025-01-12")
	require.NoError(t, err)

	seedEarnings(t, s,
		entryFor("e1", "2025-01-12", "Blue Bottle", model.EarningsApproved, 20, 37000),
		entryFor("e2", "2025-01-12", "Corner Deli", model.EarningsPending, 8, 13600),
		entryFor("e3", "2025-01-12", "Apex Cinema", model.EarningsPaid, 4, 6000),
		entryFor("other-week", "2025-01-19", "Blue Bottle", model.EarningsPending, 9, 16650),
	)

	summary, err := svc.WeekSummary(context.Background(), wk)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-12", summary.WeekStart)
	assert.Equal(t, "Jan 12 – Jan 18, 2025", summary.Label)
	assert.Equal(t, 32.0, summary.Hours)
	assert.Equal(t, int64(56600), summary.GrossCents)
	assert.Equal(t, int64(13600), summary.PendingCents)
	assert.Equal(t, int64(37000), summary.ApprovedCents)
	assert.Equal(t, int64(6000), summary.PaidCents)

	// Entries come back sorted by business name.
	require.Len(t, summary.Entries, 3)
	assert.Equal(t, "Apex Cinema", summary.Entries[0].BusinessName)
	assert.Equal(t, "Blue Bottle", summary.Entries[1].BusinessName)
	assert.Equal(t, "Corner Deli", summary.Entries[2].BusinessName)
}

func TestReportHasNoGaps(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := earnings.NewService(s, "emp-1", "", week.Window{Back: 2})

	from, err := week.Parse("2025-01-05")
	require.NoError(t, err)
	to, err := week.Parse("2025-01-19")
	require.NoError(t, err)

	// Only the outer weeks have entries; the middle week must still
	// appear, zeroed.
	seedEarnings(t, s,
		entryFor("e1", "2025-01-05", "Blue Bottle", model.EarningsPaid, 10, 18500),
		entryFor("e2", "2025-01-19", "Blue Bottle", model.EarningsPending, 12, 22200),
	)

	report, err := svc.Report(context.Background(), from, to)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 3)
	assert.Equal(t, "2025-01-05", report.Weeks[0].WeekStart)
	assert.Equal(t, "2025-01-12", report.Weeks[1].WeekStart)
	assert.Equal(t, "2025-01-19", report.Weeks[2].WeekStart)

	assert.Equal(t, 0.0, report.Weeks[1].Hours)
	assert.Empty(t, report.Weeks[1].Entries)

	assert.Equal(t, 22.0, report.Hours)
	assert.Equal(t, int64(40700), report.GrossCents)
}

func TestReportSwapsInvertedRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := earnings.NewService(s, "emp-1", "", week.Window{Back: 2})

	from, err := week.Parse("2025-01-19")
	require.NoError(t, err)
	to, err := week.Parse("2025-01-05")
	require.NoError(t, err)

	report, err := svc.Report(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, report.Weeks, 3)
	assert.Equal(t, "2025-01-05", report.Weeks[0].WeekStart)
}

func TestReportFiltersOtherEmployees(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := earnings.NewService(s, "emp-1", "", week.Window{Back: 2})

	mine := entryFor("mine", "2025-01-12", "Blue Bottle", model.EarningsPending, 8, 14800)
	other := entryFor("other", "2025-01-12", "Blue Bottle", model.EarningsPending, 8, 14800)
	other.EmployeeID = "emp-2"
	seedEarnings(t, s, mine, other)

	wk, err := week.Parse("2025-01-12")
	require.NoError(t, err)
	report, err := svc.Report(context.Background(), wk, wk)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 1)
	require.Len(t, report.Weeks[0].Entries, 1)
	assert.Equal(t, "mine", report.Weeks[0].Entries[0].ID)
}

func TestCanConfirm(t *testing.T) {
	svc := earnings.NewService(nil, "emp-1", "", week.Window{Back: 2})
	current := week.Current()

	assert.True(t, svc.CanConfirm(current))
	assert.True(t, svc.CanConfirm(current.AddWeeks(-2)))
	assert.False(t, svc.CanConfirm(current.AddWeeks(-3)))
	assert.False(t, svc.CanConfirm(current.Next()), "future weeks cannot be confirmed yet")
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{123450, "$1234.50"},
		{-2500, "-$25.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, earnings.FormatCents(tt.cents))
		})
	}
}
