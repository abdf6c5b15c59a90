package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/week"
	"github.com/shiftdesk/shiftdesk/tests/testutil"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestScheduleSourceSync(t *testing.T) {
	st := testutil.NewTestStore(t)
	current := week.Current()
	from := current.AddWeeks(-1)
	to := current.AddWeeks(1)

	page1 := []ShiftRecord{
		{
			ID: "sh-1", BusinessID: "biz-1", BusinessName: "Blue Bottle",
			EmployeeID: "emp-1", Date: week.DayString(current.Day(1)),
			StartTime: "09:00", EndTime: "17:00", Position: "Barista",
			Status: model.ShiftStatusAssigned, HourlyRateCents: 1800,
			PostedAt: "2025-01-20T09:00:00Z",
		},
		{
			ID: "sh-2", BusinessID: "biz-1", BusinessName: "Blue Bottle",
			EmployeeID: "emp-1", Date: week.DayString(current.Day(3)),
			StartTime: "10:00", EndTime: "18:00", Position: "Barista",
			Status: model.ShiftStatusConfirmed, HourlyRateCents: 1800,
			PostedAt: "2025-01-22T12:30:00Z",
		},
	}
	page2 := []ShiftRecord{
		{
			ID: "sh-3", BusinessID: "biz-2", BusinessName: "Corner Deli",
			EmployeeID: "emp-1", Date: week.DayString(from.Day(5)),
			StartTime: "08:00", EndTime: "12:00", Position: "Counter",
			Status: model.ShiftStatusConfirmed, HourlyRateCents: 1650,
			PostedAt: "2025-01-19T08:00:00Z",
		},
	}

	var queries []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shifts", r.URL.Path)
		queries = append(queries, r.URL.Query())
		switch r.URL.Query().Get("page") {
		case "1":
			writeJSON(t, w, ShiftsResponse{Shifts: page1, Page: 1, PageSize: 2, Total: 3})
		case "2":
			writeJSON(t, w, ShiftsResponse{Shifts: page2, Page: 2, PageSize: 2, Total: 3})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	// A shift older than the window should be pruned by the sync.
	stale := model.Shift{
		ID: "sh-stale", BusinessID: "biz-1", BusinessName: "Blue Bottle",
		EmployeeID: "emp-1", Date: week.DayString(current.AddWeeks(-2).Day(0)),
		StartTime: "09:00", EndTime: "17:00", Position: "Barista",
		Status: model.ShiftStatusConfirmed, HourlyRateCents: 1800,
		PostedAt: time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC),
		FetchedAt: time.Now(),
	}
	ctx := context.Background()
	require.NoError(t, st.UpsertShifts(ctx, []model.Shift{stale}))

	src := NewScheduleSource(NewClient(srv.URL, "tok-123"), st, ScheduleConfig{
		AccountID: "emp-1",
		Window:    week.Window{Back: 1, Forward: 1},
		PageSize:  2,
	})
	assert.Equal(t, model.CategorySchedules, src.Category())

	summary, err := src.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CategorySchedules, summary.Category)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, "2025-01-22T12:30:00Z", summary.Latest)

	require.Len(t, queries, 2)
	q := queries[0]
	assert.Equal(t, from.String(), q.Get("from"))
	assert.Equal(t, week.DayString(to.End()), q.Get("to"))
	assert.Equal(t, "emp-1", q.Get("employee_id"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "2", q.Get("page_size"))
	assert.Equal(t, "2", queries[1].Get("page"))

	shifts, err := st.GetShifts(ctx, store.ShiftFilter{})
	require.NoError(t, err)
	var ids []string
	for _, sh := range shifts {
		ids = append(ids, sh.ID)
	}
	assert.ElementsMatch(t, []string{"sh-1", "sh-2", "sh-3"}, ids,
		"window shifts cached, stale shift pruned")
}

func TestScheduleSourceStopsOnEmptyPage(t *testing.T) {
	st := testutil.NewTestStore(t)

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, ShiftsResponse{Shifts: nil, Page: 1, PageSize: 50, Total: 10})
	}))
	defer srv.Close()

	src := NewScheduleSource(NewClient(srv.URL, "tok-123"), st, ScheduleConfig{
		AccountID: "emp-1",
		Window:    week.Window{Back: 1, Forward: 1},
	})

	summary, err := src.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "an empty page ends pagination even when total disagrees")
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, "", summary.Latest)
}

func TestJoinRequestSourceWatermark(t *testing.T) {
	st := testutil.NewTestStore(t)

	records := []JoinRequestRecord{
		{
			ID: "jr-1", EmployeeID: "emp-1", EmployeeName: "Dana Reyes",
			BusinessID: "biz-1", BusinessName: "Blue Bottle",
			Status: model.JoinRequestPending, CreatedAt: "2025-01-20T10:00:00Z",
		},
		{
			ID: "jr-2", EmployeeID: "emp-1", EmployeeName: "Dana Reyes",
			BusinessID: "biz-2", BusinessName: "Corner Deli",
			Status: model.JoinRequestApproved, Note: "welcome aboard",
			CreatedAt: "2025-01-18T09:00:00Z", DecidedAt: "2025-01-21T09:15:00Z",
		},
	}

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/join-requests", r.URL.Path)
		query = r.URL.Query()
		writeJSON(t, w, JoinRequestsResponse{Requests: records, Page: 1, PageSize: 200, Total: 2})
	}))
	defer srv.Close()

	src := NewJoinRequestSource(NewClient(srv.URL, "tok-123"), st, JoinRequestConfig{
		EmployeeID: "emp-1",
	})
	assert.Equal(t, model.CategoryJoinRequests, src.Category())

	ctx := context.Background()
	summary, err := src.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "2025-01-21T09:15:00Z", summary.Latest,
		"the decision time outranks the pending request's creation time")
	assert.Equal(t, "emp-1", query.Get("employee_id"))

	reqs, err := st.GetJoinRequests(ctx, store.JoinRequestFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	for _, r := range reqs {
		if r.ID == "jr-2" {
			require.NotNil(t, r.DecidedAt)
			assert.Equal(t, "welcome aboard", r.Note)
		} else {
			assert.Nil(t, r.DecidedAt)
		}
	}
}

func TestEarningsSourceSync(t *testing.T) {
	st := testutil.NewTestStore(t)
	current := week.Current()

	records := []EarningsRecord{
		{
			ID: "earn-1", EmployeeID: "emp-1", BusinessID: "biz-1",
			BusinessName: "Blue Bottle", WeekStart: current.AddWeeks(-1).String(),
			Hours: 24, RateCents: 1800, GrossCents: 43200,
			Status: model.EarningsPending,
		},
		{
			ID: "earn-2", EmployeeID: "emp-1", BusinessID: "biz-2",
			BusinessName: "Corner Deli", WeekStart: current.AddWeeks(-2).String(),
			Hours: 8, RateCents: 1650, GrossCents: 13200,
			Status: model.EarningsApproved, ApprovedAt: "2025-01-21T08:00:00Z",
		},
	}

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/earnings", r.URL.Path)
		query = r.URL.Query()
		writeJSON(t, w, EarningsResponse{Entries: records, Page: 1, PageSize: 200, Total: 2})
	}))
	defer srv.Close()

	src := NewEarningsSource(NewClient(srv.URL, "tok-123"), st, EarningsConfig{
		AccountID: "emp-1",
		Window:    week.Window{Back: 2, Forward: 0},
	})
	assert.Equal(t, model.CategoryEarnings, src.Category())

	ctx := context.Background()
	summary, err := src.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "2025-01-21T08:00:00Z", summary.Latest,
		"only approvals move the earnings watermark")

	assert.Equal(t, current.AddWeeks(-2).String(), query.Get("from_week"))
	assert.Equal(t, current.String(), query.Get("to_week"))
	assert.Equal(t, "emp-1", query.Get("employee_id"))

	entries, err := st.GetEarnings(ctx, store.EarningsFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestTicketSourceSync(t *testing.T) {
	st := testutil.NewTestStore(t)

	records := []TicketRecord{
		{
			ID: "tick-1", RequesterID: "emp-9", RequesterName: "Sam Ortiz",
			Subject: "missing shift payout", Status: model.TicketOpen,
			CreatedAt: "2025-01-20T08:00:00Z", UpdatedAt: "2025-01-21T10:00:00Z",
		},
		{
			ID: "tick-2", RequesterID: "biz-3", RequesterName: "Harbor Cafe",
			Subject: "cannot edit next week", Status: model.TicketInProgress,
			CreatedAt: "2025-01-19T14:00:00Z", UpdatedAt: "2025-01-23T16:45:00Z",
		},
	}

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tickets", r.URL.Path)
		query = r.URL.Query()
		writeJSON(t, w, TicketsResponse{Tickets: records, Page: 1, PageSize: 200, Total: 2})
	}))
	defer srv.Close()

	src := NewTicketSource(NewClient(srv.URL, "tok-123"), st, TicketConfig{})
	assert.Equal(t, model.CategoryTickets, src.Category())

	ctx := context.Background()
	summary, err := src.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "2025-01-23T16:45:00Z", summary.Latest)

	assert.Equal(t, []string{model.TicketOpen, model.TicketInProgress}, query["status"],
		"only unresolved statuses are requested")

	tickets, err := st.GetTickets(ctx, store.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, tickets, 2)
}

func TestConvertTimes(t *testing.T) {
	t.Run("parse zero on malformed", func(t *testing.T) {
		assert.True(t, parseAPITime("").IsZero())
		assert.True(t, parseAPITime("yesterday-ish").IsZero())
		got := parseAPITime("2025-01-21T08:00:00.25Z")
		assert.True(t, got.Equal(time.Date(2025, 1, 21, 8, 0, 0, 250000000, time.UTC)))
	})

	t.Run("optional nil on malformed", func(t *testing.T) {
		assert.Nil(t, optionalAPITime(""))
		require.NotNil(t, optionalAPITime("2025-01-21T08:00:00Z"))
	})

	t.Run("watermark keeps the max", func(t *testing.T) {
		w := maxWatermark("", time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC))
		assert.Equal(t, "2025-01-20T10:00:00Z", w)
		w = maxWatermark(w, time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC))
		assert.Equal(t, "2025-01-20T10:00:00Z", w)
		w = maxWatermark(w, time.Time{})
		assert.Equal(t, "2025-01-20T10:00:00Z", w)
		loc := time.FixedZone("PST", -8*60*60)
		w = maxWatermark(w, time.Date(2025, 1, 20, 6, 0, 0, 0, loc))
		assert.Equal(t, "2025-01-20T14:00:00Z", w, "offsets normalize to UTC before comparing")
	})
}
