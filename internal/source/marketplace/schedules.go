package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/source"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

// maxPages caps pagination loops so a misbehaving server cannot keep a
// sync running forever.
const maxPages = 20

// defaultPageSize is used when a source config leaves PageSize unset.
const defaultPageSize = 200

// ScheduleConfig configures a ScheduleSource. Exactly one of AccountID
// (employee role) or BusinessID (business role) should be set; the window
// bounds which weeks of shifts are mirrored locally.
type ScheduleConfig struct {
	AccountID  string
	BusinessID string
	Window     week.Window
	PageSize   int
}

// ScheduleSource mirrors the shifts visible to this account into the
// local store, bounded to the configured week window around the current
// week.
type ScheduleSource struct {
	client *Client
	store  store.Store
	cfg    ScheduleConfig
}

// NewScheduleSource creates a new schedule source.
func NewScheduleSource(client *Client, st store.Store, cfg ScheduleConfig) *ScheduleSource {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	return &ScheduleSource{client: client, store: st, cfg: cfg}
}

// Category returns the notification category this source feeds.
func (s *ScheduleSource) Category() model.Category {
	return model.CategorySchedules
}

// Sync fetches every shift inside the week window and replaces the
// cached copies. Shifts older than the window are pruned so the cache
// tracks what the badge logic can actually see.
func (s *ScheduleSource) Sync(ctx context.Context) (*source.Summary, error) {
	current := week.Current()
	from := current.AddWeeks(-s.cfg.Window.Back)
	to := current.AddWeeks(s.cfg.Window.Forward)

	base := url.Values{}
	base.Set("from", from.String())
	base.Set("to", week.DayString(to.End()))
	if s.cfg.AccountID != "" {
		base.Set("employee_id", s.cfg.AccountID)
	}
	if s.cfg.BusinessID != "" {
		base.Set("business_id", s.cfg.BusinessID)
	}

	fetchedAt := time.Now()
	var shifts []model.Shift
	latest := ""

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		for k, vs := range base {
			query[k] = vs
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(s.cfg.PageSize))

		var resp ShiftsResponse
		if err := s.client.Get(ctx, "/api/v1/shifts", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching shifts page %d: %w", page, err)
		}

		for _, r := range resp.Shifts {
			sh := shiftToModel(r, fetchedAt)
			shifts = append(shifts, sh)
			latest = maxWatermark(latest, sh.PostedAt)
		}

		if len(shifts) >= resp.Total || len(resp.Shifts) == 0 {
			break
		}
	}

	if err := s.store.UpsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("storing shifts: %w", err)
	}
	if err := s.store.DeleteShiftsBefore(ctx, from.String()); err != nil {
		return nil, fmt.Errorf("pruning shifts: %w", err)
	}

	return &source.Summary{
		Category: model.CategorySchedules,
		Count:    len(shifts),
		Latest:   latest,
	}, nil
}
