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

// EarningsConfig configures an EarningsSource. The window bounds which
// weeks of earnings are mirrored; it is usually narrower than the
// schedule window since earnings only exist for worked weeks.
type EarningsConfig struct {
	AccountID  string
	BusinessID string
	Window     week.Window
	PageSize   int
}

// EarningsSource mirrors weekly earnings entries into the local store.
// Approvals are the activity signal: an entry flipping to approved moves
// its watermark via approved_at.
type EarningsSource struct {
	client *Client
	store  store.Store
	cfg    EarningsConfig
}

// NewEarningsSource creates a new earnings source.
func NewEarningsSource(client *Client, st store.Store, cfg EarningsConfig) *EarningsSource {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	return &EarningsSource{client: client, store: st, cfg: cfg}
}

// Category returns the notification category this source feeds.
func (s *EarningsSource) Category() model.Category {
	return model.CategoryEarnings
}

// Sync fetches every earnings entry inside the week window and replaces
// the cached copies.
func (s *EarningsSource) Sync(ctx context.Context) (*source.Summary, error) {
	current := week.Current()
	from := current.AddWeeks(-s.cfg.Window.Back)
	to := current.AddWeeks(s.cfg.Window.Forward)

	base := url.Values{}
	base.Set("from_week", from.String())
	base.Set("to_week", to.String())
	if s.cfg.AccountID != "" {
		base.Set("employee_id", s.cfg.AccountID)
	}
	if s.cfg.BusinessID != "" {
		base.Set("business_id", s.cfg.BusinessID)
	}

	fetchedAt := time.Now()
	var entries []model.EarningsEntry
	latest := ""

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		for k, vs := range base {
			query[k] = vs
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(s.cfg.PageSize))

		var resp EarningsResponse
		if err := s.client.Get(ctx, "/api/v1/earnings", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching earnings page %d: %w", page, err)
		}

		for _, r := range resp.Entries {
			e := earningsToModel(r, fetchedAt)
			entries = append(entries, e)
			if e.ApprovedAt != nil {
				latest = maxWatermark(latest, *e.ApprovedAt)
			}
		}

		if len(entries) >= resp.Total || len(resp.Entries) == 0 {
			break
		}
	}

	if err := s.store.UpsertEarnings(ctx, entries); err != nil {
		return nil, fmt.Errorf("storing earnings: %w", err)
	}

	return &source.Summary{
		Category: model.CategoryEarnings,
		Count:    len(entries),
		Latest:   latest,
	}, nil
}
