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
)

// JoinRequestConfig configures a JoinRequestSource. BusinessID mirrors
// the requests arriving at a business; EmployeeID mirrors the requests an
// employee has filed, so decisions on them show up as activity.
type JoinRequestConfig struct {
	BusinessID string
	EmployeeID string
	PageSize   int
}

// JoinRequestSource mirrors team join requests into the local store.
type JoinRequestSource struct {
	client *Client
	store  store.Store
	cfg    JoinRequestConfig
}

// NewJoinRequestSource creates a new join request source.
func NewJoinRequestSource(client *Client, st store.Store, cfg JoinRequestConfig) *JoinRequestSource {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	return &JoinRequestSource{client: client, store: st, cfg: cfg}
}

// Category returns the notification category this source feeds.
func (s *JoinRequestSource) Category() model.Category {
	return model.CategoryJoinRequests
}

// Sync fetches the account's join requests in every status and replaces
// the cached copies. Decided requests stay in the feed so the decision
// itself can move the activity watermark.
func (s *JoinRequestSource) Sync(ctx context.Context) (*source.Summary, error) {
	base := url.Values{}
	if s.cfg.BusinessID != "" {
		base.Set("business_id", s.cfg.BusinessID)
	}
	if s.cfg.EmployeeID != "" {
		base.Set("employee_id", s.cfg.EmployeeID)
	}

	fetchedAt := time.Now()
	var reqs []model.JoinRequest
	latest := ""

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		for k, vs := range base {
			query[k] = vs
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(s.cfg.PageSize))

		var resp JoinRequestsResponse
		if err := s.client.Get(ctx, "/api/v1/join-requests", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching join requests page %d: %w", page, err)
		}

		for _, r := range resp.Requests {
			req := joinRequestToModel(r, fetchedAt)
			reqs = append(reqs, req)
			latest = maxWatermark(latest, req.Watermark())
		}

		if len(reqs) >= resp.Total || len(resp.Requests) == 0 {
			break
		}
	}

	if err := s.store.UpsertJoinRequests(ctx, reqs); err != nil {
		return nil, fmt.Errorf("storing join requests: %w", err)
	}

	return &source.Summary{
		Category: model.CategoryJoinRequests,
		Count:    len(reqs),
		Latest:   latest,
	}, nil
}
