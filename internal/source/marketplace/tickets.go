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

// TicketConfig configures a TicketSource. Tickets are an admin concern;
// the source fetches every unresolved ticket on the platform.
type TicketConfig struct {
	PageSize int
}

// TicketSource mirrors unresolved support tickets into the local store.
type TicketSource struct {
	client *Client
	store  store.Store
	cfg    TicketConfig
}

// NewTicketSource creates a new support ticket source.
func NewTicketSource(client *Client, st store.Store, cfg TicketConfig) *TicketSource {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	return &TicketSource{client: client, store: st, cfg: cfg}
}

// Category returns the notification category this source feeds.
func (s *TicketSource) Category() model.Category {
	return model.CategoryTickets
}

// Sync fetches open and in-progress tickets and replaces the cached
// copies.
func (s *TicketSource) Sync(ctx context.Context) (*source.Summary, error) {
	fetchedAt := time.Now()
	var tickets []model.SupportTicket
	latest := ""

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Add("status", model.TicketOpen)
		query.Add("status", model.TicketInProgress)
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(s.cfg.PageSize))

		var resp TicketsResponse
		if err := s.client.Get(ctx, "/api/v1/tickets", query, &resp); err != nil {
			return nil, fmt.Errorf("fetching tickets page %d: %w", page, err)
		}

		for _, r := range resp.Tickets {
			t := ticketToModel(r, fetchedAt)
			tickets = append(tickets, t)
			latest = maxWatermark(latest, t.UpdatedAt)
		}

		if len(tickets) >= resp.Total || len(resp.Tickets) == 0 {
			break
		}
	}

	if err := s.store.UpsertTickets(ctx, tickets); err != nil {
		return nil, fmt.Errorf("storing tickets: %w", err)
	}

	return &source.Summary{
		Category: model.CategoryTickets,
		Count:    len(tickets),
		Latest:   latest,
	}, nil
}
