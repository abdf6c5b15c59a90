// Package contracts defines the interface between the marketplace API and
// the local cache. Each notification category is backed by one source that
// syncs a collection into SQLite; badges are computed from the cache alone.
package contracts

import "context"

// Category identifies a notification-contributing collection.
type Category string

const (
	CategorySchedules    Category = "schedules"
	CategoryJoinRequests Category = "join_requests"
	CategoryEarnings     Category = "earnings"
	CategoryTickets      Category = "support_tickets"
)

// Source syncs one category's collection from the marketplace into the
// local cache.
type Source interface {
	// Category returns the category this source feeds.
	Category() Category

	// Sync fetches the collection (paging as needed), upserts it into the
	// cache, prunes rows that left the sync window, and reports what was
	// written. Sync never touches viewed-state.
	Sync(ctx context.Context) (*Summary, error)
}

// Summary reports one completed sync.
type Summary struct {
	Category Category

	// Count is the number of records written.
	Count int

	// Latest is the newest activity watermark seen, as an RFC 3339 UTC
	// timestamp, or empty when the collection carries no timestamps.
	Latest string
}

// Badge is the rendered notification state for one category, recomputed
// on every poll tick from the cache plus viewed-state.
type Badge struct {
	Category Category `json:"category"`

	// Count is the number of items behind the badge.
	Count int `json:"count"`

	// Latest is the newest activity watermark in the collection.
	Latest string `json:"latest,omitempty"`

	// Unseen reports whether the badge should be shown: true when the
	// collection holds activity newer than the stored viewed-state.
	Unseen bool `json:"unseen"`
}
