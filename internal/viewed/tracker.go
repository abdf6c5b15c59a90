// Package viewed records which notification categories a user has already
// acknowledged, so badge counts disappear once seen and reappear when newer
// activity arrives. State lives in whichever Store backs the Tracker: the
// default SQLite backend keeps it per device, the Redis backend shares it.
package viewed

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// Key addresses one viewed-state record: a user, a category, and an
// optional scope (typically a week start) isolating recurring periods
// from each other.
type Key struct {
	UserID   string
	Category model.Category
	Scope    string
}

// String serializes the key into the stable form used by every store
// backend. Segments are escaped so user IDs containing the separator
// cannot collide with other keys.
func (k Key) String() string {
	return strings.Join([]string{
		url.QueryEscape(k.UserID),
		url.QueryEscape(string(k.Category)),
		url.QueryEscape(k.Scope),
	}, ":")
}

// Store is the key-value namespace viewed-state lives in. Get reports
// ok=false when no record exists; the stored watermark may be empty,
// which means "acknowledged, no ordering signal".
type Store interface {
	Get(ctx context.Context, key Key) (watermark string, ok bool, err error)
	Set(ctx context.Context, key Key, watermark string) error
	Delete(ctx context.Context, key Key) error
}

// Tracker answers "has the user seen this yet?" against a Store. Reads
// fail open: when the store is unreachable or corrupt, everything counts
// as unseen and badges stay visible rather than silently disappearing.
type Tracker struct {
	store Store
}

// NewTracker creates a Tracker backed by the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// HasViewed reports whether the record for key exists and still covers
// latest. An empty latest asks only whether the key was ever acknowledged.
// A latest strictly newer than the stored watermark means new activity
// arrived since the last acknowledgment, so the answer is false even
// though the category was viewed before.
func (t *Tracker) HasViewed(ctx context.Context, key Key, latest string) bool {
	stored, ok, err := t.store.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("key", key.String()).
			Debug("viewed-state read failed, treating as unseen")
		return false
	}
	if !ok {
		return false
	}
	if latest == "" {
		return true
	}
	if stored == "" {
		// Acknowledged before any ordering signal existed; the supplied
		// watermark is newer by definition.
		return false
	}
	return compareWatermarks(latest, stored) <= 0
}

// MarkViewed records that the user has acknowledged the category up to
// latest. It never moves a stored watermark backwards, so repeated or
// out-of-order calls are harmless.
func (t *Tracker) MarkViewed(ctx context.Context, key Key, latest string) error {
	stored, ok, err := t.store.Get(ctx, key)
	if err == nil && ok {
		if latest == "" {
			// Already acknowledged; an empty latest has nothing to add.
			return nil
		}
		if stored != "" && compareWatermarks(latest, stored) <= 0 {
			return nil
		}
	}
	return t.store.Set(ctx, key, latest)
}

// Clear forgets the record for key. Callers clear when the underlying
// collection becomes empty, so items reappearing later count as unseen.
func (t *Tracker) Clear(ctx context.Context, key Key) error {
	return t.store.Delete(ctx, key)
}

// compareWatermarks orders two watermarks. Watermarks are usually RFC 3339
// timestamps and compare as parsed times; opaque tokens fall back to
// bytewise comparison.
func compareWatermarks(a, b string) int {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}
