package viewed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

func testKey() Key {
	return Key{UserID: "user-1", Category: model.CategorySchedules, Scope: "2025-01-26"}
}

func TestHasViewedUnknownKey(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()

	assert.False(t, tr.HasViewed(ctx, testKey(), ""))
	assert.False(t, tr.HasViewed(ctx, testKey(), "2025-01-01T00:00:00Z"))
}

func TestMarkViewedLatch(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()
	key := testKey()

	require.NoError(t, tr.MarkViewed(ctx, key, ""))
	assert.True(t, tr.HasViewed(ctx, key, ""), "acknowledged key answers true with no watermark")

	// An empty stored watermark carries no ordering signal, so any
	// concrete watermark counts as newer.
	assert.False(t, tr.HasViewed(ctx, key, "2025-01-01T00:00:00Z"))
}

func TestMarkViewedWatermarkOrdering(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()
	key := testKey()

	require.NoError(t, tr.MarkViewed(ctx, key, "2025-01-01T00:00:00Z"))

	tests := []struct {
		name   string
		latest string
		want   bool
	}{
		{"no watermark supplied", "", true},
		{"same watermark", "2025-01-01T00:00:00Z", true},
		{"older watermark", "2024-12-31T00:00:00Z", true},
		{"newer watermark", "2025-01-02T00:00:00Z", false},
		{"newer by one second", "2025-01-01T00:00:01Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.HasViewed(ctx, key, tt.latest))
		})
	}
}

func TestMarkViewedNeverRegresses(t *testing.T) {
	ms := NewMemoryStore()
	tr := NewTracker(ms)
	ctx := context.Background()
	key := testKey()

	require.NoError(t, tr.MarkViewed(ctx, key, "2025-01-05T00:00:00Z"))
	require.NoError(t, tr.MarkViewed(ctx, key, "2025-01-01T00:00:00Z"))

	stored, ok, err := ms.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2025-01-05T00:00:00Z", stored)

	require.NoError(t, tr.MarkViewed(ctx, key, ""))
	stored, _, _ = ms.Get(ctx, key)
	assert.Equal(t, "2025-01-05T00:00:00Z", stored, "empty re-acknowledgment keeps the watermark")

	require.NoError(t, tr.MarkViewed(ctx, key, "2025-02-01T00:00:00Z"))
	stored, _, _ = ms.Get(ctx, key)
	assert.Equal(t, "2025-02-01T00:00:00Z", stored)
}

func TestClear(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()
	key := testKey()

	require.NoError(t, tr.MarkViewed(ctx, key, "2025-01-01T00:00:00Z"))
	require.True(t, tr.HasViewed(ctx, key, "2025-01-01T00:00:00Z"))

	require.NoError(t, tr.Clear(ctx, key))
	assert.False(t, tr.HasViewed(ctx, key, "2024-01-01T00:00:00Z"),
		"cleared key counts as unseen even for old activity")
}

func TestScopeAndUserIsolation(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()

	week1 := Key{UserID: "user-1", Category: model.CategorySchedules, Scope: "2025-01-05"}
	week2 := Key{UserID: "user-1", Category: model.CategorySchedules, Scope: "2025-01-12"}
	otherUser := Key{UserID: "user-2", Category: model.CategorySchedules, Scope: "2025-01-05"}

	require.NoError(t, tr.MarkViewed(ctx, week1, "2025-01-06T00:00:00Z"))

	assert.True(t, tr.HasViewed(ctx, week1, "2025-01-06T00:00:00Z"))
	assert.False(t, tr.HasViewed(ctx, week2, "2025-01-06T00:00:00Z"))
	assert.False(t, tr.HasViewed(ctx, otherUser, "2025-01-06T00:00:00Z"))
}

func TestCategoryIsolation(t *testing.T) {
	tr := NewTracker(NewMemoryStore())
	ctx := context.Background()

	schedules := Key{UserID: "user-1", Category: model.CategorySchedules}
	requests := Key{UserID: "user-1", Category: model.CategoryJoinRequests}

	require.NoError(t, tr.MarkViewed(ctx, schedules, "2025-01-06T00:00:00Z"))
	assert.True(t, tr.HasViewed(ctx, schedules, ""))
	assert.False(t, tr.HasViewed(ctx, requests, ""))
}

// errStore fails every operation, standing in for a broken backend.
type errStore struct{}

func (errStore) Get(context.Context, Key) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (errStore) Set(context.Context, Key, string) error { return errors.New("backend down") }
func (errStore) Delete(context.Context, Key) error      { return errors.New("backend down") }

func TestHasViewedFailsOpen(t *testing.T) {
	tr := NewTracker(errStore{})
	ctx := context.Background()

	assert.False(t, tr.HasViewed(ctx, testKey(), ""),
		"a broken store must surface badges, not hide them")
	assert.False(t, tr.HasViewed(ctx, testKey(), "2025-01-01T00:00:00Z"))
}

func TestMarkViewedWithBrokenReads(t *testing.T) {
	// A failed read must not block the write path.
	ms := NewMemoryStore()
	tr := NewTracker(readFailStore{MemoryStore: ms})
	ctx := context.Background()

	require.NoError(t, tr.MarkViewed(ctx, testKey(), "2025-01-01T00:00:00Z"))
	stored, ok, err := ms.Get(ctx, testKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2025-01-01T00:00:00Z", stored)
}

// readFailStore fails reads while letting writes through.
type readFailStore struct {
	*MemoryStore
}

func (readFailStore) Get(context.Context, Key) (string, bool, error) {
	return "", false, errors.New("read failed")
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "plain segments",
			key:  Key{UserID: "user-1", Category: model.CategoryEarnings, Scope: "2025-01-05"},
			want: "user-1:earnings:2025-01-05",
		},
		{
			name: "empty scope",
			key:  Key{UserID: "user-1", Category: model.CategoryJoinRequests},
			want: "user-1:join_requests:",
		},
		{
			name: "separator in user ID is escaped",
			key:  Key{UserID: "org:42", Category: model.CategorySchedules, Scope: "2025-01-05"},
			want: "org%3A42:schedules:2025-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestCompareWatermarks(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal instants", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z", 0},
		{"a earlier", "2025-01-01T00:00:00Z", "2025-01-01T00:00:01Z", -1},
		{"a later", "2025-01-02T00:00:00Z", "2025-01-01T00:00:00Z", 1},
		{"same instant different offsets", "2025-01-01T05:00:00+05:00", "2025-01-01T00:00:00Z", 0},
		{"fractional seconds", "2025-01-01T00:00:00.500Z", "2025-01-01T00:00:00Z", 1},
		{"opaque tokens compare bytewise", "cursor-b", "cursor-a", 1},
		{"mixed falls back to bytewise", "2025-01-01T00:00:00Z", "cursor-a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareWatermarks(tt.a, tt.b))
		})
	}
}
