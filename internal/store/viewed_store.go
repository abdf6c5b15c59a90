package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/viewed"
)

// ViewedStore persists viewed-state in the local SQLite database,
// alongside the cached marketplace data. It implements viewed.Store.
type ViewedStore struct {
	s *SQLiteStore
}

// NewViewedStore creates a viewed-state store backed by s.
func NewViewedStore(s *SQLiteStore) *ViewedStore {
	return &ViewedStore{s: s}
}

// Get returns the stored watermark for key, with ok=false when absent.
func (v *ViewedStore) Get(ctx context.Context, key viewed.Key) (string, bool, error) {
	var watermark string
	err := v.s.db.GetContext(ctx, &watermark,
		"SELECT watermark FROM viewed_state WHERE key = ?", key.String(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading viewed state: %w", err)
	}
	return watermark, true, nil
}

// Set stores the watermark for key, overwriting any previous value.
func (v *ViewedStore) Set(ctx context.Context, key viewed.Key, watermark string) error {
	_, err := v.s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO viewed_state (key, watermark, updated_at)
		VALUES (?, ?, ?)`,
		key.String(), watermark, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing viewed state: %w", err)
	}
	return nil
}

// Delete removes the record for key if present.
func (v *ViewedStore) Delete(ctx context.Context, key viewed.Key) error {
	_, err := v.s.db.ExecContext(ctx,
		"DELETE FROM viewed_state WHERE key = ?", key.String(),
	)
	if err != nil {
		return fmt.Errorf("deleting viewed state: %w", err)
	}
	return nil
}
