// Package source defines the contract between the sync loop and the
// per-category marketplace integrations that feed the local cache.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// AuthError indicates that authentication has failed or expired for the
// marketplace account. It is returned by the API client when a 401
// response is received.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Summary describes the outcome of a single category sync.
type Summary struct {
	// Category identifies which integration produced this summary.
	Category model.Category

	// Count is the number of records fetched from the marketplace.
	Count int

	// Latest is the newest activity watermark seen during the sync,
	// RFC 3339 formatted, or empty when nothing was fetched.
	Latest string
}

// Source defines the contract every category integration implements.
// Sync pulls the category's current state from the marketplace into the
// local store, replacing what was cached before.
type Source interface {
	// Category returns the notification category this source feeds.
	Category() model.Category

	// Sync fetches the remote state and upserts it into the local store.
	Sync(ctx context.Context) (*Summary, error)
}
