// Package session holds the server-side session state behind an opaque
// cookie token. The Postgres store is the default; a Redis store is selected
// when REDIS_ADDR is configured.
package session

import (
	"context"
	"time"
)

// Store maps opaque tokens to user ids with a TTL. New issues a fresh token;
// Renew extends the TTL of an existing grant (used on re-login, not on page
// loads).
type Store interface {
	New(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, token string) (int64, bool, error)
	Renew(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
}

// DefaultTTL is the 7-day session lifetime.
const DefaultTTL = 7 * 24 * time.Hour
