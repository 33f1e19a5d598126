package repo

import (
	"context"
	"time"
)

// CodeRepo stores short-lived verification codes. A Set on an existing key
// overwrites the value and resets the TTL, so at most one code is live per
// key.
type CodeRepo interface {
	Set(ctx context.Context, key, code string, ttl time.Duration) error

	// Get returns apperrors.ErrCodeInvalidOrExpired when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	Delete(ctx context.Context, key string) error

	// DeleteIfMatch deletes the key only while it still holds code and
	// reports whether this call consumed it. Two racing confirmations on
	// the same code see exactly one true.
	DeleteIfMatch(ctx context.Context, key, code string) (bool, error)
}
