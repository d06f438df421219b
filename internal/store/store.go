package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no link exists for the requested id.
var ErrNotFound = errors.New("not found")

// Link is a stored value and the number of redirects served for it.
// IDs are assigned by the store, start at 1 and are never reused.
type Link struct {
	ID     int64  `db:"id"`
	Value  string `db:"value"`
	Clicks int64  `db:"clicks"`
}

// LinkStoreIface exposes all link persistence operations.
// Implementations must assign ids atomically and increment clicks without
// a read-modify-write in the caller.
type LinkStoreIface interface {
	Insert(ctx context.Context, value string) (int64, error)
	Get(ctx context.Context, id int64) (*Link, error)
	IncrementClicks(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

var (
	_ LinkStoreIface = (*LinkStore)(nil)
	_ LinkStoreIface = (*RedisLinkStore)(nil)
)
