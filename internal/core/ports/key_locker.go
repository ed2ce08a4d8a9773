package ports

import "context"

// KeyLocker serializes work on named resources such as "sku:FG001".
//
// Lock blocks until every key is held or ctx is done. Implementations take
// the keys in sorted order, so callers locking overlapping sets cannot
// deadlock. The returned release must be called exactly once.
type KeyLocker interface {
	Lock(ctx context.Context, keys ...string) (release func(), err error)
}
