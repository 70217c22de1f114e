/*
Package kvstore provides the string-keyed persistence layer for the storefront.

All durable state (carts, the guest try-on counter, visitor logs) is stored as
opaque string values addressed by string keys. Expiry is not handled here; it
is layered on top by the consumers that need it.
*/
package kvstore

import "context"

// Well-known keys. The cart keys are derived per identity via identity.ScopeKey.
const (
	// GuestTryOnCountKey stores the durable guest try-on usage counter as an integer string.
	GuestTryOnCountKey = "guestTryOnCount"

	// VisitorLogsKey stores the bounded visitor log ring buffer as a JSON array.
	VisitorLogsKey = "visitor_logs"

	// CartKeyPrefix is prepended to an identity scope key to form that identity's cart key.
	CartKeyPrefix = "cart_"
)

// Store is the key-value persistence adapter. Get reports absence via the
// boolean rather than an error so callers can treat "missing" as a normal state.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
