/*
Package quota enforces the virtual try-on usage caps.

Guests get one generation, tracked by a durable counter in the key-value
store. Signed-in users get five, tracked on the in-session identity record
only; the counter starts at zero on every sign-in and is never restored from
durable storage. Usage is recorded only after a generation call succeeds.
*/
package quota

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"bushnoor/internal/app/identity"
	"bushnoor/internal/app/kvstore"
	"bushnoor/internal/pkg/logx"
)

const (
	// GuestLimit is the number of free try-ons for anonymous visitors.
	GuestLimit = 1

	// UserLimit is the number of try-ons per signed-in session.
	UserLimit = 5
)

// Tracker reads and records try-on usage per identity class.
type Tracker struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewTracker creates a tracker on top of the given persistence adapter.
func NewTracker(kv kvstore.Store) *Tracker {
	return &Tracker{kv: kv}
}

// Limit returns the hard cap for the identity class.
func (t *Tracker) Limit(id identity.Identity) int {
	if id.IsGuest() {
		return GuestLimit
	}
	return UserLimit
}

// CurrentUsage returns how many try-ons the identity has performed. A missing
// or malformed guest counter reads as zero.
func (t *Tracker) CurrentUsage(ctx context.Context, id identity.Identity) int {
	if !id.IsGuest() {
		t.mu.Lock()
		defer t.mu.Unlock()
		return id.User.TryOnUsageCount
	}

	raw, ok, err := t.kv.Get(ctx, kvstore.GuestTryOnCountKey)
	if err != nil {
		logx.Error(err, "Failed to read guest try-on counter; treating as zero")
		return 0
	}
	if !ok {
		return 0
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		logx.Warn("Malformed guest try-on counter; treating as zero", "value", raw)
		return 0
	}
	return count
}

// Remaining returns the try-ons left for the identity, floored at zero.
func (t *Tracker) Remaining(ctx context.Context, id identity.Identity) int {
	return max(0, t.Limit(id)-t.CurrentUsage(ctx, id))
}

// Allow reports whether a generation may proceed. Callers must re-check
// immediately before invoking the external call; there is no reservation.
func (t *Tracker) Allow(ctx context.Context, id identity.Identity) bool {
	return t.Remaining(ctx, id) > 0
}

// RecordUsage increments the identity's counter. It must be called only after
// the external generation call reports success, never before and never on
// failure. Guest usage is persisted; named-user usage stays in the session.
func (t *Tracker) RecordUsage(ctx context.Context, id identity.Identity) error {
	if !id.IsGuest() {
		t.mu.Lock()
		id.User.TryOnUsageCount++
		t.mu.Unlock()
		return nil
	}

	count := t.CurrentUsage(ctx, id) + 1
	if err := t.kv.Set(ctx, kvstore.GuestTryOnCountKey, strconv.Itoa(count)); err != nil {
		return fmt.Errorf("persist guest try-on counter: %w", err)
	}
	return nil
}
