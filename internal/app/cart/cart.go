/*
Package cart implements the session-scoped shopping cart.

Each identity owns one cart, persisted in the key-value store under
"cart_<scope>" as an envelope pairing the cart lines with a save timestamp.
An envelope older than the validity window is treated as absent and purged on
the next read. The active (materialized) cart is reloaded from storage only
when the identity changes; mutations operate on the active cart and sync
storage immediately.
*/
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bushnoor/internal/app/identity"
	"bushnoor/internal/app/kvstore"
	"bushnoor/internal/pkg/logx"
)

// Validity is the rolling window during which a persisted cart survives.
const Validity = 72 * time.Hour

// ErrSignInRequired is returned by Checkout for guests; the caller redirects
// to the sign-in flow instead of reporting a failure.
var ErrSignInRequired = errors.New("checkout requires a signed-in user")

// Line is one product entry in the cart. A cart holds at most one line per
// product ID, and a line's quantity never drops below one.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// Envelope is the persisted cart payload. SavedAt is epoch milliseconds.
type Envelope struct {
	Items   []Line `json:"items"`
	SavedAt int64  `json:"savedAt"`
}

// Store owns the active carts, keyed by identity scope.
type Store struct {
	kv  kvstore.Store
	now func() time.Time

	mu     sync.Mutex
	active map[string][]Line
}

// NewStore creates a cart store on top of the given persistence adapter.
func NewStore(kv kvstore.Store) *Store {
	return &Store{
		kv:     kv,
		now:    time.Now,
		active: make(map[string][]Line),
	}
}

// StorageKey returns the persistence key for the identity's cart.
func StorageKey(id identity.Identity) string {
	return kvstore.CartKeyPrefix + identity.ScopeKey(id)
}

// Reload materializes the identity's cart from storage. It is invoked on every
// identity change (sign-in, sign-out, first contact). A fresh envelope restores
// its items; an expired one is deleted and yields an empty cart; a malformed
// one is logged and treated as absent.
func (s *Store) Reload(ctx context.Context, id identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reloadLocked(ctx, id)
}

func (s *Store) reloadLocked(ctx context.Context, id identity.Identity) error {
	scope := identity.ScopeKey(id)
	key := StorageKey(id)

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("reload cart %q: %w", key, err)
	}
	if !ok {
		s.active[scope] = nil
		return nil
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		logx.Error(err, "Discarding malformed cart envelope", "key", key)
		s.active[scope] = nil
		return nil
	}

	age := s.now().Sub(time.UnixMilli(env.SavedAt))
	if age >= Validity {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("purge expired cart %q: %w", key, err)
		}
		s.active[scope] = nil
		return nil
	}

	s.active[scope] = env.Items
	return nil
}

// Release drops the materialized cart for the identity without touching
// storage. Called when a session ends so a later sign-in reloads fresh state.
func (s *Store) Release(id identity.Identity) {
	s.mu.Lock()
	delete(s.active, identity.ScopeKey(id))
	s.mu.Unlock()
}

// Lines returns a copy of the identity's active cart, materializing it from
// storage on first contact.
func (s *Store) Lines(ctx context.Context, id identity.Identity) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx, id); err != nil {
		return nil, err
	}

	lines := s.active[identity.ScopeKey(id)]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

// Add appends the product as a new line with quantity one, or increments the
// existing line's quantity when the product is already in the cart.
func (s *Store) Add(ctx context.Context, id identity.Identity, item Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx, id); err != nil {
		return err
	}

	scope := identity.ScopeKey(id)
	lines := s.active[scope]

	found := false
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		lines = append(lines, item)
	}

	s.active[scope] = lines
	return s.persistLocked(ctx, id)
}

// Remove deletes the matching line. A product that is not in the cart is a
// silent no-op.
func (s *Store) Remove(ctx context.Context, id identity.Identity, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx, id); err != nil {
		return err
	}

	scope := identity.ScopeKey(id)
	lines := s.active[scope]

	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}

	if len(kept) == 0 {
		kept = nil
	}
	s.active[scope] = kept
	return s.persistLocked(ctx, id)
}

// UpdateQuantity applies the delta to the matching line, clamping at one.
// Removal is an explicit separate operation; decrementing never drops a line.
// A product that is not in the cart is a silent no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id identity.Identity, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx, id); err != nil {
		return err
	}

	scope := identity.ScopeKey(id)
	lines := s.active[scope]

	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = max(1, lines[i].Quantity+delta)
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	s.active[scope] = lines
	return s.persistLocked(ctx, id)
}

// Checkout clears the cart and deletes the persisted envelope, returning the
// subtotal captured at this moment. Guests receive ErrSignInRequired and the
// cart is left untouched.
func (s *Store) Checkout(ctx context.Context, id identity.Identity) (float64, error) {
	if id.IsGuest() {
		return 0, ErrSignInRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(ctx, id); err != nil {
		return 0, err
	}

	scope := identity.ScopeKey(id)
	subtotal := Subtotal(s.active[scope])

	s.active[scope] = nil
	if err := s.kv.Delete(ctx, StorageKey(id)); err != nil {
		return 0, fmt.Errorf("clear cart %q: %w", StorageKey(id), err)
	}

	return subtotal, nil
}

// Subtotal sums price times quantity over the given lines.
func Subtotal(lines []Line) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// ensureLocked lazily materializes a scope that has not been loaded yet
// (the first request from a guest, or a server restart mid-session).
func (s *Store) ensureLocked(ctx context.Context, id identity.Identity) error {
	if _, ok := s.active[identity.ScopeKey(id)]; ok {
		return nil
	}
	return s.reloadLocked(ctx, id)
}

// persistLocked syncs storage to the active cart: a non-empty cart is written
// with a fresh timestamp, an empty cart deletes the stored envelope. The
// delete keeps the two "cart becomes empty" paths (removal and checkout)
// consistent.
func (s *Store) persistLocked(ctx context.Context, id identity.Identity) error {
	key := StorageKey(id)
	lines := s.active[identity.ScopeKey(id)]

	if len(lines) == 0 {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete empty cart %q: %w", key, err)
		}
		return nil
	}

	payload, err := json.Marshal(Envelope{
		Items:   lines,
		SavedAt: s.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encode cart %q: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("save cart %q: %w", key, err)
	}
	return nil
}
