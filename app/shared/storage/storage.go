package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/reactable-club/discord-menu-bot/observability/attr"
)

// ErrNotFound is returned when a registry or store lookup misses.
var ErrNotFound = errors.New("item not found or expired")

// RegistryInterface defines the behavior for the live-menu registry using
// generics [T].
type RegistryInterface[T any] interface {
	Set(ctx context.Context, id string, value T) error
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string)
	Len() int
}

// registryItem holds the value and its expiration timestamp.
type registryItem[T any] struct {
	value      T
	expiryTime int64 // UnixNano for cheap comparison
}

// Registry keeps live menus in memory. Entries are re-armed on every Set, so
// menus that keep receiving interactions never expire.
type Registry[T any] struct {
	items map[string]registryItem[T]
	mu    sync.RWMutex
	ttl   time.Duration
}

// DefaultRegistryTTL keeps idle menus live for a week before the janitor
// reclaims them; persisted state survives and can be restored on demand.
const DefaultRegistryTTL = 7 * 24 * time.Hour

// NewRegistry creates a Registry and starts its janitor goroutine, which
// stops when ctx is cancelled.
func NewRegistry[T any](ctx context.Context, ttl time.Duration) RegistryInterface[T] {
	r := &Registry[T]{
		items: make(map[string]registryItem[T]),
		ttl:   ttl,
	}
	go r.startJanitor(ctx, time.Minute)
	return r
}

func (r *Registry[T]) Set(ctx context.Context, id string, value T) error {
	if id == "" {
		return errors.New("registry id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[id] = registryItem[T]{
		value:      value,
		expiryTime: time.Now().Add(r.ttl).UnixNano(),
	}

	slog.DebugContext(ctx, "Registry: stored item", attr.String("id", id))
	return nil
}

func (r *Registry[T]) Get(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists || time.Now().UnixNano() > item.expiryTime {
		var zero T
		return zero, ErrNotFound
	}

	return item.value, nil
}

func (r *Registry[T]) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// Len returns the number of stored items, expired or not.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// startJanitor removes expired entries at a fixed interval.
func (r *Registry[T]) startJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Registry janitor stopping")
			return
		case <-ticker.C:
			r.performCleanup()
		}
	}
}

func (r *Registry[T]) performCleanup() {
	now := time.Now().UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	initialSize := len(r.items)
	for id, item := range r.items {
		if now > item.expiryTime {
			delete(r.items, id)
		}
	}

	removed := initialSize - len(r.items)
	if removed > 0 {
		slog.Debug("Registry: cleanup complete",
			attr.Int("removed_count", removed),
			attr.Int("remaining_count", len(r.items)))
	}
}
