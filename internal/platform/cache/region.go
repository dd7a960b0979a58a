package cache

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/platform/resilience"
)

type Policy string

const (
	// PolicyTTL expires entries after a fixed lifetime and evicts the least
	// recently used entry at capacity.
	PolicyTTL Policy = "TTLCache"
	// PolicyLRU never expires entries and evicts the least recently used one at capacity.
	PolicyLRU Policy = "LRUCache"
)

type Config struct {
	Name     string
	Policy   Policy
	Capacity int
	TTL      time.Duration
	Disabled bool
}

type entry struct {
	key       string
	value     any
	expiresAt time.Time
	used      atomic.Uint64
}

// Region is one bounded cache area. Protected keys survive capacity
// eviction and protective clears but still expire under PolicyTTL.
// Reads share the lock; recency is an atomic stamp per entry.
type Region struct {
	name     string
	policy   Policy
	capacity int
	ttl      time.Duration
	disabled bool

	mu        sync.RWMutex
	entries   map[string]*entry
	protected map[string]struct{}
	gen       uint64
	clock     atomic.Uint64
	flight    resilience.SingleFlight
	now       func() time.Time
}

func NewRegion(cfg Config) *Region {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyLRU
	}

	return &Region{
		name:      cfg.Name,
		policy:    cfg.Policy,
		capacity:  cfg.Capacity,
		ttl:       cfg.TTL,
		disabled:  cfg.Disabled,
		entries:   make(map[string]*entry),
		protected: make(map[string]struct{}),
		now:       time.Now,
	}
}

func (r *Region) Name() string {
	return r.name
}

// Get returns a live entry and marks it as most recently used. Expired
// entries read as misses and are dropped on the next write.
func (r *Region) Get(_ context.Context, key string) (any, bool) {
	if r.disabled || key == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok || r.expired(e) {
		return nil, false
	}
	e.used.Store(r.clock.Add(1))
	return e.value, true
}

// Peek reads an entry without touching its recency.
func (r *Region) Peek(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok || r.expired(e) {
		return nil, false
	}
	return e.value, true
}

func (r *Region) Set(_ context.Context, key string, value any) {
	if r.disabled || key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.set(key, value)
}

// SetProtected stores value and marks key as protected in one step.
func (r *Region) SetProtected(_ context.Context, key string, value any) {
	if r.disabled || key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.protected[key] = struct{}{}
	r.set(key, value)
}

// Protect marks key as protected whether or not it is currently stored.
func (r *Region) Protect(key string) {
	if key == "" {
		return
	}
	r.mu.Lock()
	r.protected[key] = struct{}{}
	r.mu.Unlock()
}

// Delete drops key. Loads running in the region when Delete returns still
// answer their callers but no longer store their result.
func (r *Region) Delete(_ context.Context, key string) {
	r.mu.Lock()
	delete(r.entries, key)
	r.gen++
	r.mu.Unlock()
	r.flight.Forget(r.flightKey(key))
}

// Clear removes every entry, keeping protected ones when protect is set.
// It returns the number of removed entries. Like Delete, it stops running
// loads from storing their result.
func (r *Region) Clear(protect bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	removed := 0
	for key := range r.entries {
		if _, ok := r.protected[key]; protect && ok {
			continue
		}
		delete(r.entries, key)
		r.flight.Forget(r.flightKey(key))
		removed++
	}
	return removed
}

// GetOrLoad returns the cached value for key or runs loader once across
// concurrent callers. The loader keeps running when the caller goes away.
func (r *Region) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if r.disabled || key == "" {
		return loader(ctx)
	}

	if value, ok := r.Get(ctx, key); ok {
		return value, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := r.flight.Do(r.flightKey(key), func() (any, error) {
		if cached, ok := r.Get(loadCtx, key); ok {
			return cached, nil
		}

		r.mu.RLock()
		gen := r.gen
		r.mu.RUnlock()

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}

		r.mu.Lock()
		if r.gen == gen {
			r.set(key, loaded)
		}
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

type Stats struct {
	Type          string   `json:"type"`
	MaxSize       int      `json:"maxsize"`
	CurrentSize   int      `json:"current_size"`
	TTLSeconds    *int     `json:"ttl_seconds,omitempty"`
	Keys          []string `json:"keys"`
	ProtectedKeys []string `json:"protected_keys"`
	Enabled       bool     `json:"enabled"`
}

func (r *Region) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	live := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !r.expired(e) {
			live = append(live, e)
		}
	}
	slices.SortFunc(live, func(a, b *entry) int {
		return cmp.Compare(b.used.Load(), a.used.Load())
	})
	keys := make([]string, len(live))
	for i, e := range live {
		keys[i] = e.key
	}
	protected := make([]string, 0, len(r.protected))
	for key := range r.protected {
		protected = append(protected, key)
	}
	slices.Sort(protected)

	stats := Stats{
		Type:          string(r.policy),
		MaxSize:       r.capacity,
		CurrentSize:   len(keys),
		Keys:          keys,
		ProtectedKeys: protected,
		Enabled:       !r.disabled,
	}
	if r.policy == PolicyTTL {
		seconds := int(r.ttl / time.Second)
		stats.TTLSeconds = &seconds
	}
	return stats
}

func (r *Region) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Region) set(key string, value any) {
	expiresAt := time.Time{}
	if r.policy == PolicyTTL && r.ttl > 0 {
		expiresAt = r.now().Add(r.ttl)
	}

	if e, ok := r.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		e.used.Store(r.clock.Add(1))
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	e.used.Store(r.clock.Add(1))
	r.entries[key] = e
	r.evict()
}

// evict drops expired entries first, then the least recently used
// unprotected ones until the region fits its capacity.
func (r *Region) evict() {
	if len(r.entries) <= r.capacity {
		return
	}
	for key, e := range r.entries {
		if r.expired(e) {
			delete(r.entries, key)
		}
	}
	for len(r.entries) > r.capacity {
		var oldest *entry
		for key, e := range r.entries {
			if _, ok := r.protected[key]; ok {
				continue
			}
			if oldest == nil || e.used.Load() < oldest.used.Load() {
				oldest = e
			}
		}
		if oldest == nil {
			return
		}
		delete(r.entries, oldest.key)
	}
}

func (r *Region) flightKey(key string) string {
	return r.name + "\x00" + key
}

func (r *Region) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(r.now())
}

// Sized is implemented by cached values that can report how many items they hold.
type Sized interface {
	Len() int
}
