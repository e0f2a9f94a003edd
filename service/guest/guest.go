// Package guest hands out the cart and wishlist of each anonymous shopper.
// Every guest gets its own storage namespace, so the fixed guestCart and
// wishlist keys never collide between shoppers.
package guest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/core/storage"
	"storefront.GO/service/cart"
	"storefront.GO/service/wishlist"
)

// Session is the state bound to one guest id.
type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
	// Notifications raised by Cart and Wishlist, drained per request.
	Notifications *notify.Queue

	// guarded by Registry.mu
	lastSeen time.Time
	holds    int
}

const (
	// DefaultIdleTTL is how long an unused session stays in memory.
	DefaultIdleTTL = 30 * time.Minute
	// DefaultMaxSessions caps the sessions kept in memory.
	DefaultMaxSessions = 10000
)

// Registry keeps the sessions of recently active guests in memory. Sessions
// idle for longer than the idle TTL are dropped, and the least recently used
// ones go first once the registry holds more than the maximum. Dropped
// sessions reload from storage on the next Get.
type Registry struct {
	kv          storage.KeyValue
	prefix      string
	logger      *zap.Logger
	clock       func() time.Time
	idleTTL     time.Duration
	maxSessions int

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

type Option func(*Registry)

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.clock = now }
}

// WithIdleTTL sets how long an unused session stays in memory. Zero keeps
// sessions until the maximum is reached.
func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) { r.idleTTL = d }
}

// WithMaxSessions caps the sessions kept in memory. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(r *Registry) { r.maxSessions = n }
}

func NewRegistry(kv storage.KeyValue, prefix string, opts ...Option) *Registry {
	r := &Registry{
		kv:          kv,
		prefix:      prefix,
		logger:      zap.NewNop(),
		idleTTL:     DefaultIdleTTL,
		maxSessions: DefaultMaxSessions,
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for id, loading its stores from storage on first use.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(ctx, id)
}

// Hold is Get for long-lived readers such as event streams. The session is
// not evicted until release is called.
func (r *Registry) Hold(ctx context.Context, id string) (s *Session, release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s = r.getLocked(ctx, id)
	s.holds++
	var once sync.Once
	return s, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			s.holds--
			s.lastSeen = r.now()
		})
	}
}

func (r *Registry) getLocked(ctx context.Context, id string) *Session {
	now := r.now()
	if r.idleTTL > 0 && now.Sub(r.lastSweep) >= r.idleTTL/4 {
		r.evictIdleLocked(now)
		r.lastSweep = now
	}
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s
	}

	kv := storage.Namespace(r.kv, r.prefix+":"+id)
	q := &notify.Queue{}
	logger := r.logger.With(zap.String("guest", id))

	cartOpts := []cart.Option{cart.WithNotifier(q), cart.WithLogger(logger)}
	if r.clock != nil {
		cartOpts = append(cartOpts, cart.WithClock(r.clock))
	}
	s := &Session{
		ID:            id,
		Cart:          cart.NewStore(kv, cartOpts...),
		Wishlist:      wishlist.NewStore(kv, wishlist.WithNotifier(q), wishlist.WithLogger(logger)),
		Notifications: q,
		lastSeen:      now,
	}
	s.Cart.Initialize(ctx)
	s.Wishlist.Initialize(ctx)
	r.sessions[id] = s
	if r.maxSessions > 0 {
		for len(r.sessions) > r.maxSessions && r.evictOldestLocked(id) {
		}
	}
	return s
}

// EvictIdle drops the sessions unused for longer than the idle TTL and
// returns how many were dropped.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictIdleLocked(r.now())
}

func (r *Registry) evictIdleLocked(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	n := 0
	for id, s := range r.sessions {
		if s.holds == 0 && now.Sub(s.lastSeen) >= r.idleTTL {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Debug("evicted idle guest sessions", zap.Int("count", n))
	}
	return n
}

// evictOldestLocked drops the least recently used session other than keep.
// Held sessions are never dropped.
func (r *Registry) evictOldestLocked(keep string) bool {
	var oldest *Session
	for id, s := range r.sessions {
		if id == keep || s.holds > 0 {
			continue
		}
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest == nil {
		return false
	}
	delete(r.sessions, oldest.ID)
	return true
}

// Forget drops the in-memory session for id. Persisted data is kept and
// reloaded by the next Get.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) now() time.Time {
	if r.clock != nil {
		return r.clock()
	}
	return time.Now()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
