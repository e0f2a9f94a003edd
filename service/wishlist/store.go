// Package wishlist keeps the products a shopper marked for later, unique by
// product id and persisted after every change.
package wishlist

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/core/storage"
	entity "storefront.GO/model/entity"
)

type Store struct {
	mu    sync.Mutex
	state State

	kv       storage.KeyValue
	notifier notify.Notifier
	logger   *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

type Option func(*Store)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		state:    State{Items: []entity.Product{}},
		kv:       kv,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted wishlist; missing or unreadable data leaves
// it empty.
func (s *Store) Initialize(ctx context.Context) {
	var items []entity.Product
	if err := storage.Load(ctx, s.kv, storage.KeyWishlist, &items); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("wishlist not loaded, starting empty", zap.Error(err))
		}
		items = nil
	}
	s.mu.Lock()
	s.state = Reduce(s.state, LoadWishlist{Items: items})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snapshot)
}

// AddToWishlist is idempotent by product id.
func (s *Store) AddToWishlist(ctx context.Context, product entity.Product) {
	s.mu.Lock()
	if indexOf(s.state.Items, product.ID) >= 0 {
		s.mu.Unlock()
		notify.Success(s.notifier, product.Name+" added to wishlist")
		return
	}
	snapshot := s.applyLocked(ctx, AddItem{Product: product})
	s.mu.Unlock()
	s.publish(snapshot)
	notify.Success(s.notifier, product.Name+" added to wishlist")
}

// RemoveFromWishlist drops productID; the notification names the product
// removed and is skipped when it was not present.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	s.mu.Lock()
	i := indexOf(s.state.Items, productID)
	var name string
	if i >= 0 {
		name = s.state.Items[i].Name
	}
	snapshot := s.applyLocked(ctx, RemoveItem{ID: productID})
	s.mu.Unlock()
	s.publish(snapshot)
	if i >= 0 {
		notify.Success(s.notifier, name+" removed from wishlist")
	}
}

func (s *Store) ClearWishlist(ctx context.Context) {
	s.mu.Lock()
	snapshot := s.applyLocked(ctx, ClearWishlist{})
	s.mu.Unlock()
	s.publish(snapshot)
	notify.Success(s.notifier, "Wishlist cleared")
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.state.Items, productID) >= 0
}

func (s *Store) GetWishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Items)
}

// Items returns a copy of the wishlist products.
func (s *Store) Items() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Items
}

// Subscribe registers fn to receive the state after every committed change.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) applyLocked(ctx context.Context, a Action) State {
	s.state = Reduce(s.state, a)
	if err := storage.Save(ctx, s.kv, storage.KeyWishlist, s.state.Items); err != nil {
		s.logger.Error("persist wishlist", zap.Error(err))
	}
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	items := make([]entity.Product, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items}
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}
