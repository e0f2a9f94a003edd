// Package cart is the guest shopping cart: line items keyed by (product,
// size), stock-checked without a server round-trip, persisted after every
// change.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/core/storage"
	entity "storefront.GO/model/entity"
)

const msgInsufficientStock = "Insufficient stock available"

type Store struct {
	mu    sync.Mutex
	state State

	kv       storage.KeyValue
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time

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

// WithClock overrides the source of AddedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty cart persisted to kv. Call Initialize to load the
// saved items.
func NewStore(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		state:    derive(nil),
		kv:       kv,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the state with the persisted items. Missing or
// unreadable data leaves the cart empty.
func (s *Store) Initialize(ctx context.Context) {
	var items []entity.CartLineItem
	if err := storage.Load(ctx, s.kv, storage.KeyGuestCart, &items); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("guest cart not loaded, starting empty", zap.Error(err))
		}
		items = nil
	}
	s.mu.Lock()
	s.state = Reduce(s.state, LoadCart{Items: items})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snapshot)
}

// AddToCart adds quantity of the product variant. The stock check compares
// only the requested quantity with the available stock, not the quantity
// already in the cart. It reports whether the item was added.
func (s *Store) AddToCart(ctx context.Context, product entity.Product, variant entity.ProductVariant, quantity int) bool {
	if quantity < 1 {
		return false
	}
	// TODO: decide with the product owner whether the check should include
	// the quantity already in the cart; today 2+2 against stock 3 is accepted.
	if entity.AvailableStock(product, variant) < quantity {
		notify.Error(s.notifier, msgInsufficientStock)
		return false
	}
	s.commit(ctx, AddItem{Product: product, Variant: variant, Quantity: quantity, At: s.now()})
	notify.Success(s.notifier, product.Name+" added to cart")
	return true
}

// UpdateCartItem sets the quantity of line id. Quantities below 1 are ignored;
// use RemoveFromCart instead.
func (s *Store) UpdateCartItem(ctx context.Context, id string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	s.mu.Lock()
	i := indexOf(s.state.Items, id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	item := s.state.Items[i]
	if entity.AvailableStock(item.Product, item.Variant) < quantity {
		s.mu.Unlock()
		notify.Error(s.notifier, msgInsufficientStock)
		return false
	}
	snapshot := s.applyLocked(ctx, UpdateItem{ID: id, Quantity: quantity})
	s.mu.Unlock()
	s.publish(snapshot)
	return true
}

// RemoveFromCart deletes line id; an unknown id leaves the items unchanged.
func (s *Store) RemoveFromCart(ctx context.Context, id string) {
	s.commit(ctx, RemoveItem{ID: id})
	notify.Success(s.notifier, "Item removed from cart")
}

func (s *Store) ClearCart(ctx context.Context) {
	s.commit(ctx, ClearCart{})
	notify.Success(s.notifier, "Cart cleared")
}

// RemoveOrdered removes the ordered quantities and reports "Cart cleared" when
// nothing is left.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []entity.CartLineItem) {
	s.mu.Lock()
	snapshot := s.applyLocked(ctx, RemoveOrdered{Items: ordered})
	s.mu.Unlock()
	s.publish(snapshot)
	if len(snapshot.Items) == 0 {
		notify.Success(s.notifier, "Cart cleared")
	}
}

func (s *Store) GetCartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems
}

func (s *Store) GetCartTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalAmount
}

// Items returns a copy of the line items.
func (s *Store) Items() []entity.CartLineItem {
	return s.State().Items
}

// State returns a copy of the cart state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive the state after every committed change.
// The returned func unregisters it.
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

// commit reduces, persists and publishes one action.
func (s *Store) commit(ctx context.Context, a Action) {
	s.mu.Lock()
	snapshot := s.applyLocked(ctx, a)
	s.mu.Unlock()
	s.publish(snapshot)
}

// applyLocked persists the reduced state. Persistence failures are logged; the
// in-memory state stays authoritative.
func (s *Store) applyLocked(ctx context.Context, a Action) State {
	s.state = Reduce(s.state, a)
	if err := storage.Save(ctx, s.kv, storage.KeyGuestCart, s.state.Items); err != nil {
		s.logger.Error("persist guest cart", zap.Error(err))
	}
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	items := make([]entity.CartLineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items, TotalItems: s.state.TotalItems, TotalAmount: s.state.TotalAmount}
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
