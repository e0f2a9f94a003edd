// Package storage bridges the in-memory cart and wishlist state and a durable
// key-value backend. Collections are stored as JSON text and overwritten in
// full on every change.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed keys inside a guest namespace.
const (
	KeyGuestCart   = "guestCart"
	KeyWishlist    = "wishlist"
	KeyAccessToken = "accessToken"
)

// AdminNamespace holds the back-office session, apart from every guest.
const AdminNamespace = "admin"

// ErrNotFound is returned by Load when the key is absent.
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is a durable string key-value store.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Load reads key and decodes its JSON value into dst. Callers treat any error
// as an empty collection.
func Load(ctx context.Context, kv KeyValue, key string, dst interface{}) error {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save encodes v as JSON and overwrites key.
func Save(ctx context.Context, kv KeyValue, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// namespaced prefixes every key, so fixed keys stay fixed per guest.
type namespaced struct {
	kv     KeyValue
	prefix string
}

// Namespace scopes kv under prefix; keys become "<prefix>:<key>".
func Namespace(kv KeyValue, prefix string) KeyValue {
	return &namespaced{kv: kv, prefix: prefix + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
