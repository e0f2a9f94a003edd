package resolvers

import (
	"context"
	"errors"

	"storefront.GO/core/money"
	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	gqlregistry "storefront.GO/graphql/registry"
	"storefront.GO/service/guest"
)

// ErrNoGuest is returned when a query needs a guest and none was sent.
var ErrNoGuest = errors.New("guest id required (X-Guest-ID header or __Guest variable)")

// QueryResolver is the single resolver for all Query fields.
type QueryResolver struct {
	guests    *guest.Registry
	threshold int
	fee       int
}

func NewResolver(guests *guest.Registry, freeShippingThreshold, shippingFee int) *QueryResolver {
	return &QueryResolver{guests: guests, threshold: freeShippingThreshold, fee: shippingFee}
}

func (r *QueryResolver) session(ctx context.Context) (*guest.Session, error) {
	id := graphql.GuestIDFromContext(ctx)
	if id == "" {
		return nil, ErrNoGuest
	}
	return r.guests.Get(ctx, id), nil
}

func (r *QueryResolver) Cart(ctx context.Context) (*gqlmodels.Cart, error) {
	s, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	return mapCart(s.Cart.State(), r.threshold, r.fee), nil
}

func (r *QueryResolver) Wishlist(ctx context.Context) (*gqlmodels.Wishlist, error) {
	s, err := r.session(ctx)
	if err != nil {
		return nil, err
	}
	return mapWishlist(s.Wishlist.Items()), nil
}

func (r *QueryResolver) InWishlist(ctx context.Context, productID string) (bool, error) {
	s, err := r.session(ctx)
	if err != nil {
		return false, err
	}
	return s.Wishlist.IsInWishlist(productID), nil
}

func (r *QueryResolver) FormatPrice(amount int) string {
	return money.FormatPrice(amount)
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	return gqlregistry.Resolve(ctx, name, args)
}
