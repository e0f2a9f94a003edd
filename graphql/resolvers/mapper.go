package resolvers

import (
	"math"
	"time"

	gql "github.com/graph-gophers/graphql-go"

	"storefront.GO/core/money"
	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/service/cart"
	entity "storefront.GO/model/entity"
)

// clamp32 saturates v to the GraphQL Int range. The formatted fields carry the
// exact amount.
func clamp32(v int) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := clamp32(*v)
	return &n
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapProduct(p entity.Product) *gqlmodels.Product {
	sizes := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		sizes = append(sizes, v.Size)
	}
	if len(sizes) == 0 {
		sizes = append(sizes, entity.OneSize)
	}
	return &gqlmodels.Product{
		ID:                 gql.ID(p.ID),
		Name:               p.Name,
		Slug:               strPtr(p.Slug),
		Price:              clamp32(p.Price),
		DiscountedPrice:    int32Ptr(p.DiscountedPrice),
		EffectivePrice:     clamp32(p.EffectivePrice()),
		DiscountPercentage: clamp32(p.DiscountPercentage()),
		FormattedPrice:     money.FormatPrice(p.EffectivePrice()),
		Stock:              int32Ptr(p.Stock),
		Image:              strPtr(p.ImageURL()),
		Sizes:              sizes,
	}
}

func mapCart(st cart.State, threshold, fee int) *gqlmodels.Cart {
	items := make([]*gqlmodels.CartItem, 0, len(st.Items))
	for _, it := range st.Items {
		items = append(items, &gqlmodels.CartItem{
			ID:                 gql.ID(it.ID),
			Product:            mapProduct(it.Product),
			Size:               it.Variant.Size,
			Quantity:           clamp32(it.Quantity),
			UnitPrice:          clamp32(it.UnitPrice()),
			LineTotal:          clamp32(it.LineTotal()),
			FormattedLineTotal: money.FormatPrice(it.LineTotal()),
			AddedAt:            it.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return &gqlmodels.Cart{
		Items:                 items,
		TotalItems:            clamp32(st.TotalItems),
		TotalAmount:           clamp32(st.TotalAmount),
		FormattedTotal:        money.FormatPrice(st.TotalAmount),
		Shipping:              clamp32(money.ShippingCost(st.TotalAmount, threshold, fee)),
		AmountForFreeShipping: clamp32(money.AmountForFreeShipping(st.TotalAmount, threshold)),
	}
}

func mapWishlist(products []entity.Product) *gqlmodels.Wishlist {
	items := make([]*gqlmodels.Product, 0, len(products))
	for _, p := range products {
		items = append(items, mapProduct(p))
	}
	return &gqlmodels.Wishlist{Items: items, Count: clamp32(len(items))}
}
