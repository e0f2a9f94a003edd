package models

import gql "github.com/graph-gophers/graphql-go"

// --- Product ---

type Product struct {
	ID                 gql.ID
	Name               string
	Slug               *string
	Price              int32
	DiscountedPrice    *int32
	EffectivePrice     int32
	DiscountPercentage int32
	FormattedPrice     string
	Stock              *int32
	Image              *string
	Sizes              []string
}

// --- Cart ---

type CartItem struct {
	ID                 gql.ID
	Product            *Product
	Size               string
	Quantity           int32
	UnitPrice          int32
	LineTotal          int32
	FormattedLineTotal string
	AddedAt            string
}

type Cart struct {
	Items                 []*CartItem
	TotalItems            int32
	TotalAmount           int32
	FormattedTotal        string
	Shipping              int32
	AmountForFreeShipping int32
}

// --- Wishlist ---

type Wishlist struct {
	Items []*Product
	Count int32
}
