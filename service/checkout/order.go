package checkout

import (
	"storefront.GO/core/money"
	entity "storefront.GO/model/entity"
)

// DefaultColor is sent for every line; the catalog has no color variants.
const DefaultColor = "Default"

type OrderVariant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
}

type OrderItem struct {
	ProductID string       `json:"productId"`
	Variant   OrderVariant `json:"variant"`
	Quantity  int          `json:"quantity"`
}

// Order is the body of POST /guest-orders.
type Order struct {
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Items           []OrderItem     `json:"items"`
}

// BuildOrder maps cart lines to order items.
func BuildOrder(details CustomerDetails, lines []entity.CartLineItem) Order {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		size := l.Variant.Size
		if size == "" {
			size = entity.OneSize
		}
		items = append(items, OrderItem{
			ProductID: l.Product.ID,
			Variant:   OrderVariant{Size: size, Color: DefaultColor},
			Quantity:  l.Quantity,
		})
	}
	return Order{CustomerDetails: details.Normalize(), Items: items}
}

// Totals is the price breakdown shown before and after placing an order.
type Totals struct {
	Subtotal int `json:"subtotal"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
	// AmountForFreeShipping is 0 once shipping is free.
	AmountForFreeShipping int `json:"amountForFreeShipping"`
}

func ComputeTotals(subtotal, threshold, fee int) Totals {
	shipping := money.ShippingCost(subtotal, threshold, fee)
	return Totals{
		Subtotal:              subtotal,
		Shipping:              shipping,
		Total:                 subtotal + shipping,
		AmountForFreeShipping: money.AmountForFreeShipping(subtotal, threshold),
	}
}
