package entity

import "time"

// CartLineItem is one (product, size) entry of a guest cart.
type CartLineItem struct {
	ID       string         `json:"id"`
	Product  Product        `json:"product"`
	Variant  ProductVariant `json:"variant"`
	Quantity int            `json:"quantity"`
	AddedAt  time.Time      `json:"addedAt"`
}

// LineItemID derives the composite key of a cart line.
func LineItemID(productID, size string) string {
	return productID + "-" + size
}

// UnitPrice is the effective price of the embedded product snapshot.
func (i CartLineItem) UnitPrice() int {
	return i.Product.EffectivePrice()
}

func (i CartLineItem) LineTotal() int {
	return i.UnitPrice() * i.Quantity
}
