package entity

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"storefront.GO/core/money"
)

// OneSize is the implicit variant size of a product without variants.
const OneSize = "One Size"

// ProductVariant is one purchasable size of a product. A nil Stock means the
// variant does not track stock and the product stock applies.
type ProductVariant struct {
	Size  string `json:"size"`
	Stock *int   `json:"stock,omitempty"`
	Price int    `json:"price"`
	SKU   string `json:"sku"`
}

type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Product is the backend catalog record as far as the cart and wishlist need
// it. It is treated as an immutable snapshot once fetched.
type Product struct {
	ID              string           `json:"_id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug,omitempty"`
	Price           int              `json:"price"`
	DiscountedPrice *int             `json:"discountedPrice,omitempty"`
	Stock           *int             `json:"stock,omitempty"`
	Variants        []ProductVariant `json:"variants,omitempty"`
	Images          []ProductImage   `json:"images,omitempty"`
}

// EffectivePrice is the unit price actually charged for the product.
func (p Product) EffectivePrice() int {
	return money.EffectivePrice(p.Price, p.DiscountedPrice)
}

func (p Product) DiscountPercentage() int {
	return money.DiscountPercentage(p.Price, p.DiscountedPrice)
}

// DefaultVariant is the implicit single variant of a product without variants.
func (p Product) DefaultVariant() ProductVariant {
	return ProductVariant{
		Size:  OneSize,
		Stock: p.Stock,
		Price: p.EffectivePrice(),
	}
}

// VariantBySize finds the variant for size. Products without variants only
// offer OneSize (an empty size is accepted as OneSize).
func (p Product) VariantBySize(size string) (ProductVariant, bool) {
	if len(p.Variants) == 0 {
		if size == "" || size == OneSize {
			return p.DefaultVariant(), true
		}
		return ProductVariant{}, false
	}
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// ImageURL returns the first image URL or "".
func (p Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// AvailableStock is the stock a cart line can draw on: the variant stock when
// tracked, else the product stock, else 0.
func AvailableStock(p Product, v ProductVariant) int {
	if v.Stock != nil {
		return *v.Stock
	}
	if p.Stock != nil {
		return *p.Stock
	}
	return 0
}

// ErrInvalidProduct wraps every product validation failure.
var ErrInvalidProduct = errors.New("invalid product")

// Validate checks the fields the cart and wishlist rely on.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: _id is required", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	for i, v := range p.Variants {
		if v.Size == "" {
			return fmt.Errorf("%w: variants[%d].size is required", ErrInvalidProduct, i)
		}
		if v.Stock != nil && *v.Stock < 0 {
			return fmt.Errorf("%w: variants[%d].stock must not be negative", ErrInvalidProduct, i)
		}
	}
	return nil
}

// DecodeProduct coerces loosely-typed JSON (as decoded into a map) into a
// Product and validates it. Numeric fields may arrive as strings or floats.
func DecodeProduct(raw map[string]interface{}) (Product, error) {
	var p Product
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Product{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// IntPtr is a helper for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
