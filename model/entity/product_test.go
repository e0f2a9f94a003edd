package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProduct_CoercesLooseTypes(t *testing.T) {
	raw := map[string]interface{}{
		"_id":             "p1",
		"name":            "Lawn Suit",
		"slug":            "lawn-suit",
		"price":           "3500",
		"discountedPrice": float64(2900),
		"variants": []interface{}{
			map[string]interface{}{"size": "M", "stock": "4", "price": 2900, "sku": "LS-M"},
			map[string]interface{}{"size": "L", "price": 2900, "sku": "LS-L"},
		},
		"images":   []interface{}{map[string]interface{}{"url": "https://cdn/x.jpg"}},
		"category": "ignored",
	}

	p, err := DecodeProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 3500, p.Price)
	require.NotNil(t, p.DiscountedPrice)
	assert.Equal(t, 2900, *p.DiscountedPrice)
	require.Len(t, p.Variants, 2)
	require.NotNil(t, p.Variants[0].Stock)
	assert.Equal(t, 4, *p.Variants[0].Stock)
	assert.Nil(t, p.Variants[1].Stock)
	assert.Equal(t, "https://cdn/x.jpg", p.ImageURL())
}

func TestDecodeProduct_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"missing id", map[string]interface{}{"name": "x", "price": 1}},
		{"missing name", map[string]interface{}{"_id": "p", "price": 1}},
		{"negative price", map[string]interface{}{"_id": "p", "name": "x", "price": -1}},
		{"non numeric price", map[string]interface{}{"_id": "p", "name": "x", "price": "abc"}},
		{"negative stock", map[string]interface{}{"_id": "p", "name": "x", "price": 1, "stock": -2}},
		{"variant without size", map[string]interface{}{
			"_id": "p", "name": "x", "price": 1,
			"variants": []interface{}{map[string]interface{}{"stock": 1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProduct(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProduct), "err = %v", err)
		})
	}
}

func TestProduct_VariantBySize(t *testing.T) {
	p := Product{ID: "p", Name: "x", Price: 1000, Stock: IntPtr(3)}
	v, ok := p.VariantBySize("")
	require.True(t, ok)
	assert.Equal(t, OneSize, v.Size)
	assert.Equal(t, 3, AvailableStock(p, v))

	_, ok = p.VariantBySize("M")
	assert.False(t, ok)

	p.Variants = []ProductVariant{{Size: "M", Stock: IntPtr(1)}}
	v, ok = p.VariantBySize("M")
	require.True(t, ok)
	assert.Equal(t, 1, AvailableStock(p, v))
}

func TestAvailableStock_Fallbacks(t *testing.T) {
	assert.Equal(t, 5, AvailableStock(Product{Stock: IntPtr(5)}, ProductVariant{Size: "M"}))
	assert.Equal(t, 0, AvailableStock(Product{}, ProductVariant{Size: "M"}))
	assert.Equal(t, 0, AvailableStock(Product{Stock: IntPtr(5)}, ProductVariant{Size: "M", Stock: IntPtr(0)}))
}

func TestLineItemID(t *testing.T) {
	assert.Equal(t, "p1-M", LineItemID("p1", "M"))
	item := CartLineItem{Product: Product{Price: 1000, DiscountedPrice: IntPtr(800)}, Quantity: 3}
	assert.Equal(t, 2400, item.LineTotal())
}
