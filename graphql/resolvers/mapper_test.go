package resolvers

import (
	"math"
	"testing"

	"storefront.GO/service/cart"
	entity "storefront.GO/model/entity"
)

func TestMapCart_ClampsLargeAmounts(t *testing.T) {
	p := entity.Product{ID: "bridal", Name: "Bridal Lehenga", Price: 1_500_000_000, Stock: entity.IntPtr(10)}
	st := cart.Reduce(cart.State{}, cart.AddItem{Product: p, Quantity: 2})

	got := mapCart(st, 15000, 200)
	if got.TotalAmount != math.MaxInt32 {
		t.Errorf("TotalAmount = %d, want %d", got.TotalAmount, int32(math.MaxInt32))
	}
	if got.Items[0].LineTotal != math.MaxInt32 {
		t.Errorf("LineTotal = %d, want %d", got.Items[0].LineTotal, int32(math.MaxInt32))
	}
	if got.Items[0].UnitPrice != 1_500_000_000 {
		t.Errorf("UnitPrice = %d, want 1500000000", got.Items[0].UnitPrice)
	}
	if got.FormattedTotal != "Rs 3,000,000,000" {
		t.Errorf("FormattedTotal = %q, want Rs 3,000,000,000", got.FormattedTotal)
	}
}

func TestClamp32(t *testing.T) {
	cases := map[int]int32{
		0:                 0,
		13500:             13500,
		math.MaxInt32:     math.MaxInt32,
		math.MaxInt32 + 1: math.MaxInt32,
		math.MinInt32 - 1: math.MinInt32,
	}
	for in, want := range cases {
		if got := clamp32(in); got != want {
			t.Errorf("clamp32(%d) = %d, want %d", in, got, want)
		}
	}
}
