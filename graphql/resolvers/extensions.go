package resolvers

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"storefront.GO/core/money"
	gqlregistry "storefront.GO/graphql/registry"
)

func init() {
	gqlregistry.Register("discountPercentage", discountPercentage)
	gqlregistry.Register("shippingQuote", shippingQuote)
}

// discountPercentage: {"price": 2000, "discountedPrice": 1500} -> {"percentage": 25}
func discountPercentage(_ context.Context, args map[string]interface{}) (interface{}, error) {
	var in struct {
		Price           int  `mapstructure:"price"`
		DiscountedPrice *int `mapstructure:"discountedPrice"`
	}
	if err := weakDecode(args, &in); err != nil {
		return nil, err
	}
	return map[string]int{"percentage": money.DiscountPercentage(in.Price, in.DiscountedPrice)}, nil
}

// shippingQuote: {"subtotal": 12000, "threshold": 15000, "fee": 200}
func shippingQuote(_ context.Context, args map[string]interface{}) (interface{}, error) {
	in := struct {
		Subtotal  int `mapstructure:"subtotal"`
		Threshold int `mapstructure:"threshold"`
		Fee       int `mapstructure:"fee"`
	}{Threshold: 15000, Fee: 200}
	if err := weakDecode(args, &in); err != nil {
		return nil, err
	}
	shipping := money.ShippingCost(in.Subtotal, in.Threshold, in.Fee)
	return map[string]interface{}{
		"shipping":              shipping,
		"total":                 in.Subtotal + shipping,
		"formattedTotal":        money.FormatPrice(in.Subtotal + shipping),
		"amountForFreeShipping": money.AmountForFreeShipping(in.Subtotal, in.Threshold),
	}, nil
}

func weakDecode(in map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: out})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("decode extension args: %w", err)
	}
	return nil
}
