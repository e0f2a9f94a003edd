// Package money holds the pricing rules shared by cart totals, line views and
// product display. Amounts are whole Rupees.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol prefixes every formatted amount.
const Symbol = "Rs"

var printer = message.NewPrinter(language.English)

// EffectivePrice returns discounted when it is set, positive and strictly
// below price; otherwise price.
func EffectivePrice(price int, discounted *int) int {
	if HasDiscount(price, discounted) {
		return *discounted
	}
	return price
}

// HasDiscount reports whether discounted is a valid markdown of price.
func HasDiscount(price int, discounted *int) bool {
	return discounted != nil && *discounted > 0 && *discounted < price
}

// DiscountPercentage returns the rounded markdown percentage, or 0 when the
// discount is not valid.
func DiscountPercentage(price int, discounted *int) int {
	if !HasDiscount(price, discounted) {
		return 0
	}
	return int(math.Round(float64(price-*discounted) / float64(price) * 100))
}

// FormatPrice renders amount as "Rs 1,500".
func FormatPrice(amount int) string {
	return Symbol + " " + FormatPriceNumber(amount)
}

// FormatPriceNumber renders amount with digit grouping and no decimals.
func FormatPriceNumber(amount int) string {
	return printer.Sprintf("%d", amount)
}

// ShippingCost is free at or above threshold, fee otherwise.
func ShippingCost(subtotal, threshold, fee int) int {
	if subtotal >= threshold {
		return 0
	}
	return fee
}

// AmountForFreeShipping is how much more the shopper must spend to reach threshold.
func AmountForFreeShipping(subtotal, threshold int) int {
	if subtotal >= threshold {
		return 0
	}
	return threshold - subtotal
}
