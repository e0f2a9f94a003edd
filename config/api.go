package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Shopper-facing routes are public; guests are identified by X-Guest-ID.
	return []string{
		"/api/cart", "/api/cart/items", "/api/cart/items/:id",
		"/api/wishlist", "/api/wishlist/items", "/api/wishlist/items/:id",
		"/api/guest/summary", "/api/checkout", "/api/checkout/quote",
		"/api/realtime/events",
		"/graphql",
	}
}
