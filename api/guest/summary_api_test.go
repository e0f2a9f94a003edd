package guest

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"storefront.GO/api/apitest"
	cartApi "storefront.GO/api/cart"
	wishlistApi "storefront.GO/api/wishlist"
)

func TestSummaryAPI(t *testing.T) {
	e := apitest.NewServer(apitest.NewDeps(t, ""), cartApi.RegisterCartRoutes, wishlistApi.RegisterWishlistRoutes, RegisterSummaryRoutes)
	suit := apitest.Product("p1", "Lawn Suit", 3000, map[string]int{"M": 5, "L": 5})
	apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": suit, "size": "M", "quantity": 2})
	apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": suit, "size": "L", "quantity": 1})
	apitest.Do(t, e, http.MethodPost, "/api/wishlist/items", echo.Map{"product": suit})

	_, resp := apitest.Do(t, e, http.MethodGet, "/api/guest/summary", nil)
	summary := resp["summary"].(map[string]interface{})
	assert.Equal(t, apitest.GuestID, summary["guestId"])
	assert.EqualValues(t, 3, summary["cartCount"])
	assert.EqualValues(t, 9000, summary["cartTotal"])
	assert.Equal(t, "Rs 9,000", summary["formattedTotal"])
	assert.EqualValues(t, 1, summary["wishlistCount"])
	assert.EqualValues(t, 200, summary["quote"].(map[string]interface{})["shipping"])
}
