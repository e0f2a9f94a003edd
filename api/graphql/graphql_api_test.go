package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"storefront.GO/api/apitest"
	entity "storefront.GO/model/entity"
)

type gqlResponse struct {
	Data   map[string]interface{}
	Errors []struct{ Message string }
}

func post(t *testing.T, e *echo.Echo, guestID, query string) gqlResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if guestID != "" {
		req.Header.Set("X-Guest-ID", guestID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp gqlResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestGraphQL_CartAndWishlist(t *testing.T) {
	deps := apitest.NewDeps(t, "")
	ctx := context.Background()
	s := deps.Guests.Get(ctx, apitest.GuestID)
	suit := entity.Product{
		ID: "p1", Name: "Lawn Suit", Price: 3000, DiscountedPrice: entity.IntPtr(2400),
		Variants: []entity.ProductVariant{{Size: "M", Stock: entity.IntPtr(4), Price: 2400}},
	}
	s.Cart.AddToCart(ctx, suit, suit.Variants[0], 2)
	s.Wishlist.AddToWishlist(ctx, suit)

	e := echo.New()
	RegisterGraphQLRoutes(e, deps)

	resp := post(t, e, apitest.GuestID, `query {
		cart { totalItems totalAmount formattedTotal shipping items { id size quantity product { name effectivePrice discountPercentage } } }
		wishlist { count items { id sizes } }
		inWishlist(productId: "p1")
		formatPrice(amount: 1500)
	}`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}

	cart := resp.Data["cart"].(map[string]interface{})
	if cart["totalItems"].(float64) != 2 || cart["totalAmount"].(float64) != 4800 {
		t.Errorf("cart totals = %v / %v, want 2 / 4800", cart["totalItems"], cart["totalAmount"])
	}
	if cart["formattedTotal"] != "Rs 4,800" {
		t.Errorf("formattedTotal = %v, want Rs 4,800", cart["formattedTotal"])
	}
	if cart["shipping"].(float64) != 200 {
		t.Errorf("shipping = %v, want 200", cart["shipping"])
	}
	item := cart["items"].([]interface{})[0].(map[string]interface{})
	if item["id"] != "p1-M" {
		t.Errorf("item id = %v, want p1-M", item["id"])
	}
	product := item["product"].(map[string]interface{})
	if product["discountPercentage"].(float64) != 20 {
		t.Errorf("discountPercentage = %v, want 20", product["discountPercentage"])
	}
	if resp.Data["inWishlist"] != true {
		t.Errorf("inWishlist = %v, want true", resp.Data["inWishlist"])
	}
	if resp.Data["formatPrice"] != "Rs 1,500" {
		t.Errorf("formatPrice = %v, want Rs 1,500", resp.Data["formatPrice"])
	}
	wishlist := resp.Data["wishlist"].(map[string]interface{})
	if wishlist["count"].(float64) != 1 {
		t.Errorf("wishlist count = %v, want 1", wishlist["count"])
	}
}

func TestGraphQL_RequiresGuest(t *testing.T) {
	e := echo.New()
	RegisterGraphQLRoutes(e, apitest.NewDeps(t, ""))

	resp := post(t, e, "", `query { cart { totalItems } }`)
	if len(resp.Errors) == 0 {
		t.Fatal("want error without guest id")
	}
	resp = post(t, e, "", `query { formatPrice(amount: 250000) }`)
	if len(resp.Errors) > 0 || resp.Data["formatPrice"] != "Rs 250,000" {
		t.Errorf("formatPrice = %v (errors %v), want Rs 250,000", resp.Data["formatPrice"], resp.Errors)
	}
}

func TestGraphQL_Extension(t *testing.T) {
	e := echo.New()
	RegisterGraphQLRoutes(e, apitest.NewDeps(t, ""))

	resp := post(t, e, "", `query { _extension(name: "discountPercentage", args: "{\"price\":2000,\"discountedPrice\":1500}") }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	if resp.Data["_extension"] != `{"percentage":25}` {
		t.Errorf("_extension = %v", resp.Data["_extension"])
	}
}
