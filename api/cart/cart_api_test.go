package cart

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.GO/api"
	"storefront.GO/api/apitest"
	"storefront.GO/config"
	"storefront.GO/core/storage"
)

func newServer(t *testing.T) *echo.Echo {
	return apitest.NewServer(apitest.NewDeps(t, ""), RegisterCartRoutes)
}

func TestCartAPI_AddMergesAndTotals(t *testing.T) {
	e := newServer(t)
	kurta := apitest.Product("p1", "Embroidered Kurta", 4500, map[string]int{"M": 10})

	rec, resp := apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": kurta, "size": "M", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"Embroidered Kurta added to cart"}, apitest.Messages(resp))

	_, resp = apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": kurta, "size": "M", "quantity": 3})
	assert.EqualValues(t, 5, resp["totalItems"])
	assert.EqualValues(t, 22500, resp["totalAmount"])
	assert.Equal(t, "Rs 22,500", resp["formattedTotal"])
	items := resp["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "p1-M", items[0].(map[string]interface{})["id"])

	quote := resp["quote"].(map[string]interface{})
	assert.EqualValues(t, 0, quote["shipping"])
}

func TestCartAPI_RejectsInsufficientStock(t *testing.T) {
	e := newServer(t)
	kurta := apitest.Product("p1", "Embroidered Kurta", 4500, map[string]int{"S": 1})

	rec, resp := apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": kurta, "size": "S", "quantity": 2})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 0, resp["totalItems"])
	assert.Equal(t, []string{"Insufficient stock available"}, apitest.Messages(resp))
}

func TestCartAPI_BadRequests(t *testing.T) {
	e := newServer(t)
	kurta := apitest.Product("p1", "Embroidered Kurta", 4500, map[string]int{"M": 3})

	rec, _ := apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": kurta, "size": "XXL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": echo.Map{"name": "no id"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": kurta, "size": "M", "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAPI_UpdateRemoveClear(t *testing.T) {
	e := newServer(t)
	scarf := apitest.Product("p2", "Silk Scarf", 1500, nil)
	apitest.Do(t, e, http.MethodPost, "/api/cart/items", echo.Map{"product": scarf, "quantity": 1})

	_, resp := apitest.Do(t, e, http.MethodPatch, "/api/cart/items/p2-One%20Size", echo.Map{"quantity": 4})
	assert.EqualValues(t, 4, resp["totalItems"])

	rec, _ := apitest.Do(t, e, http.MethodPatch, "/api/cart/items/p2-One%20Size", echo.Map{"quantity": 11})
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, resp = apitest.Do(t, e, http.MethodPatch, "/api/cart/items/p2-One%20Size", echo.Map{"quantity": 0})
	assert.EqualValues(t, 4, resp["totalItems"])

	rec, _ = apitest.Do(t, e, http.MethodPatch, "/api/cart/items/missing", echo.Map{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, resp = apitest.Do(t, e, http.MethodDelete, "/api/cart/items/p2-One%20Size", nil)
	assert.EqualValues(t, 0, resp["totalItems"])
	assert.Equal(t, []string{"Item removed from cart"}, apitest.Messages(resp))

	_, resp = apitest.Do(t, e, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, []string{"Cart cleared"}, apitest.Messages(resp))
}

func TestCartAPI_IssuesGuestID(t *testing.T) {
	e := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(api.HeaderGuestID))
	assert.NotEqual(t, apitest.GuestID, rec.Header().Get(api.HeaderGuestID))
}

func TestCartAPI_AnonymousTrafficIsBounded(t *testing.T) {
	deps := api.NewDeps(&config.Config{StoragePrefix: "guest", GuestMaxSessions: 50}, storage.NewMemory(), nil)
	e := apitest.NewServer(deps, RegisterCartRoutes)

	for i := 0; i < 1000; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, rec.Header().Get(api.HeaderGuestID))
	}
	assert.LessOrEqual(t, deps.Guests.Len(), 50)
}
