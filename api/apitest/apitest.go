// Package apitest builds in-memory servers for API module tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/core/storage"
)

// GuestID is a fixed, valid guest id for requests.
const GuestID = "5b0e8f0a-3c55-4d7a-9f3e-0c1d2e3f4a5b"

// NewDeps returns services backed by in-memory storage. orderAPI is the base
// URL of the order backend; it may be empty when checkout is not exercised.
func NewDeps(t *testing.T, orderAPI string) *api.Deps {
	t.Helper()
	cfg := &config.Config{
		StoragePrefix:         "guest",
		APIBaseURL:            orderAPI,
		FreeShippingThreshold: 15000,
		ShippingFee:           200,
	}
	return api.NewDeps(cfg, storage.NewMemory(), nil)
}

// NewServer mounts modules on /api behind the guest middleware.
func NewServer(deps *api.Deps, modules ...api.ModuleFunc) *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	g := e.Group("/api", api.GuestMiddleware())
	for _, fn := range modules {
		fn(g, deps)
	}
	return e
}

// Do sends a request as GuestID and decodes the JSON response into a map.
func Do(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(api.HeaderGuestID, GuestID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get(echo.HeaderContentType) != "" && rec.Code != http.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, resp
}

// Messages extracts the notification messages of a response.
func Messages(resp map[string]interface{}) []string {
	list, _ := resp["notifications"].([]interface{})
	out := make([]string, 0, len(list))
	for _, n := range list {
		if m, ok := n.(map[string]interface{}); ok {
			out = append(out, m["message"].(string))
		}
	}
	return out
}

// Product is a catalog record as the frontend posts it.
func Product(id, name string, price int, sizes map[string]int) map[string]interface{} {
	p := map[string]interface{}{"_id": id, "name": name, "slug": id, "price": price}
	if len(sizes) == 0 {
		p["stock"] = 10
		return p
	}
	variants := make([]map[string]interface{}, 0, len(sizes))
	for size, stock := range sizes {
		variants = append(variants, map[string]interface{}{"size": size, "stock": stock, "price": price})
	}
	p["variants"] = variants
	return p
}
