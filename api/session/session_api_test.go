package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.GO/api/apitest"
)

func TestSessionAPI(t *testing.T) {
	e := apitest.NewServer(apitest.NewDeps(t, ""), RegisterSessionRoutes)

	_, resp := apitest.Do(t, e, http.MethodGet, "/api/admin/session", nil)
	assert.Equal(t, "skipped", resp["status"])

	rec, _ := apitest.Do(t, e, http.MethodPut, "/api/admin/session", echo.Map{"token": "not-a-jwt"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(10 * time.Minute).Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	rec, resp = apitest.Do(t, e, http.MethodPut, "/api/admin/session", echo.Map{"token": token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "warning", resp["status"])

	_, resp = apitest.Do(t, e, http.MethodGet, "/api/admin/session", nil)
	assert.Equal(t, "warning", resp["status"])
	assert.NotEmpty(t, resp["expiresAt"])

	rec, _ = apitest.Do(t, e, http.MethodDelete, "/api/admin/session", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, resp = apitest.Do(t, e, http.MethodGet, "/api/admin/session", nil)
	assert.Equal(t, "skipped", resp["status"])
}
