package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/core/session"
	"storefront.GO/core/storage"
)

func init() {
	api.RegisterModule(RegisterSessionRoutes)
}

type storeTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterSessionRoutes exposes the admin session watched by the expiry
// monitor. These routes sit behind the /api auth middleware.
func RegisterSessionRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/admin/session")

	// GET /api/admin/session
	g.GET("", func(c echo.Context) error {
		token, _, err := deps.Admin.Get(c.Request().Context(), storage.KeyAccessToken)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		resp := echo.Map{"status": session.Check(token, time.Now()).String()}
		if exp, ok := session.Expiry(token); ok {
			resp["expiresAt"] = exp.UTC()
		}
		return c.JSON(http.StatusOK, resp)
	})

	// PUT /api/admin/session – store the token the monitor watches
	g.PUT("", func(c echo.Context) error {
		var body storeTokenRequest
		if err := api.Bind(c, &body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		exp, ok := session.Expiry(body.Token)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "token has no readable exp claim"})
		}
		if err := deps.Admin.Set(c.Request().Context(), storage.KeyAccessToken, body.Token); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":    session.Check(body.Token, time.Now()).String(),
			"expiresAt": exp.UTC(),
		})
	})

	// DELETE /api/admin/session – logout
	g.DELETE("", func(c echo.Context) error {
		if err := session.StorageLogout(deps.Admin)(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}
