package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes adds GET /health, which also reports the storage
// driver and the number of guests held in memory.
func RegisterHealthRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"app":     deps.Config.AppName,
			"storage": deps.Config.StorageDriver,
			"guests":  deps.Guests.Len(),
		})
	})
}
