package wishlist

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/core/money"
	"storefront.GO/service/guest"
	entity "storefront.GO/model/entity"
)

func init() {
	api.RegisterModule(RegisterWishlistRoutes)
}

type productView struct {
	entity.Product
	EffectivePrice     int    `json:"effectivePrice"`
	FormattedPrice     string `json:"formattedPrice"`
	DiscountPercentage int    `json:"discountPercentage"`
}

func wishlistBody(s *guest.Session) echo.Map {
	items := s.Wishlist.Items()
	views := make([]productView, 0, len(items))
	for _, p := range items {
		views = append(views, productView{
			Product:            p,
			EffectivePrice:     p.EffectivePrice(),
			FormattedPrice:     money.FormatPrice(p.EffectivePrice()),
			DiscountPercentage: p.DiscountPercentage(),
		})
	}
	return echo.Map{"items": views, "count": len(items)}
}

type addRequest struct {
	Product map[string]interface{} `json:"product" validate:"required"`
}

func RegisterWishlistRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/wishlist")

	// GET /api/wishlist
	g.GET("", func(c echo.Context) error {
		s := deps.Session(c)
		return api.JSON(c, http.StatusOK, s, wishlistBody(s))
	})

	// POST /api/wishlist/items – adding a product twice keeps one entry
	g.POST("/items", func(c echo.Context) error {
		var body addRequest
		if err := api.Bind(c, &body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		product, err := entity.DecodeProduct(body.Product)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := deps.Session(c)
		s.Wishlist.AddToWishlist(c.Request().Context(), product)
		return api.JSON(c, http.StatusOK, s, wishlistBody(s))
	})

	// GET /api/wishlist/items/:id – membership check
	g.GET("/items/:id", func(c echo.Context) error {
		s := deps.Session(c)
		return api.JSON(c, http.StatusOK, s, echo.Map{
			"productId":    c.Param("id"),
			"inWishlist":   s.Wishlist.IsInWishlist(c.Param("id")),
			"wishlistSize": s.Wishlist.GetWishlistCount(),
		})
	})

	// DELETE /api/wishlist/items/:id
	g.DELETE("/items/:id", func(c echo.Context) error {
		s := deps.Session(c)
		s.Wishlist.RemoveFromWishlist(c.Request().Context(), c.Param("id"))
		return api.JSON(c, http.StatusOK, s, wishlistBody(s))
	})

	// DELETE /api/wishlist
	g.DELETE("", func(c echo.Context) error {
		s := deps.Session(c)
		s.Wishlist.ClearWishlist(c.Request().Context())
		return api.JSON(c, http.StatusOK, s, wishlistBody(s))
	})
}
