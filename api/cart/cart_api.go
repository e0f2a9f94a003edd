package cart

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/core/money"
	"storefront.GO/service/guest"
	entity "storefront.GO/model/entity"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

type lineView struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"productId"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug,omitempty"`
	Image              string    `json:"image,omitempty"`
	Size               string    `json:"size"`
	Quantity           int       `json:"quantity"`
	UnitPrice          int       `json:"unitPrice"`
	LineTotal          int       `json:"lineTotal"`
	FormattedUnitPrice string    `json:"formattedUnitPrice"`
	FormattedLineTotal string    `json:"formattedLineTotal"`
	AddedAt            time.Time `json:"addedAt"`
}

func lineViews(items []entity.CartLineItem) []lineView {
	out := make([]lineView, 0, len(items))
	for _, it := range items {
		out = append(out, lineView{
			ID:                 it.ID,
			ProductID:          it.Product.ID,
			Name:               it.Product.Name,
			Slug:               it.Product.Slug,
			Image:              it.Product.ImageURL(),
			Size:               it.Variant.Size,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice(),
			LineTotal:          it.LineTotal(),
			FormattedUnitPrice: money.FormatPrice(it.UnitPrice()),
			FormattedLineTotal: money.FormatPrice(it.LineTotal()),
			AddedAt:            it.AddedAt,
		})
	}
	return out
}

func cartBody(deps *api.Deps, s *guest.Session) echo.Map {
	st := s.Cart.State()
	return echo.Map{
		"items":          lineViews(st.Items),
		"totalItems":     st.TotalItems,
		"totalAmount":    st.TotalAmount,
		"formattedTotal": money.FormatPrice(st.TotalAmount),
		"quote":          deps.Checkout.Quote(s.Cart),
	}
}

type addItemRequest struct {
	Product  map[string]interface{} `json:"product" validate:"required"`
	Size     string                 `json:"size"`
	Quantity int                    `json:"quantity" validate:"gte=0"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func RegisterCartRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/cart")

	// GET /api/cart
	g.GET("", func(c echo.Context) error {
		s := deps.Session(c)
		return api.JSON(c, http.StatusOK, s, cartBody(deps, s))
	})

	// POST /api/cart/items – add a product size; quantity defaults to 1
	g.POST("/items", func(c echo.Context) error {
		var body addItemRequest
		if err := api.Bind(c, &body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		product, err := entity.DecodeProduct(body.Product)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		variant, ok := product.VariantBySize(body.Size)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "size not available: " + body.Size})
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}

		s := deps.Session(c)
		if !s.Cart.AddToCart(c.Request().Context(), product, variant, body.Quantity) {
			resp := cartBody(deps, s)
			resp["error"] = "Insufficient stock available"
			return api.JSON(c, http.StatusConflict, s, resp)
		}
		return api.JSON(c, http.StatusOK, s, cartBody(deps, s))
	})

	// PATCH /api/cart/items/:id – set quantity; values below 1 are ignored
	g.PATCH("/items/:id", func(c echo.Context) error {
		var body updateItemRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		id := c.Param("id")
		s := deps.Session(c)
		if !hasLine(s, id) {
			return api.JSON(c, http.StatusNotFound, s, echo.Map{"error": "cart item not found"})
		}
		if body.Quantity >= 1 && !s.Cart.UpdateCartItem(c.Request().Context(), id, body.Quantity) {
			resp := cartBody(deps, s)
			resp["error"] = "Insufficient stock available"
			return api.JSON(c, http.StatusConflict, s, resp)
		}
		return api.JSON(c, http.StatusOK, s, cartBody(deps, s))
	})

	// DELETE /api/cart/items/:id
	g.DELETE("/items/:id", func(c echo.Context) error {
		s := deps.Session(c)
		s.Cart.RemoveFromCart(c.Request().Context(), c.Param("id"))
		return api.JSON(c, http.StatusOK, s, cartBody(deps, s))
	})

	// DELETE /api/cart
	g.DELETE("", func(c echo.Context) error {
		s := deps.Session(c)
		s.Cart.ClearCart(c.Request().Context())
		return api.JSON(c, http.StatusOK, s, cartBody(deps, s))
	})
}

func hasLine(s *guest.Session, id string) bool {
	for _, it := range s.Cart.Items() {
		if it.ID == id {
			return true
		}
	}
	return false
}
