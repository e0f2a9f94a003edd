package checkout

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	checkoutService "storefront.GO/service/checkout"
)

func init() {
	api.RegisterModule(RegisterCheckoutRoutes)
}

type placeOrderRequest struct {
	CustomerDetails checkoutService.CustomerDetails `json:"customerDetails"`
}

func RegisterCheckoutRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/checkout")

	// GET /api/checkout/quote – subtotal, shipping and total of the current cart
	g.GET("/quote", func(c echo.Context) error {
		s := deps.Session(c)
		return api.JSON(c, http.StatusOK, s, echo.Map{
			"quote":  deps.Checkout.Quote(s.Cart),
			"cities": checkoutService.Cities,
		})
	})

	// POST /api/checkout – place a cash-on-delivery order for the cart
	g.POST("", func(c echo.Context) error {
		var body placeOrderRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := deps.Session(c)
		receipt, err := deps.Checkout.PlaceOrder(c.Request().Context(), s.Cart, s.Notifications, body.CustomerDetails)
		if err != nil {
			var verr *checkoutService.ValidationError
			switch {
			case errors.As(err, &verr):
				return api.JSON(c, http.StatusUnprocessableEntity, s, echo.Map{"error": "invalid customer details", "fields": verr.Fields})
			case errors.Is(err, checkoutService.ErrEmptyCart):
				return api.JSON(c, http.StatusBadRequest, s, echo.Map{"error": "Your cart is empty"})
			default:
				return api.JSON(c, http.StatusBadGateway, s, echo.Map{"error": err.Error()})
			}
		}
		return api.JSON(c, http.StatusCreated, s, echo.Map{"order": receipt})
	})
}
