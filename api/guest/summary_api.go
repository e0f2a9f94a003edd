package guest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"storefront.GO/api"
	"storefront.GO/core/money"
	"storefront.GO/service/checkout"
)

func init() {
	api.RegisterModule(RegisterSummaryRoutes)
}

// Summary is what the header badges and mini cart show.
type Summary struct {
	GuestID        string          `json:"guestId"`
	CartCount      int             `json:"cartCount"`
	CartTotal      int             `json:"cartTotal"`
	FormattedTotal string          `json:"formattedTotal"`
	WishlistCount  int             `json:"wishlistCount"`
	Quote          checkout.Totals `json:"quote"`
}

func RegisterSummaryRoutes(apiGroup *echo.Group, deps *api.Deps) {
	// GET /api/guest/summary
	apiGroup.GET("/guest/summary", func(c echo.Context) error {
		s := deps.Session(c)
		out := Summary{GuestID: s.ID}

		var g errgroup.Group
		g.Go(func() error {
			st := s.Cart.State()
			out.CartCount = st.TotalItems
			out.CartTotal = st.TotalAmount
			out.FormattedTotal = money.FormatPrice(st.TotalAmount)
			out.Quote = checkout.ComputeTotals(st.TotalAmount, deps.Config.FreeShippingThreshold, deps.Config.ShippingFee)
			return nil
		})
		g.Go(func() error {
			out.WishlistCount = s.Wishlist.GetWishlistCount()
			return nil
		})
		if err := g.Wait(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return api.JSON(c, http.StatusOK, s, echo.Map{"summary": out})
	})
}
