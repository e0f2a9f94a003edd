package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront.GO/service/guest"
)

// HeaderGuestID carries the anonymous shopper id in both directions.
const HeaderGuestID = "X-Guest-ID"

const ctxKeyGuestID = "guest_id"

// GuestMiddleware resolves the guest id of the request. A missing or
// malformed id is replaced by a fresh UUID, which the client must send back.
func GuestMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderGuestID)
			if parsed, err := uuid.Parse(id); err == nil {
				id = parsed.String()
			} else {
				id = uuid.NewString()
			}
			c.Set(ctxKeyGuestID, id)
			c.Response().Header().Set(HeaderGuestID, id)
			return next(c)
		}
	}
}

// GuestID returns the id set by GuestMiddleware.
func GuestID(c echo.Context) string {
	id, _ := c.Get(ctxKeyGuestID).(string)
	return id
}

// Session returns the cart and wishlist of the requesting guest.
func (d *Deps) Session(c echo.Context) *guest.Session {
	return d.Guests.Get(c.Request().Context(), GuestID(c))
}

// JSON writes body with the notifications raised for the guest during the
// request.
func JSON(c echo.Context, status int, s *guest.Session, body echo.Map) error {
	if body == nil {
		body = echo.Map{}
	}
	body["notifications"] = s.Notifications.Drain()
	return c.JSON(status, body)
}
