package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/service/cart"
	"storefront.GO/service/wishlist"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// HeaderGuestSig is the hex HMAC-SHA256 of the guest id.
const HeaderGuestSig = "X-Guest-Sig"

// Event is one server-sent event of the stream.
type Event struct {
	Name string
	Data interface{}
}

// getSigningKey returns the guest signing key from env
func getSigningKey() string {
	return config.GetEnv("GUEST_SIGNING_KEY", "")
}

// SignGuest returns the signature a client sends for guestID.
func SignGuest(guestID, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(guestID))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyGuestSignature validates HMAC-SHA256 signature using constant-time comparison
func verifyGuestSignature(guestID, signature, key string) bool {
	if key == "" || guestID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(guestID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes streams cart and wishlist changes of a guest.
func RegisterRealtimeRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/events – text/event-stream of "cart" and "wishlist" events
	g.GET("/events", func(c echo.Context) error {
		guestID := api.GuestID(c)
		if key := getSigningKey(); key != "" && !verifyGuestSignature(guestID, c.Request().Header.Get(HeaderGuestSig), key) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}
		s, release := deps.Guests.Hold(c.Request().Context(), guestID)
		defer release()

		pending := newLatest()
		unsubCart := s.Cart.Subscribe(func(st cart.State) { pending.Put(Event{Name: "cart", Data: st}) })
		defer unsubCart()
		unsubWishlist := s.Wishlist.Subscribe(func(st wishlist.State) { pending.Put(Event{Name: "wishlist", Data: st}) })
		defer unsubWishlist()

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set(echo.HeaderCacheControl, "no-cache")
		w.Header().Set(echo.HeaderConnection, "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, Event{Name: "cart", Data: s.Cart.State()}); err != nil {
			return nil
		}
		if err := writeEvent(w, Event{Name: "wishlist", Data: wishlist.State{Items: s.Wishlist.Items()}}); err != nil {
			return nil
		}

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()
		ctx := c.Request().Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-pending.wake:
				for _, ev := range pending.Take() {
					if err := writeEvent(w, ev); err != nil {
						return nil
					}
				}
			case <-ping.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return nil
				}
				w.Flush()
			}
		}
	})
}

// latest keeps the newest unsent state per event name, so a slow reader
// skips intermediate states but always ends on the current one.
type latest struct {
	mu      sync.Mutex
	pending map[string]Event
	order   []string
	wake    chan struct{}
}

func newLatest() *latest {
	return &latest{pending: make(map[string]Event), wake: make(chan struct{}, 1)}
}

func (l *latest) Put(ev Event) {
	l.mu.Lock()
	if _, ok := l.pending[ev.Name]; !ok {
		l.order = append(l.order, ev.Name)
	}
	l.pending[ev.Name] = ev
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Take returns the pending events in the order their names first arrived.
func (l *latest) Take() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.pending[name])
	}
	l.pending = make(map[string]Event)
	l.order = nil
	return out
}

func writeEvent(w *echo.Response, ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
