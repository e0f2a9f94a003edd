package graphql

import (
	"context"
	"encoding/json"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyGuestID contextKey = "guestID"

// The guest is resolved from: X-Guest-ID header > __Guest query param > JSON variables.__Guest
const (
	HeaderGuest     = "X-Guest-ID"
	QueryParamGuest = "__Guest"
	VarGuest        = "__Guest"
)

// GuestIDFromContext returns the guest ID for the current request.
func GuestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyGuestID).(string)
	return id
}

// WithGuestID attaches the guest ID to ctx.
func WithGuestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeyGuestID, id)
}

// GetGuestID extracts the guest ID from header or query param.
func GetGuestID(r *http.Request) string {
	if h := r.Header.Get(HeaderGuest); h != "" {
		return h
	}
	return r.URL.Query().Get(QueryParamGuest)
}

// ParseGuestFromVariables reads variables.__Guest from a JSON request body.
func ParseGuestFromVariables(body []byte) (string, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return "", false
	}
	id, ok := payload.Variables[VarGuest].(string)
	return id, ok && id != ""
}
