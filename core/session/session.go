// Package session watches the admin bearer token and ends the session when
// its exp claim passes. Signatures are never verified here; the backend does
// that on every request.
package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WarnWindow is how long before expiry the shopper is warned.
const WarnWindow = 30 * time.Minute

const (
	MsgExpiringSoon = "Session will expire soon. Please save your work."
	MsgExpired      = "Session expired. Please login again."
)

type Status int

const (
	// StatusSkipped means there is no token or it carries no readable exp claim.
	StatusSkipped Status = iota
	StatusValid
	StatusWarning
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusWarning:
		return "warning"
	case StatusExpired:
		return "expired"
	default:
		return "skipped"
	}
}

// Expiry reads the exp claim of token without verifying it. Only the payload
// segment is decoded; the header may be anything.
func Expiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Check classifies token at now.
func Check(token string, now time.Time) Status {
	exp, ok := Expiry(token)
	if !ok {
		return StatusSkipped
	}
	left := exp.Sub(now)
	switch {
	case left <= 0:
		return StatusExpired
	case left < WarnWindow:
		return StatusWarning
	default:
		return StatusValid
	}
}
