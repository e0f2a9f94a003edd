package auth

import (
	"crypto/subtle"
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront.GO/config"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		return keyAuth(skipper)
	case "token":
		return tokenAuth([]byte(os.Getenv("JWT_SECRET")), skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// equal compares a secret in constant time. An unset secret matches nothing.
func equal(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// basicAuth checks API_USER and API_PASS. With either unset every protected
// route is refused.
func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			user, pass := os.Getenv("API_USER"), os.Getenv("API_PASS")
			if user == "" || pass == "" {
				return false, nil
			}
			userOK := equal(username, user)
			passOK := equal(password, pass)
			return userOK && passOK, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}

// tokenAuth accepts the static API_KEY or an HS256 bearer token signed with
// secret. Verified claims are stored on the context as "claims".
func tokenAuth(secret []byte, skipper middleware.Skipper) echo.MiddlewareFunc {
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if equal(token, staticKey) {
				c.Set("auth_type", "static")
				return true, nil
			}
			claims, err := ParseToken(token, secret)
			if err != nil {
				return false, nil
			}
			c.Set("auth_type", "token")
			c.Set("claims", claims)
			c.Set("token", token)
			return true, nil
		},
		Skipper: skipper,
	})
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(token string, secret []byte) (jwt.MapClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: JWT_SECRET not configured")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
