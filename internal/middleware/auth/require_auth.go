package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/tokens"
)

// RequireAuth validates the Authorization bearer token and stores the user
// id in the echo context under "user_id". Failures answer 401 with a
// WWW-Authenticate challenge.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return challenge(c, "missing bearer token")
			}

			claims, err := tokens.AccessClaimsFromToken(raw, secret)
			if err != nil {
				return challenge(c, "invalid or expired token")
			}

			userID, err := claims.UserID()
			if err != nil {
				return challenge(c, "invalid subject claim")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}

func challenge(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}
