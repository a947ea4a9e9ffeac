package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionChecker reports whether a token is still active. Logout
// revokes tokens before their JWT expiry, so signature validity alone
// is not enough.
type SessionChecker interface {
	Active(ctx context.Context, token string) (bool, error)
}

// Auth validates the JWT, checks it has not been revoked, and injects
// claims into context. sessions may be nil, in which case only the
// signature is checked.
func Auth(jwtSecret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if sessions != nil {
				active, err := sessions.Active(c.Request().Context(), parts[1])
				if err == nil && !active {
					return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
				}
			}

			c.Set("subject", claims["sub"])
			c.Set("role", claims["role"])
			c.Set("subject_id", claims["subject_id"])
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
