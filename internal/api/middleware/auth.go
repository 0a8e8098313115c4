package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/accessflow/accessflow/internal/core/domain"
)

const principalKey = "principal"

// Principal is the authenticated identity extracted from the bearer token.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   domain.Role
}

// PrincipalFrom returns the principal the Auth middleware stored on the
// request. The second return is false when the route is unauthenticated.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// Auth validates the bearer JWT and stores the resulting Principal on the
// request context. Tokens signed with anything but HS256 are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
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

			c.Set(principalKey, Principal{
				UserID: stringClaim(claims, "sub"),
				Email:  stringClaim(claims, "email"),
				Name:   stringClaim(claims, "name"),
				Role:   domain.Role(stringClaim(claims, "role")),
			})

			return next(c)
		}
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
