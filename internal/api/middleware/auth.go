package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identity-platform/identity-service/internal/auth"
	oidcadapter "github.com/identity-platform/identity-service/internal/infrastructure/oidc"
)

// rolesContextKey is the echo context key the RBAC middleware reads.
const rolesContextKey = "roles"

// Session verifies the bearer token and installs the resulting principal
// into the request context. Requests without an Authorization header pass
// through unauthenticated; handlers that require a user fail later with
// the no-current-user condition. A present but invalid token is rejected
// outright.
func Session(jwtSecret string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			principal, err := oidcadapter.FromClaims(claims)
			if err != nil {
				log.Warn().Err(err).Msg("token verified but claims unusable")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			c.Set(rolesContextKey, rolesFromClaims(claims))

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), principal)))
			return next(c)
		}
	}
}

func rolesFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
