package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "wayfarer/internal/errors"
	"wayfarer/internal/model"
)

// ClaimsFromContext returns the verified session claims attached to the
// request by the JWT gate. Fails with 401 if the gate did not run or the
// token did not carry the expected claims.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, unauthorizedError()
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, unauthorizedError()
	}
	return claims, nil
}

// RequireRole gates a route on the verified claim's role. It is pure: the
// decision is a comparison against the claim, with no store access.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFromContext(c)
			if err != nil {
				return err
			}
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "insufficient permissions",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

func unauthorizedError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "missing or invalid session token",
		Code:  "UNAUTHORIZED",
	})
}
