package middleware

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/infrastructure/firebase"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
)

// AdminOnly must run after Authenticate. Admin rights come from the "admin"
// custom claim on the verified ID token.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get(ContextUID).(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		claims, _ := c.Get(ContextClaims).(map[string]interface{})
		if !firebase.IsAdmin(claims) {
			logger.Warn("non-admin user %s denied access to %s %s", uid, c.Request().Method, c.Path())
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
