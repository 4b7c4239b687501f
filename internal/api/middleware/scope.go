package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/api/metrics"
	"github.com/eventdesk/registration-api/internal/core/domain"
)

// RequireScope enforces that the authenticated grant carries the declared
// scope. Plain set containment, declared per route; no reflective
// permission scanning.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scopes, _ := c.Get(CtxScopes).([]string)
			for _, s := range scopes {
				if s == scope {
					return next(c)
				}
			}
			metrics.GateDeniedTotal.WithLabelValues("insufficient_scope").Inc()
			return domain.ErrInsufficientScope
		}
	}
}
