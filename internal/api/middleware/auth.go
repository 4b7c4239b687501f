package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/api/metrics"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// Context keys set by the access gate on successful authentication.
const (
	CtxSubject = "subject"
	CtxScopes  = "scopes"
)

// Auth is the access gate for protected routes: it requires a bearer token,
// validates it against the token store, and attaches the subject and scopes
// to the request context. Safe reads are simply registered without it.
//
// Denials stay distinguishable: a missing credential and an invalid or
// expired token surface as different domain errors so the boundary can
// render a structured body.
func Auth(store ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.GateDeniedTotal.WithLabelValues("missing_credential").Inc()
				return domain.ErrMissingCredential
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GateDeniedTotal.WithLabelValues("missing_credential").Inc()
				return domain.ErrMissingCredential
			}

			ctx := c.Request().Context()
			now := time.Now().UTC()

			// Lazy sweep; there is no background expiry task.
			if err := store.PurgeExpired(ctx, now); err != nil {
				return err
			}

			grant, err := store.GetByAccessToken(ctx, parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrGrantNotFound) {
					metrics.GateDeniedTotal.WithLabelValues("invalid_or_expired").Inc()
					return domain.ErrInvalidOrExpiredToken
				}
				return err
			}
			if grant.Revoked || grant.Expired(now) {
				metrics.GateDeniedTotal.WithLabelValues("invalid_or_expired").Inc()
				return domain.ErrInvalidOrExpiredToken
			}

			c.Set(CtxSubject, grant.Subject)
			c.Set(CtxScopes, grant.Scopes)

			return next(c)
		}
	}
}
