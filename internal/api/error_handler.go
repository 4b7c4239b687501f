package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// oauthError is the error envelope of the token endpoint and the access
// gate, following the OAuth wire shape.
type oauthError struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// validationErrorBody is the envelope for 400 responses carrying the full
// ordered list of violated rules plus a link back to the API index.
type validationErrorBody struct {
	Errors []domain.FieldError `json:"errors"`
	Links  indexLinks          `json:"_links"`
}

type indexLinks struct {
	Index href `json:"index"`
}

type href struct {
	Href string `json:"href"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and wire bodies.
//   - Renders validation failures fully enumerated, never truncated.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, validationErrorBody{
				Errors: ve.Errors,
				Links:  indexLinks{Index: href{Href: "/api"}},
			})
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, oauthError{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors map to deterministic codes and machine-readable
	// reasons. None of these is retryable; the caller must act.
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, oauthError{Error: "not_found", Description: "event not found"}
	case errors.Is(err, domain.ErrInvalidClient):
		return http.StatusUnauthorized, oauthError{Error: "invalid_client", Description: "client authentication failed"}
	case errors.Is(err, domain.ErrUnauthorizedGrantType):
		return http.StatusBadRequest, oauthError{Error: "unauthorized_client", Description: "grant type not allowed for this client"}
	case errors.Is(err, domain.ErrUnsupportedGrantType):
		return http.StatusBadRequest, oauthError{Error: "unsupported_grant_type", Description: "grant type not supported"}
	case errors.Is(err, domain.ErrInvalidGrant):
		return http.StatusBadRequest, oauthError{Error: "invalid_grant", Description: "invalid resource owner credentials or refresh token"}
	case errors.Is(err, domain.ErrInvalidScope):
		return http.StatusBadRequest, oauthError{Error: "invalid_scope", Description: "requested scope exceeds client scopes"}
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, oauthError{Error: "missing_credential", Description: "bearer token required"}
	case errors.Is(err, domain.ErrInvalidOrExpiredToken):
		return http.StatusUnauthorized, oauthError{Error: "invalid_token", Description: "token is invalid, revoked, or expired"}
	case errors.Is(err, domain.ErrInsufficientScope):
		return http.StatusForbidden, oauthError{Error: "insufficient_scope", Description: "grant does not carry the required scope"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, oauthError{Error: "internal_error"}
}
