package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

func invokeScope(t *testing.T, scopes []string, required string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if scopes != nil {
		c.Set(CtxScopes, scopes)
	}

	handler := RequireScope(required)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return handler(c)
}

func TestRequireScope_Granted(t *testing.T) {
	if err := invokeScope(t, []string{domain.ScopeRead, domain.ScopeWrite}, domain.ScopeWrite); err != nil {
		t.Fatalf("matching scope rejected: %v", err)
	}
}

func TestRequireScope_Missing(t *testing.T) {
	err := invokeScope(t, []string{domain.ScopeRead}, domain.ScopeWrite)
	if !errors.Is(err, domain.ErrInsufficientScope) {
		t.Fatalf("expected ErrInsufficientScope, got %v", err)
	}
}

func TestRequireScope_NoScopesAttached(t *testing.T) {
	err := invokeScope(t, nil, domain.ScopeWrite)
	if !errors.Is(err, domain.ErrInsufficientScope) {
		t.Fatalf("expected ErrInsufficientScope, got %v", err)
	}
}
