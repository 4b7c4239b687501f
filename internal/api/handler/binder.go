package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StrictBinder rejects JSON bodies carrying unknown fields, so payloads
// with properties outside the schema fail with 400 instead of being
// silently truncated. Non-JSON requests fall through to the default binder.
type StrictBinder struct {
	fallback echo.DefaultBinder
}

func NewStrictBinder() *StrictBinder {
	return &StrictBinder{}
}

func (b *StrictBinder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return b.fallback.Bind(i, c)
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return nil
}
