package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/api/middleware"
)

// ctxSubject extracts the authenticated subject injected by the access
// gate. Empty on anonymous routes; mutating handlers sit behind the gate
// so the subject is always present there.
func ctxSubject(c echo.Context) string {
	subject, _ := c.Get(middleware.CtxSubject).(string)
	return subject
}
