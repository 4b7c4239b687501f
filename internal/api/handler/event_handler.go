package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /api/events.
//
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  validationBody
// @Failure      401   {object}  errorBody
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.service.Create(c.Request().Context(), ctxSubject(c), toEventInput(req))
	if err != nil {
		return err
	}

	self := eventSelf(event.ID)
	c.Response().Header().Set(echo.HeaderLocation, self)
	return c.JSON(http.StatusCreated, toEventResponse(event, "resources-events-create", eventLinks{
		"query-events": linkRef{Href: "/api/events"},
		"update-event": linkRef{Href: self},
	}))
}

// Get handles GET /api/events/:id. Anonymous callers are allowed.
//
// @Summary      Get an event by id
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorBody
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventResponse(event, "resources-events-get", nil))
}

// Update handles PUT /api/events/:id.
//
// @Summary      Update an existing event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Event id"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  validationBody
// @Failure      404   {object}  errorBody
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.service.Update(c.Request().Context(), ctxSubject(c), id, toEventInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventResponse(event, "resources-events-update", nil))
}

// List handles GET /api/events. Anonymous callers are allowed.
//
// @Summary      List events with pagination
// @Tags         events
// @Produce      json
// @Param        page  query     int     false  "0-based page index"
// @Param        size  query     int     false  "page size"
// @Param        sort  query     string  false  "sort spec, e.g. name,DESC"
// @Success      200   {object}  listEventsResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	filter := ports.ListEventsFilter{}
	if v := c.QueryParam("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("size"); v != "" {
		filter.Size, _ = strconv.Atoi(v)
	}
	filter.SortBy, filter.SortDesc = parseSort(c.QueryParam("sort"))

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(page, c.Request().URL.RequestURI()))
}

func eventID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return id, nil
}

// parseSort reads a "field,ASC|DESC" sort spec. Unknown fields are left to
// the repository whitelist; a bare field name sorts ascending.
func parseSort(spec string) (field string, desc bool) {
	if spec == "" {
		return "", false
	}
	parts := strings.SplitN(spec, ",", 2)
	field = parts[0]
	if len(parts) == 2 && strings.EqualFold(parts[1], "DESC") {
		desc = true
	}
	return field, desc
}
