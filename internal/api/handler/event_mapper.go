package handler

import (
	"fmt"

	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// --- Request → Service input ---

func toEventInput(req eventRequest) ports.EventInput {
	return ports.EventInput{
		Name:                    req.Name,
		Description:             req.Description,
		BeginEnrollmentDateTime: req.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: req.CloseEnrollmentDateTime,
		BeginEventDateTime:      req.BeginEventDateTime,
		EndEventDateTime:        req.EndEventDateTime,
		Location:                req.Location,
		BasePrice:               req.BasePrice,
		MaxPrice:                req.MaxPrice,
		LimitOfEnrollment:       req.LimitOfEnrollment,
	}
}

// --- Service result → HTTP response ---

func eventSelf(id int64) string {
	return fmt.Sprintf("/api/events/%d", id)
}

// toEventResponse renders the representation with its hypermedia links.
// Every representation carries self; extra relations depend on the
// operation, the profile link points into the generated docs.
func toEventResponse(e *domain.Event, profile string, extra eventLinks) eventResponse {
	links := eventLinks{
		"self": linkRef{Href: eventSelf(e.ID)},
	}
	if profile != "" {
		links["profile"] = linkRef{Href: "/docs/index.html#" + profile}
	}
	for rel, ref := range extra {
		links[rel] = ref
	}

	return eventResponse{
		ID:                      e.ID,
		Name:                    e.Name,
		Description:             e.Description,
		BeginEnrollmentDateTime: e.BeginEnrollmentDateTime.UTC(),
		CloseEnrollmentDateTime: e.CloseEnrollmentDateTime.UTC(),
		BeginEventDateTime:      e.BeginEventDateTime.UTC(),
		EndEventDateTime:        e.EndEventDateTime.UTC(),
		Location:                e.Location,
		BasePrice:               e.BasePrice,
		MaxPrice:                e.MaxPrice,
		LimitOfEnrollment:       e.LimitOfEnrollment,
		Offline:                 e.Offline,
		Free:                    e.Free,
		EventStatus:             string(e.Status),
		Links:                   links,
	}
}

func toListResponse(page *ports.EventPage, selfHref string) listEventsResponse {
	items := make([]eventResponse, len(page.Items))
	for i, e := range page.Items {
		items[i] = toEventResponse(e, "", nil)
	}
	return listEventsResponse{
		Data: items,
		Page: pageSummary{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Number:        page.Number,
		},
		Links: eventLinks{
			"self":    linkRef{Href: selfHref},
			"profile": linkRef{Href: "/docs/index.html#resources-events-list"},
		},
	}
}
