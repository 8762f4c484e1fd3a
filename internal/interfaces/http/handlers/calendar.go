package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListEvents handles GET /api/calendar/events. With a start/end window the
// call uses calendarView, which expands recurring events; without one it
// lists the event series directly.
func (h *Handlers) ListEvents() gin.HandlerFunc {
	return h.wrap("listEvents", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}

		start, end := c.Query("start"), c.Query("end")
		var req = client.API("/me/events").Top(limit).OrderBy("start/dateTime")
		if start != "" && end != "" {
			req = client.API("/me/calendarView").
				Query("startDateTime", start).
				Query("endDateTime", end).
				Top(limit).
				OrderBy("start/dateTime")
		}

		resp, err := req.Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		events := normalize.Collection(resp, normalize.Event)
		return http.StatusOK, dto.List(events, len(events)), nil
	})
}

// GetEvent handles GET /api/calendar/events/:id.
func (h *Handlers) GetEvent() gin.HandlerFunc {
	return h.wrap("getEvent", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/events/" + c.Param("id")).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.Event(resp)), nil
	})
}

// CreateEvent handles POST /api/calendar/create.
func (h *Handlers) CreateEvent() gin.HandlerFunc {
	return h.wrap("createEvent", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateEventRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/events").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.Event(resp)), nil
	})
}

// UpdateEvent handles PATCH /api/calendar/events/:id.
func (h *Handlers) UpdateEvent() gin.HandlerFunc {
	return h.wrap("updateEvent", func(c *gin.Context) (int, interface{}, error) {
		var req dto.UpdateEventRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/events/" + c.Param("id")).Patch(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Updated(normalize.Event(resp)), nil
	})
}

// DeleteEvent handles DELETE /api/calendar/events/:id.
func (h *Handlers) DeleteEvent() gin.HandlerFunc {
	return h.wrap("deleteEvent", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		if err := client.API("/me/events/" + c.Param("id")).Delete(c.Request.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Deleted(), nil
	})
}

// FindMeetingTimes handles POST /api/calendar/findMeetingTimes. The request
// accepts both constraint spellings and bare-email attendees; the Graph call
// always carries the canonical shape.
func (h *Handlers) FindMeetingTimes() gin.HandlerFunc {
	return h.wrap("findMeetingTimes", func(c *gin.Context) (int, interface{}, error) {
		var req dto.FindMeetingTimesRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/findMeetingTimes").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		suggestions := normalize.Collection(
			map[string]interface{}{"value": resp["meetingTimeSuggestions"]},
			normalize.MeetingTimeSuggestion,
		)
		return http.StatusOK, dto.List(suggestions, len(suggestions)), nil
	})
}

// Availability handles POST /api/calendar/availability via getSchedule.
func (h *Handlers) Availability() gin.HandlerFunc {
	return h.wrap("availability", func(c *gin.Context) (int, interface{}, error) {
		var req dto.AvailabilityRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/calendar/getSchedule").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		schedules := normalize.Collection(resp, normalize.ScheduleInformation)
		return http.StatusOK, dto.List(schedules, len(schedules)), nil
	})
}
