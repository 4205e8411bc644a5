package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"experano/internal/delivery/http/helpers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/domain"
	"experano/internal/matching"
)

// EventRequest is the request body for POST /api/events and the element type
// for POST /api/events/import. Keywords accepts either a JSON string array or
// a single comma-delimited string; both are normalized at ingest.
type EventRequest struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Location          string          `json:"location"`
	DateTime          time.Time       `json:"dateTime"`
	Image             string          `json:"image"`
	Keywords          json.RawMessage `json:"keywords"`
	EventType         string          `json:"eventType"`
	EventLocationType string          `json:"eventLocationType"`
	Organizer         string          `json:"organizer"`
	OrganizerID       string          `json:"organizerId"`
	ExternalLink      string          `json:"externalLink"`
}

func (e EventRequest) toDomain() *domain.Event {
	return &domain.Event{
		Title:             strings.TrimSpace(e.Title),
		Description:       e.Description,
		Location:          e.Location,
		DateTime:          e.DateTime,
		Image:             e.Image,
		Keywords:          matching.ParseKeywordField(e.Keywords),
		EventType:         e.EventType,
		EventLocationType: e.EventLocationType,
		Organizer:         e.Organizer,
		OrganizerID:       e.OrganizerID,
		ExternalLink:      e.ExternalLink,
	}
}

// UpdateGoingStatusRequest is the request body for POST /api/user/updateGoingStatus.
type UpdateGoingStatusRequest struct {
	EventID int64  `json:"eventId"`
	UserID  string `json:"userId"`
}

// UpdateGoingStatusResponse is the response body for POST /api/user/updateGoingStatus.
type UpdateGoingStatusResponse struct {
	Success   bool               `json:"success"`
	RSVP      []domain.RSVPEntry `json:"rsvp"`
	RSVPCount int                `json:"rsvpCount"`
}

// ImportEventsResponse is the response body for POST /api/events/import.
type ImportEventsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// EventController handles the event catalog endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// GetAllEvents godoc
// @Summary List events
// @Description Returns one page of the event catalog plus the distinct location and event-type vocabularies for filter dropdowns.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param q query string false "Substring match on title or description"
// @Param location query string false "Filter by location"
// @Param eventType query string false "Filter by event type"
// @Success 200 {object} domain.EventPage
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request (invalid pagination)"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/user/getAllEvents [get]
func (c *EventController) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	page, limit, err := helpers.ParsePageLimit(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	filter := domain.EventFilter{
		Query:     r.URL.Query().Get("q"),
		Location:  r.URL.Query().Get("location"),
		EventType: r.URL.Query().Get("eventType"),
	}
	result, err := c.Service.ListEvents(r.Context(), filter, page, limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}

// UpdateGoingStatus godoc
// @Summary Toggle RSVP for an event
// @Description Adds the user to the event's RSVP list if absent, removes them if present. Returns the updated list and count.
// @Tags events
// @Accept json
// @Produce json
// @Param body body UpdateGoingStatusRequest true "Event and user"
// @Success 200 {object} UpdateGoingStatusResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/user/updateGoingStatus [post]
func (c *EventController) UpdateGoingStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoingStatusRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.EventID == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId is required")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "userId is required")
		return
	}
	rsvp, count, err := c.Service.ToggleGoing(r.Context(), req.EventID, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, UpdateGoingStatusResponse{
		Success:   true,
		RSVP:      rsvp,
		RSVPCount: count,
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a catalog event owned by the authenticated organizer. Requires Bearer token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	event := req.toDomain()
	if event.Title == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "title is required")
		return
	}
	if event.OrganizerID == "" {
		event.OrganizerID = identity.Email
	}
	if event.Organizer == "" {
		event.Organizer = identity.DisplayName()
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// ImportEvents godoc
// @Summary Bulk import events
// @Description Upserts a batch of events keyed by (title, dateTime, location). Keywords are normalized at ingest regardless of their stored shape.
// @Tags events
// @Accept json
// @Produce json
// @Param body body []EventRequest true "Events to import"
// @Success 200 {object} ImportEventsResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/events/import [post]
func (c *EventController) ImportEvents(w http.ResponseWriter, r *http.Request) {
	var reqs []EventRequest
	if !helpers.DecodeJSON(w, r, &reqs) {
		return
	}
	events := make([]*domain.Event, 0, len(reqs))
	for _, req := range reqs {
		event := req.toDomain()
		if event.Title == "" {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "every event needs a title")
			return
		}
		events = append(events, event)
	}
	created, updated, err := c.Service.ImportEvents(r.Context(), events)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ImportEventsResponse{Created: created, Updated: updated})
}
