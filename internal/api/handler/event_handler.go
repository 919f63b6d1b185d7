package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// EventHandler serves events and ticketed registrations.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type agendaItemRequest struct {
	Time        string `json:"time"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

type eventRequest struct {
	Title       string              `json:"title"       validate:"required,min=3,max=200"`
	Description string              `json:"description" validate:"required"`
	Details     string              `json:"details"`
	Image       string              `json:"image"       validate:"omitempty,url"`
	Date        string              `json:"date"        validate:"required"`
	Time        string              `json:"time"`
	Location    string              `json:"location"`
	Organizer   string              `json:"organizer"`
	IsUpcoming  bool                `json:"is_upcoming"`
	Agenda      []agendaItemRequest `json:"agenda"      validate:"dive"`
}

func (r eventRequest) event() *domain.Event {
	agenda := make([]domain.AgendaItem, 0, len(r.Agenda))
	for _, item := range r.Agenda {
		agenda = append(agenda, domain.AgendaItem{
			Time:        item.Time,
			Title:       item.Title,
			Description: item.Description,
		})
	}
	return &domain.Event{
		Title:       r.Title,
		Description: r.Description,
		Details:     r.Details,
		Image:       r.Image,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Organizer:   r.Organizer,
		IsUpcoming:  r.IsUpcoming,
		Agenda:      agenda,
	}
}

type eventRegisterRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

type broadcastRequest struct {
	GroupLink string `json:"group_link" validate:"required,url"`
	Subject   string `json:"subject"    validate:"omitempty,max=200"`
	Message   string `json:"message"    validate:"omitempty,max=2000"`
}

// List returns events, optionally only upcoming ones.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        upcoming  query     bool  false  "Only future events"
// @Success      200       {object}  map[string]any
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.List(c.Request().Context(), c.QueryParam("upcoming") == "true")
	if err != nil {
		return err
	}
	return ok(c, events)
}

// Get returns one event.
//
// @Summary      Get event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.events.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, event)
}

// Create adds an event. Admin only.
//
// @Summary      Create event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	event, err := h.events.Create(c.Request().Context(), req.event())
	if err != nil {
		return err
	}
	return created(c, event)
}

// Update edits an event. Admin only.
//
// @Summary      Update event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	event := req.event()
	event.ID = c.Param("id")
	updated, err := h.events.Update(c.Request().Context(), event)
	if err != nil {
		return err
	}
	return ok(c, updated)
}

// Delete removes an event. Admin only.
//
// @Summary      Delete event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return message(c, 200, "event deleted")
}

// Register signs an attendee up and emails their ticket. Anonymous
// registrations are allowed; an authenticated member's id is attached
// when present.
//
// @Summary      Register for event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Event id"
// @Param        body  body      eventRegisterRequest  true  "Attendee details"
// @Success      201   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/events/{id}/registrations [post]
func (h *EventHandler) Register(c echo.Context) error {
	var req eventRegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	userID, _ := viewer(c)
	reg, err := h.events.Register(c.Request().Context(), c.Param("id"), ports.RegistrationInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	return created(c, reg)
}

// Registrations lists all attendees of an event. Admin only.
//
// @Summary      Event registrations
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/events/{id}/registrations [get]
func (h *EventHandler) Registrations(c echo.Context) error {
	regs, err := h.events.Registrations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, regs)
}

// RegistrationStatus checks whether an email is registered.
//
// @Summary      Registration status
// @Tags         events
// @Produce      json
// @Param        id     path      string  true  "Event id"
// @Param        email  query     string  true  "Attendee email"
// @Success      200    {object}  map[string]any
// @Failure      404    {object}  map[string]any
// @Router       /api/events/{id}/registration-status [get]
func (h *EventHandler) RegistrationStatus(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return badRequest("email is required")
	}
	reg, err := h.events.RegistrationStatus(c.Request().Context(), c.Param("id"), email)
	if err != nil {
		return err
	}
	return ok(c, reg)
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendConfirmation re-sends the ticket email for an existing
// registration, keeping the original ticket id.
//
// @Summary      Resend ticket
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Event id"
// @Param        body  body      resendRequest  true  "Attendee email"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/events/{id}/resend-confirmation [post]
func (h *EventHandler) ResendConfirmation(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.events.ResendConfirmation(c.Request().Context(), c.Param("id"), req.Email); err != nil {
		return err
	}
	return message(c, 200, "confirmation sent")
}

// BroadcastGroupLink queues the event group link email to every
// non-cancelled registrant. Admin only.
//
// @Summary      Broadcast group link
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Event id"
// @Param        body  body      broadcastRequest  true  "Group link"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/events/{id}/broadcast-group-link [post]
func (h *EventHandler) BroadcastGroupLink(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	count, err := h.events.BroadcastGroupLink(c.Request().Context(), c.Param("id"), req.GroupLink, req.Subject, req.Message)
	if err != nil {
		return err
	}
	return ok(c, map[string]int{"recipients": count})
}
