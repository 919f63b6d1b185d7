package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/ports"
)

// NotificationHandler serves per-user in-app notifications.
type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first, with the
// unread count.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  map[string]any
// @Failure      401    {object}  map[string]any
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.notifications.List(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return err
	}
	return ok(c, result)
}

// MarkRead marks one of the caller's notifications as read. Marking
// someone else's notification is forbidden.
//
// @Summary      Mark notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	notif, err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return ok(c, notif)
}

// MarkAllRead marks every unread notification of the caller as read.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllRead(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return message(c, 200, "all notifications marked read")
}
