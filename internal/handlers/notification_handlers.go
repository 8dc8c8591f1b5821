package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers handles notification feed HTTP requests
type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

// NewNotificationHandlers creates a new notification handlers instance
func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationSvc: notificationSvc}
}

// ListNotifications returns a user's notifications, newest first
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	notifications, err := h.notificationSvc.ListByUser(ctx, userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	return c.JSON(http.StatusOK, notifications)
}

// CreateNotification adds an entry to a user's feed
func (h *NotificationHandlers) CreateNotification(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	notification, err := h.notificationSvc.Create(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, notification)
}

// MarkNotificationRead flags a single notification as read
func (h *NotificationHandlers) MarkNotificationRead(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	marked, err := h.notificationSvc.MarkRead(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if !marked {
		return common.SendNotFoundError(c, "Notification")
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
