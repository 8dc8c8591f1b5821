package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// ApplicationHandlers handles license application HTTP requests
type ApplicationHandlers struct {
	applicationSvc services.ApplicationService
}

// NewApplicationHandlers creates a new application handlers instance
func NewApplicationHandlers(applicationSvc services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationSvc: applicationSvc}
}

// ListApplications returns all applications submitted by a user
func (h *ApplicationHandlers) ListApplications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	applications, err := h.applicationSvc.ListByUser(ctx, userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if applications == nil {
		applications = []*models.Application{}
	}

	return c.JSON(http.StatusOK, applications)
}

// CreateApplication submits a new license application
func (h *ApplicationHandlers) CreateApplication(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	application, err := h.applicationSvc.Create(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, application)
}

// UpdateApplication applies a partial update to an application
func (h *ApplicationHandlers) UpdateApplication(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var updates models.ApplicationUpdate
	if err := c.Bind(&updates); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	application, err := h.applicationSvc.Update(ctx, id, &updates)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, application)
}
