package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// ProfileHandlers handles business profile HTTP requests
type ProfileHandlers struct {
	profileSvc services.ProfileService
}

// NewProfileHandlers creates a new profile handlers instance
func NewProfileHandlers(profileSvc services.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

// GetProfile returns the business profile for a user
func (h *ProfileHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	profile, err := h.profileSvc.GetByUserID(ctx, userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// CreateProfile creates the business profile for a user
func (h *ProfileHandlers) CreateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	profile, err := h.profileSvc.Create(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, profile)
}

// UpdateProfile applies a partial update to a user's business profile
func (h *ProfileHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var updates models.BusinessProfileUpdate
	if err := c.Bind(&updates); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	profile, err := h.profileSvc.UpdateByUserID(ctx, userID, &updates)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}
