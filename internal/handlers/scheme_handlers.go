package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// SchemeHandlers handles government scheme catalog HTTP requests
type SchemeHandlers struct {
	schemeSvc services.SchemeService
}

// NewSchemeHandlers creates a new scheme handlers instance
func NewSchemeHandlers(schemeSvc services.SchemeService) *SchemeHandlers {
	return &SchemeHandlers{schemeSvc: schemeSvc}
}

// ListSchemes returns active schemes, optionally filtered by type
func (h *SchemeHandlers) ListSchemes(c echo.Context) error {
	ctx := c.Request().Context()

	var schemes []*models.Scheme
	var err error
	if schemeType := c.QueryParam("type"); schemeType != "" {
		schemes, err = h.schemeSvc.ListActiveByType(ctx, schemeType)
	} else {
		schemes, err = h.schemeSvc.ListActive(ctx)
	}
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if schemes == nil {
		schemes = []*models.Scheme{}
	}

	return c.JSON(http.StatusOK, schemes)
}
