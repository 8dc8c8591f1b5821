package handlers

import (
	"net/http"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// ComplianceHandlers handles compliance obligation HTTP requests
type ComplianceHandlers struct {
	complianceSvc services.ComplianceService
}

// NewComplianceHandlers creates a new compliance handlers instance
func NewComplianceHandlers(complianceSvc services.ComplianceService) *ComplianceHandlers {
	return &ComplianceHandlers{complianceSvc: complianceSvc}
}

// ListComplianceItems returns a user's compliance items ordered by due date
func (h *ComplianceHandlers) ListComplianceItems(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	items, err := h.complianceSvc.ListByUser(ctx, userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if items == nil {
		items = []*models.ComplianceItem{}
	}

	return c.JSON(http.StatusOK, items)
}

// CreateComplianceItem records a new compliance obligation
func (h *ComplianceHandlers) CreateComplianceItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateComplianceItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	item, err := h.complianceSvc.Create(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, item)
}

// UpdateComplianceItem applies a partial update to a compliance item
func (h *ComplianceHandlers) UpdateComplianceItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var updates models.ComplianceItemUpdate
	if err := c.Bind(&updates); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	item, err := h.complianceSvc.Update(ctx, id, &updates)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

// MarkFiledRequest optionally overrides the filing timestamp
type MarkFiledRequest struct {
	FiledDate *time.Time `json:"filedDate"`
}

// MarkFiledResponse returns the closed item and its successor for the next cycle
type MarkFiledResponse struct {
	Filed *models.ComplianceItem `json:"filed"`
	Next  *models.ComplianceItem `json:"next"`
}

// MarkFiled closes out a compliance item and opens the next cycle
func (h *ComplianceHandlers) MarkFiled(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req MarkFiledRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	filedAt := time.Now()
	if req.FiledDate != nil {
		filedAt = *req.FiledDate
	}

	filed, next, err := h.complianceSvc.MarkFiled(ctx, id, filedAt)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, MarkFiledResponse{Filed: filed, Next: next})
}
