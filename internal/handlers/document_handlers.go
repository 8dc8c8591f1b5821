package handlers

import (
	"errors"
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DocumentHandlers handles document metadata and object storage HTTP requests
type DocumentHandlers struct {
	documentSvc services.DocumentService
}

// NewDocumentHandlers creates a new document handlers instance
func NewDocumentHandlers(documentSvc services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentSvc: documentSvc}
}

// ListDocuments returns all document records for a user
func (h *DocumentHandlers) ListDocuments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("userId"), "userId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	documents, err := h.documentSvc.ListByUser(ctx, userID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if documents == nil {
		documents = []*models.Document{}
	}

	return c.JSON(http.StatusOK, documents)
}

// CreateDocument records document metadata without an object upload
func (h *DocumentHandlers) CreateDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	doc, err := h.documentSvc.Create(ctx, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, doc)
}

// DeleteDocument removes a document record and its stored object
func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	deleted, err := h.documentSvc.Delete(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if !deleted {
		return common.SendNotFoundError(c, "Document")
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// UploadDocument stores a multipart file upload along with its metadata
func (h *DocumentHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.FormValue("userId"))
	if err != nil {
		return common.SendValidationError(c, map[string]string{"userId": "userId must be a valid UUID"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, map[string]string{"file": "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c)
	}
	defer src.Close()

	req := &services.CreateDocumentRequest{
		UserID:   userID,
		FileName: fileHeader.Filename,
		FileType: fileHeader.Header.Get("Content-Type"),
		FileSize: fileHeader.Size,
	}
	if category := c.FormValue("category"); category != "" {
		req.Category = &category
	}

	doc, err := h.documentSvc.Upload(ctx, req, src)
	if err != nil {
		if errors.Is(err, services.ErrObjectStorageDisabled) {
			return common.SendClientError(c, "Object storage is not configured")
		}
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, doc)
}

// GetDocumentURL returns a short-lived download link for a stored object
func (h *DocumentHandlers) GetDocumentURL(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.documentSvc.PresignedURL(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrObjectStorageDisabled) {
			return common.SendClientError(c, "Object storage is not configured")
		}
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
