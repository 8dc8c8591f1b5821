package services

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
)

// ErrObjectStorageDisabled is returned by object operations when no MinIO
// client is configured. Metadata operations always work.
var ErrObjectStorageDisabled = errors.New("object storage is not configured")

const presignedURLTTL = 15 * time.Minute

// CreateDocumentRequest carries the metadata payload for an uploaded file.
type CreateDocumentRequest struct {
	UserID   uuid.UUID `json:"userId"`
	FileName string    `json:"fileName"`
	FileType string    `json:"fileType"`
	FileSize int64     `json:"fileSize"`
	Category *string   `json:"category"`
}

type DocumentService interface {
	Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
	// Delete removes the metadata record and reports whether it existed.
	// Deletion is terminal; the stored object, if any, is removed best-effort.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// Upload stores the object bytes and the metadata record together.
	Upload(ctx context.Context, req *CreateDocumentRequest, reader io.Reader) (*models.Document, error)
	// PresignedURL returns a short-lived download link for the stored object.
	PresignedURL(ctx context.Context, id uuid.UUID) (string, error)
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	minioSvc     MinioService // nil when object storage is not configured
	bucket       string
}

func NewDocumentService(documentRepo repositories.DocumentRepository, minioSvc MinioService, bucket string) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		minioSvc:     minioSvc,
		bucket:       bucket,
	}
}

func (s *documentService) Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	doc := &models.Document{
		UserID:   req.UserID,
		FileName: req.FileName,
		FileType: req.FileType,
		FileSize: req.FileSize,
		Category: req.Category,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	return s.documentRepo.ListByUser(ctx, userID)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.documentRepo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if s.minioSvc != nil {
		if err := s.minioSvc.DeleteObject(ctx, s.bucket, id.String()); err != nil {
			log.Printf("WARN: failed to remove object for document %s: %v", id, err)
		}
	}
	return true, nil
}

func (s *documentService) Upload(ctx context.Context, req *CreateDocumentRequest, reader io.Reader) (*models.Document, error) {
	if s.minioSvc == nil {
		return nil, ErrObjectStorageDisabled
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	doc := &models.Document{
		UserID:   req.UserID,
		FileName: req.FileName,
		FileType: req.FileType,
		FileSize: req.FileSize,
		Category: req.Category,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.minioSvc.UploadObject(ctx, s.bucket, doc.ID.String(), doc.FileType, reader, doc.FileSize); err != nil {
		// Keep the store consistent: no object means no metadata record.
		if _, delErr := s.documentRepo.Delete(ctx, doc.ID); delErr != nil {
			log.Printf("WARN: failed to roll back document %s after upload error: %v", doc.ID, delErr)
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) PresignedURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.minioSvc == nil {
		return "", ErrObjectStorageDisabled
	}
	if _, err := s.documentRepo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return s.minioSvc.GetPresignedURL(ctx, s.bucket, id.String(), presignedURLTTL)
}

func (s *documentService) validate(req *CreateDocumentRequest) error {
	details := map[string]string{}
	if req.UserID == uuid.Nil {
		details["userId"] = "userId is required"
	}
	if req.FileName == "" {
		details["fileName"] = "fileName is required"
	}
	if req.FileType == "" {
		details["fileType"] = "fileType is required"
	}
	if req.FileSize < 0 {
		details["fileSize"] = "fileSize must be a non-negative integer"
	}
	if req.Category != nil {
		if err := common.ValidateDocumentCategory(*req.Category, models.DocumentCategories); err != nil {
			details["category"] = err.Error()
		}
	}
	if len(details) > 0 {
		return &common.ValidationError{Details: details}
	}
	return nil
}
