package services

import (
	"context"
	"fmt"
	"log"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
)

// CreateApplicationRequest carries the submission payload. Status is
// optional; everything else about the lifecycle is assigned server-side.
type CreateApplicationRequest struct {
	UserID      uuid.UUID        `json:"userId"`
	LicenseType string           `json:"licenseType"`
	Status      string           `json:"status"`
	FormData    models.JSONB     `json:"formData"`
	Documents   []models.FileRef `json:"documents"`
}

type ApplicationService interface {
	Create(ctx context.Context, req *CreateApplicationRequest) (*models.Application, error)
	// Update applies partial adjudication-side changes; unknown ids are
	// NotFoundError and never create a record.
	Update(ctx context.Context, id uuid.UUID, updates *models.ApplicationUpdate) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
}

type applicationService struct {
	applicationRepo  repositories.ApplicationRepository
	notificationRepo repositories.NotificationRepository
}

func NewApplicationService(applicationRepo repositories.ApplicationRepository, notificationRepo repositories.NotificationRepository) ApplicationService {
	return &applicationService{
		applicationRepo:  applicationRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *applicationService) Create(ctx context.Context, req *CreateApplicationRequest) (*models.Application, error) {
	details := map[string]string{}
	if req.UserID == uuid.Nil {
		details["userId"] = "userId is required"
	}
	if req.LicenseType == "" {
		details["licenseType"] = "licenseType is required"
	}
	if req.Status != "" && !validApplicationStatus(req.Status) {
		details["status"] = "status must be one of: pending, approved, rejected"
	}
	if len(details) > 0 {
		return nil, &common.ValidationError{Details: details}
	}

	app := &models.Application{
		UserID:      req.UserID,
		LicenseType: req.LicenseType,
		Status:      req.Status,
		FormData:    req.FormData,
		Documents:   req.Documents,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	// Submission notice is best-effort; the application is already stored.
	notification := &models.Notification{
		UserID:  app.UserID,
		Title:   "Application Submitted",
		Message: fmt.Sprintf("Your %s application %s has been submitted and is pending review.", app.LicenseType, app.DisplayID),
		Type:    models.NotificationTypeInfo,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("WARN: failed to create submission notification for %s: %v", app.DisplayID, err)
	}

	return app, nil
}

func (s *applicationService) Update(ctx context.Context, id uuid.UUID, updates *models.ApplicationUpdate) (*models.Application, error) {
	if updates.Status != nil && !validApplicationStatus(*updates.Status) {
		return nil, common.NewValidationError("status", "status must be one of: pending, approved, rejected")
	}
	return s.applicationRepo.Update(ctx, id, updates)
}

func (s *applicationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return s.applicationRepo.ListByUser(ctx, userID)
}

func validApplicationStatus(status string) bool {
	switch status {
	case models.ApplicationStatusPending, models.ApplicationStatusApproved, models.ApplicationStatusRejected:
		return true
	}
	return false
}
