package services

import (
	"context"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
)

// CreateNotificationRequest carries the payload for a new feed entry.
type CreateNotificationRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Type    string    `json:"type"`
}

type NotificationService interface {
	Create(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Create(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error) {
	details := map[string]string{}
	if req.UserID == uuid.Nil {
		details["userId"] = "userId is required"
	}
	if req.Title == "" {
		details["title"] = "title is required"
	}
	if req.Message == "" {
		details["message"] = "message is required"
	}
	if !validNotificationType(req.Type) {
		details["type"] = "type must be one of: urgent, info, success, warning"
	}
	if len(details) > 0 {
		return nil, &common.ValidationError{Details: details}
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.notificationRepo.MarkRead(ctx, id)
}

func validNotificationType(t string) bool {
	switch t {
	case models.NotificationTypeUrgent, models.NotificationTypeInfo,
		models.NotificationTypeSuccess, models.NotificationTypeWarning:
		return true
	}
	return false
}
