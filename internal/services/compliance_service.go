package services

import (
	"context"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
)

// CreateComplianceItemRequest carries the payload for a new obligation
// instance.
type CreateComplianceItemRequest struct {
	UserID    uuid.UUID  `json:"userId"`
	ItemName  string     `json:"itemName"`
	ItemType  string     `json:"itemType"`
	Frequency string     `json:"frequency"`
	NextDue   time.Time  `json:"nextDue"`
	LastFiled *time.Time `json:"lastFiled"`
}

type ComplianceService interface {
	Create(ctx context.Context, req *CreateComplianceItemRequest) (*models.ComplianceItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ComplianceItem, error)
	Update(ctx context.Context, id uuid.UUID, updates *models.ComplianceItemUpdate) (*models.ComplianceItem, error)
	// MarkFiled stamps the item as filed and creates the successor instance
	// for the next cycle. The filing history stays intact: NextDue is never
	// mutated in place.
	MarkFiled(ctx context.Context, id uuid.UUID, filedAt time.Time) (*models.ComplianceItem, *models.ComplianceItem, error)
}

type complianceService struct {
	complianceRepo repositories.ComplianceRepository
}

func NewComplianceService(complianceRepo repositories.ComplianceRepository) ComplianceService {
	return &complianceService{complianceRepo: complianceRepo}
}

func (s *complianceService) Create(ctx context.Context, req *CreateComplianceItemRequest) (*models.ComplianceItem, error) {
	details := map[string]string{}
	if req.UserID == uuid.Nil {
		details["userId"] = "userId is required"
	}
	if req.ItemName == "" {
		details["itemName"] = "itemName is required"
	}
	if req.ItemType == "" {
		details["itemType"] = "itemType is required"
	}
	if req.Frequency == "" {
		details["frequency"] = "frequency is required"
	}
	if req.NextDue.IsZero() {
		details["nextDue"] = "nextDue is required"
	}
	if len(details) > 0 {
		return nil, &common.ValidationError{Details: details}
	}

	item := &models.ComplianceItem{
		UserID:    req.UserID,
		ItemName:  req.ItemName,
		ItemType:  req.ItemType,
		Frequency: req.Frequency,
		NextDue:   req.NextDue,
		LastFiled: req.LastFiled,
	}
	if err := s.complianceRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *complianceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ComplianceItem, error) {
	return s.complianceRepo.ListByUser(ctx, userID)
}

func (s *complianceService) Update(ctx context.Context, id uuid.UUID, updates *models.ComplianceItemUpdate) (*models.ComplianceItem, error) {
	return s.complianceRepo.Update(ctx, id, updates)
}

func (s *complianceService) MarkFiled(ctx context.Context, id uuid.UUID, filedAt time.Time) (*models.ComplianceItem, *models.ComplianceItem, error) {
	item, err := s.complianceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item.Status == models.ComplianceStatusFiled {
		return nil, nil, &common.ConflictError{Message: "compliance item is already filed"}
	}

	filedStatus := models.ComplianceStatusFiled
	filed, err := s.complianceRepo.Update(ctx, id, &models.ComplianceItemUpdate{
		Status:    &filedStatus,
		LastFiled: &filedAt,
	})
	if err != nil {
		return nil, nil, err
	}

	successor := &models.ComplianceItem{
		UserID:    item.UserID,
		ItemName:  item.ItemName,
		ItemType:  item.ItemType,
		Frequency: item.Frequency,
		LastFiled: &filedAt,
		NextDue:   AdvanceDueDate(item.NextDue, item.Frequency),
	}
	if err := s.complianceRepo.Create(ctx, successor); err != nil {
		return nil, nil, err
	}

	return filed, successor, nil
}

// AdvanceDueDate moves a due date forward by one filing cycle. Unknown
// frequencies fall back to annual.
func AdvanceDueDate(due time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyMonthly:
		return due.AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		return due.AddDate(0, 3, 0)
	default:
		return due.AddDate(1, 0, 0)
	}
}
