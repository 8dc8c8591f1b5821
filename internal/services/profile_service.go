package services

import (
	"context"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
)

// CreateProfileRequest carries the business profile payload. Verification is
// excluded: profiles always start unverified.
type CreateProfileRequest struct {
	UserID          uuid.UUID `json:"userId"`
	BusinessName    string    `json:"businessName"`
	BusinessType    string    `json:"businessType"`
	BusinessAddress string    `json:"businessAddress"`
	ContactEmail    string    `json:"contactEmail"`
	ContactPhone    string    `json:"contactPhone"`
	GSTIN           *string   `json:"gstin"`
	UdyamNumber     *string   `json:"udyamNumber"`
}

type ProfileService interface {
	Create(ctx context.Context, req *CreateProfileRequest) (*models.BusinessProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BusinessProfile, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, updates *models.BusinessProfileUpdate) (*models.BusinessProfile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Create(ctx context.Context, req *CreateProfileRequest) (*models.BusinessProfile, error) {
	details := map[string]string{}
	if req.UserID == uuid.Nil {
		details["userId"] = "userId is required"
	}
	if err := common.ValidateRequiredString(req.BusinessName, "businessName"); err != nil {
		details["businessName"] = err.Error()
	}
	if err := common.ValidateRequiredString(req.BusinessType, "businessType"); err != nil {
		details["businessType"] = err.Error()
	}
	if err := common.ValidateRequiredString(req.BusinessAddress, "businessAddress"); err != nil {
		details["businessAddress"] = err.Error()
	}
	if err := common.ValidateRequiredString(req.ContactEmail, "contactEmail"); err != nil {
		details["contactEmail"] = err.Error()
	}
	if err := common.ValidateRequiredString(req.ContactPhone, "contactPhone"); err != nil {
		details["contactPhone"] = err.Error()
	}
	if req.GSTIN != nil {
		if err := common.ValidateGSTIN(*req.GSTIN); err != nil {
			details["gstin"] = err.Error()
		}
	}
	if len(details) > 0 {
		return nil, &common.ValidationError{Details: details}
	}

	profile := &models.BusinessProfile{
		UserID:          req.UserID,
		BusinessName:    req.BusinessName,
		BusinessType:    req.BusinessType,
		BusinessAddress: req.BusinessAddress,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		GSTIN:           req.GSTIN,
		UdyamNumber:     req.UdyamNumber,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BusinessProfile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *profileService) UpdateByUserID(ctx context.Context, userID uuid.UUID, updates *models.BusinessProfileUpdate) (*models.BusinessProfile, error) {
	if updates.GSTIN != nil {
		if err := common.ValidateGSTIN(*updates.GSTIN); err != nil {
			return nil, common.NewValidationError("gstin", err.Error())
		}
	}
	return s.profileRepo.UpdateByUserID(ctx, userID, updates)
}
