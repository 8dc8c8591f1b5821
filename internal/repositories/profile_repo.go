package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository interface {
	// Create assigns id and timestamps and stores the profile. At most one
	// profile may exist per user; a second create returns ConflictError.
	Create(ctx context.Context, profile *models.BusinessProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BusinessProfile, error)
	// UpdateByUserID merges the provided fields onto the existing profile and
	// refreshes UpdatedAt. Returns NotFoundError when the user has no profile.
	UpdateByUserID(ctx context.Context, userID uuid.UUID, updates *models.BusinessProfileUpdate) (*models.BusinessProfile, error)
}

type profileRepo struct {
	db DB
}

func NewProfileRepo(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.BusinessProfile) error {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM business_profiles WHERE user_id = $1`, profile.UserID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check profile uniqueness: %w", err)
	}
	if count > 0 {
		return &common.ConflictError{Message: "business profile already exists for this user"}
	}

	profile.ID = uuid.New()
	profile.IsVerified = false
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO business_profiles (id, user_id, business_name, business_type, business_address, contact_email, contact_phone, gstin, udyam_number, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.Exec(ctx, query,
		profile.ID, profile.UserID, profile.BusinessName, profile.BusinessType,
		profile.BusinessAddress, profile.ContactEmail, profile.ContactPhone,
		profile.GSTIN, profile.UdyamNumber, profile.IsVerified, profile.CreatedAt, profile.UpdatedAt)
	if isUniqueViolation(err) {
		return &common.ConflictError{Message: "business profile already exists for this user"}
	}
	return err
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BusinessProfile, error) {
	profile := &models.BusinessProfile{}
	query := `
		SELECT id, user_id, business_name, business_type, business_address, contact_email, contact_phone, gstin, udyam_number, is_verified, created_at, updated_at
		FROM business_profiles
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.BusinessName, &profile.BusinessType,
		&profile.BusinessAddress, &profile.ContactEmail, &profile.ContactPhone,
		&profile.GSTIN, &profile.UdyamNumber, &profile.IsVerified, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Profile"}
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) UpdateByUserID(ctx context.Context, userID uuid.UUID, updates *models.BusinessProfileUpdate) (*models.BusinessProfile, error) {
	existing, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(existing, updates)
	existing.UpdatedAt = time.Now()

	query := `
		UPDATE business_profiles
		SET business_name = $1, business_type = $2, business_address = $3, contact_email = $4, contact_phone = $5, gstin = $6, udyam_number = $7, updated_at = $8
		WHERE user_id = $9
	`
	_, err = r.db.Exec(ctx, query,
		existing.BusinessName, existing.BusinessType, existing.BusinessAddress,
		existing.ContactEmail, existing.ContactPhone, existing.GSTIN,
		existing.UdyamNumber, existing.UpdatedAt, userID)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// applyProfileUpdate merges non-nil fields onto the profile. Shared by the
// Postgres and in-memory stores so partial-update semantics stay identical.
func applyProfileUpdate(p *models.BusinessProfile, u *models.BusinessProfileUpdate) {
	if u.BusinessName != nil {
		p.BusinessName = *u.BusinessName
	}
	if u.BusinessType != nil {
		p.BusinessType = *u.BusinessType
	}
	if u.BusinessAddress != nil {
		p.BusinessAddress = *u.BusinessAddress
	}
	if u.ContactEmail != nil {
		p.ContactEmail = *u.ContactEmail
	}
	if u.ContactPhone != nil {
		p.ContactPhone = *u.ContactPhone
	}
	if u.GSTIN != nil {
		p.GSTIN = u.GSTIN
	}
	if u.UdyamNumber != nil {
		p.UdyamNumber = u.UdyamNumber
	}
}
