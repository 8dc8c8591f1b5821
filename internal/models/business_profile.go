package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfile is the single business-identity record a user maintains.
// At most one profile exists per user.
type BusinessProfile struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	BusinessName    string    `json:"businessName" db:"business_name"`
	BusinessType    string    `json:"businessType" db:"business_type"`
	BusinessAddress string    `json:"businessAddress" db:"business_address"`
	ContactEmail    string    `json:"contactEmail" db:"contact_email"`
	ContactPhone    string    `json:"contactPhone" db:"contact_phone"`
	GSTIN           *string   `json:"gstin" db:"gstin"`
	UdyamNumber     *string   `json:"udyamNumber" db:"udyam_number"`
	IsVerified      bool      `json:"isVerified" db:"is_verified"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// BusinessProfileUpdate carries the fields a partial profile update may touch.
// Nil means "leave unchanged". IsVerified is deliberately absent: it is set by
// the verification workflow, not by the owning user.
type BusinessProfileUpdate struct {
	BusinessName    *string `json:"businessName"`
	BusinessType    *string `json:"businessType"`
	BusinessAddress *string `json:"businessAddress"`
	ContactEmail    *string `json:"contactEmail"`
	ContactPhone    *string `json:"contactPhone"`
	GSTIN           *string `json:"gstin"`
	UdyamNumber     *string `json:"udyamNumber"`
}
