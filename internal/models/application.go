package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// FileRef is a lightweight reference to a file attached to an application.
// It is loose metadata, not a foreign key into the document vault.
type FileRef struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Application tracks one license request through its status lifecycle.
// DisplayID is the human-readable code shown to applicants (BIZDEL001, ...),
// distinct from the storage id.
type Application struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	UserID             uuid.UUID  `json:"userId" db:"user_id"`
	DisplayID          string     `json:"applicationId" db:"application_id"`
	LicenseType        string     `json:"licenseType" db:"license_type"`
	Status             string     `json:"status" db:"status"`
	SubmittedDate      time.Time  `json:"submittedDate" db:"submitted_date"`
	ExpectedCompletion time.Time  `json:"expectedCompletion" db:"expected_completion"`
	ApprovedDate       *time.Time `json:"approvedDate" db:"approved_date"`
	ValidUntil         *time.Time `json:"validUntil" db:"valid_until"`
	QueryRaised        *string    `json:"queryRaised" db:"query_raised"`
	Notes              *string    `json:"notes" db:"notes"`
	FormData           JSONB      `json:"formData" db:"form_data"`
	Documents          []FileRef  `json:"documents" db:"documents"`
}

// ApplicationUpdate carries partial updates applied by the adjudication side.
type ApplicationUpdate struct {
	Status       *string    `json:"status"`
	ApprovedDate *time.Time `json:"approvedDate"`
	ValidUntil   *time.Time `json:"validUntil"`
	QueryRaised  *string    `json:"queryRaised"`
	Notes        *string    `json:"notes"`
}

// JSONB represents a free-form structured payload persisted as jsonb.
type JSONB map[string]interface{}
