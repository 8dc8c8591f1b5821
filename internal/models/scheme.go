package models

import "github.com/google/uuid"

// Government levels for schemes.
const (
	GovernmentLevelCentral = "central"
	GovernmentLevelState   = "state"
	GovernmentLevelLocal   = "local"
)

// Scheme is one government incentive program in the read-only catalog.
// EligibilityCriteria is inert structured data for human consumption; nothing
// in the system evaluates it against a profile.
type Scheme struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	SchemeName          string    `json:"schemeName" db:"scheme_name"`
	SchemeType          string    `json:"schemeType" db:"scheme_type"`
	Description         string    `json:"description" db:"description"`
	EligibilityCriteria JSONB     `json:"eligibilityCriteria" db:"eligibility_criteria"`
	FundingRange        string    `json:"fundingRange" db:"funding_range"`
	ApplicationURL      string    `json:"applicationUrl" db:"application_url"`
	IsActive            bool      `json:"isActive" db:"is_active"`
	GovernmentLevel     string    `json:"governmentLevel" db:"government_level"`
}
