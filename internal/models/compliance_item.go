package models

import (
	"time"

	"github.com/google/uuid"
)

// Compliance item statuses.
const (
	ComplianceStatusUpcoming = "upcoming"
	ComplianceStatusOverdue  = "overdue"
	ComplianceStatusFiled    = "filed"
)

// Filing frequencies.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnual    = "annual"
)

// ComplianceItem is one instance of a recurring regulatory obligation.
// Filing does not mutate NextDue in place; a successor item is created for
// the next cycle so the filing history stays intact.
type ComplianceItem struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"userId" db:"user_id"`
	ItemName     string     `json:"itemName" db:"item_name"`
	ItemType     string     `json:"itemType" db:"item_type"`
	Frequency    string     `json:"frequency" db:"frequency"`
	LastFiled    *time.Time `json:"lastFiled" db:"last_filed"`
	NextDue      time.Time  `json:"nextDue" db:"next_due"`
	Status       string     `json:"status" db:"status"`
	ReminderSent bool       `json:"reminderSent" db:"reminder_sent"`
}

// ComplianceItemUpdate carries partial updates to a compliance item.
type ComplianceItemUpdate struct {
	Status       *string    `json:"status"`
	LastFiled    *time.Time `json:"lastFiled"`
	ReminderSent *bool      `json:"reminderSent"`
}
