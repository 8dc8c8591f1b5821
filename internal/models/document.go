package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCategories is the fixed vocabulary for Document.Category.
var DocumentCategories = []string{
	"identity", "address", "business", "financial", "tax", "licenses", "other",
}

// Document is the metadata record for one uploaded file. When object storage
// is configured the bytes live in the bucket under the document id; the record
// itself is only metadata either way.
type Document struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FileType   string    `json:"fileType" db:"file_type"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	UploadDate time.Time `json:"uploadDate" db:"upload_date"`
	Category   *string   `json:"category" db:"category"`
	IsVerified bool      `json:"isVerified" db:"is_verified"`
}
