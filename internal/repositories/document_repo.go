package repositories

import (
	"context"
	"errors"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DocumentRepository interface {
	// Create assigns the id and upload time, then stores the metadata record.
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
	// Delete removes the record and reports whether it existed. Deleting an
	// unknown id is not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type documentRepo struct {
	db DB
}

func NewDocumentRepo(db DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = uuid.New()
	doc.UploadDate = time.Now()
	doc.IsVerified = false

	query := `
		INSERT INTO documents (id, user_id, file_name, file_type, file_size, upload_date, category, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.UserID, doc.FileName, doc.FileType, doc.FileSize,
		doc.UploadDate, doc.Category, doc.IsVerified)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, user_id, file_name, file_type, file_size, upload_date, category, is_verified
		FROM documents
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.UserID, &doc.FileName, &doc.FileType, &doc.FileSize,
		&doc.UploadDate, &doc.Category, &doc.IsVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Document"}
		}
		return nil, err
	}
	return doc, nil
}

func (r *documentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, user_id, file_name, file_type, file_size, upload_date, category, is_verified
		FROM documents
		WHERE user_id = $1
		ORDER BY upload_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.FileType, &doc.FileSize,
			&doc.UploadDate, &doc.Category, &doc.IsVerified); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
