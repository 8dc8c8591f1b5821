package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DisplayIDPrefix is the fixed prefix of the human-readable application code.
const DisplayIDPrefix = "BIZDEL"

// FormatDisplayID renders the zero-padded application code, e.g. BIZDEL001.
func FormatDisplayID(seq int64) string {
	return fmt.Sprintf("%s%03d", DisplayIDPrefix, seq)
}

type ApplicationRepository interface {
	// Create assigns the id, display id, submission time and default status,
	// then stores the application. Display ids come from a store-wide
	// sequence, never a row count, so they stay unique under concurrent
	// creation.
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	// Update merges the provided fields onto the existing record. Returns
	// NotFoundError for an unknown id; it never creates a record.
	Update(ctx context.Context, id uuid.UUID, updates *models.ApplicationUpdate) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error)
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepo(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	var seq int64
	err := r.db.QueryRow(ctx, `SELECT nextval('application_display_seq')`).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to allocate display id: %w", err)
	}

	app.ID = uuid.New()
	app.DisplayID = FormatDisplayID(seq)
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	app.SubmittedDate = time.Now()
	app.ExpectedCompletion = app.SubmittedDate.AddDate(0, 0, 15)

	formData, err := json.Marshal(app.FormData)
	if err != nil {
		return fmt.Errorf("failed to encode form data: %w", err)
	}
	docs, err := json.Marshal(app.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}

	query := `
		INSERT INTO applications (id, user_id, application_id, license_type, status, submitted_date, expected_completion, approved_date, valid_until, query_raised, notes, form_data, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.db.Exec(ctx, query,
		app.ID, app.UserID, app.DisplayID, app.LicenseType, app.Status,
		app.SubmittedDate, app.ExpectedCompletion, app.ApprovedDate, app.ValidUntil,
		app.QueryRaised, app.Notes, formData, docs)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `
		SELECT id, user_id, application_id, license_type, status, submitted_date, expected_completion, approved_date, valid_until, query_raised, notes, form_data, documents
		FROM applications
		WHERE id = $1
	`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Application"}
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) Update(ctx context.Context, id uuid.UUID, updates *models.ApplicationUpdate) (*models.Application, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyApplicationUpdate(existing, updates)

	query := `
		UPDATE applications
		SET status = $1, approved_date = $2, valid_until = $3, query_raised = $4, notes = $5
		WHERE id = $6
	`
	_, err = r.db.Exec(ctx, query,
		existing.Status, existing.ApprovedDate, existing.ValidUntil,
		existing.QueryRaised, existing.Notes, id)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	query := `
		SELECT id, user_id, application_id, license_type, status, submitted_date, expected_completion, approved_date, valid_until, query_raised, notes, form_data, documents
		FROM applications
		WHERE user_id = $1
		ORDER BY submitted_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	var formData, docs []byte
	err := row.Scan(&app.ID, &app.UserID, &app.DisplayID, &app.LicenseType, &app.Status,
		&app.SubmittedDate, &app.ExpectedCompletion, &app.ApprovedDate, &app.ValidUntil,
		&app.QueryRaised, &app.Notes, &formData, &docs)
	if err != nil {
		return nil, err
	}
	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &app.FormData); err != nil {
			return nil, fmt.Errorf("failed to decode form data: %w", err)
		}
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &app.Documents); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}
	}
	return app, nil
}

func applyApplicationUpdate(a *models.Application, u *models.ApplicationUpdate) {
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.ApprovedDate != nil {
		a.ApprovedDate = u.ApprovedDate
	}
	if u.ValidUntil != nil {
		a.ValidUntil = u.ValidUntil
	}
	if u.QueryRaised != nil {
		a.QueryRaised = u.QueryRaised
	}
	if u.Notes != nil {
		a.Notes = u.Notes
	}
}
