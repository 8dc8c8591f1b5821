package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"bizdel/internal/models"

	"github.com/google/uuid"
)

type SchemeRepository interface {
	// Create is used for seeding only; the catalog is not user-writable
	// through the API.
	Create(ctx context.Context, scheme *models.Scheme) error
	// ListActive returns all schemes with the visibility flag set.
	ListActive(ctx context.Context) ([]*models.Scheme, error)
	// ListActiveByType filters active schemes by exact scheme type.
	ListActiveByType(ctx context.Context, schemeType string) ([]*models.Scheme, error)
	Count(ctx context.Context) (int, error)
}

type schemeRepo struct {
	db DB
}

func NewSchemeRepo(db DB) SchemeRepository {
	return &schemeRepo{db: db}
}

func (r *schemeRepo) Create(ctx context.Context, scheme *models.Scheme) error {
	if scheme.ID == uuid.Nil {
		scheme.ID = uuid.New()
	}

	criteria, err := json.Marshal(scheme.EligibilityCriteria)
	if err != nil {
		return fmt.Errorf("failed to encode eligibility criteria: %w", err)
	}

	query := `
		INSERT INTO schemes (id, scheme_name, scheme_type, description, eligibility_criteria, funding_range, application_url, is_active, government_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query,
		scheme.ID, scheme.SchemeName, scheme.SchemeType, scheme.Description,
		criteria, scheme.FundingRange, scheme.ApplicationURL, scheme.IsActive, scheme.GovernmentLevel)
	return err
}

func (r *schemeRepo) ListActive(ctx context.Context) ([]*models.Scheme, error) {
	query := `
		SELECT id, scheme_name, scheme_type, description, eligibility_criteria, funding_range, application_url, is_active, government_level
		FROM schemes
		WHERE is_active = true
		ORDER BY scheme_name ASC
	`
	return r.list(ctx, query)
}

func (r *schemeRepo) ListActiveByType(ctx context.Context, schemeType string) ([]*models.Scheme, error) {
	query := `
		SELECT id, scheme_name, scheme_type, description, eligibility_criteria, funding_range, application_url, is_active, government_level
		FROM schemes
		WHERE is_active = true AND scheme_type = $1
		ORDER BY scheme_name ASC
	`
	return r.list(ctx, query, schemeType)
}

func (r *schemeRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM schemes`).Scan(&count)
	return count, err
}

func (r *schemeRepo) list(ctx context.Context, query string, args ...any) ([]*models.Scheme, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemes []*models.Scheme
	for rows.Next() {
		scheme := &models.Scheme{}
		var criteria []byte
		if err := rows.Scan(&scheme.ID, &scheme.SchemeName, &scheme.SchemeType, &scheme.Description,
			&criteria, &scheme.FundingRange, &scheme.ApplicationURL, &scheme.IsActive, &scheme.GovernmentLevel); err != nil {
			return nil, err
		}
		if len(criteria) > 0 {
			if err := json.Unmarshal(criteria, &scheme.EligibilityCriteria); err != nil {
				return nil, fmt.Errorf("failed to decode eligibility criteria: %w", err)
			}
		}
		schemes = append(schemes, scheme)
	}
	return schemes, rows.Err()
}
