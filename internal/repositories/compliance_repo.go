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

type ComplianceRepository interface {
	// Create assigns the id and default status, then stores the item.
	Create(ctx context.Context, item *models.ComplianceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ComplianceItem, error)
	Update(ctx context.Context, id uuid.UUID, updates *models.ComplianceItemUpdate) (*models.ComplianceItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ComplianceItem, error)
	// ListDueBefore returns unfiled items across all users with NextDue before
	// the cutoff. Used by the reminder sweep.
	ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.ComplianceItem, error)
}

type complianceRepo struct {
	db DB
}

func NewComplianceRepo(db DB) ComplianceRepository {
	return &complianceRepo{db: db}
}

func (r *complianceRepo) Create(ctx context.Context, item *models.ComplianceItem) error {
	item.ID = uuid.New()
	if item.Status == "" {
		item.Status = models.ComplianceStatusUpcoming
	}

	query := `
		INSERT INTO compliance_items (id, user_id, item_name, item_type, frequency, last_filed, next_due, status, reminder_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.UserID, item.ItemName, item.ItemType, item.Frequency,
		item.LastFiled, item.NextDue, item.Status, item.ReminderSent)
	return err
}

func (r *complianceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ComplianceItem, error) {
	item := &models.ComplianceItem{}
	query := `
		SELECT id, user_id, item_name, item_type, frequency, last_filed, next_due, status, reminder_sent
		FROM compliance_items
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.UserID, &item.ItemName, &item.ItemType, &item.Frequency,
		&item.LastFiled, &item.NextDue, &item.Status, &item.ReminderSent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "Compliance item"}
		}
		return nil, err
	}
	return item, nil
}

func (r *complianceRepo) Update(ctx context.Context, id uuid.UUID, updates *models.ComplianceItemUpdate) (*models.ComplianceItem, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyComplianceUpdate(existing, updates)

	query := `
		UPDATE compliance_items
		SET status = $1, last_filed = $2, reminder_sent = $3
		WHERE id = $4
	`
	_, err = r.db.Exec(ctx, query, existing.Status, existing.LastFiled, existing.ReminderSent, id)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *complianceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ComplianceItem, error) {
	query := `
		SELECT id, user_id, item_name, item_type, frequency, last_filed, next_due, status, reminder_sent
		FROM compliance_items
		WHERE user_id = $1
		ORDER BY next_due ASC
	`
	return r.list(ctx, query, userID)
}

func (r *complianceRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.ComplianceItem, error) {
	query := `
		SELECT id, user_id, item_name, item_type, frequency, last_filed, next_due, status, reminder_sent
		FROM compliance_items
		WHERE next_due < $1 AND status != $2
		ORDER BY next_due ASC
	`
	return r.list(ctx, query, cutoff, models.ComplianceStatusFiled)
}

func (r *complianceRepo) list(ctx context.Context, query string, args ...any) ([]*models.ComplianceItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ComplianceItem
	for rows.Next() {
		item := &models.ComplianceItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemName, &item.ItemType, &item.Frequency,
			&item.LastFiled, &item.NextDue, &item.Status, &item.ReminderSent); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func applyComplianceUpdate(i *models.ComplianceItem, u *models.ComplianceItemUpdate) {
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.LastFiled != nil {
		i.LastFiled = u.LastFiled
	}
	if u.ReminderSent != nil {
		i.ReminderSent = *u.ReminderSent
	}
}
