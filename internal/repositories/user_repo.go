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

type UserRepository interface {
	// Create assigns the id and creation time, then stores the user.
	// Returns ConflictError when the username is already taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepo(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	var count int
	usernameCheckQuery := `SELECT COUNT(*) FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, usernameCheckQuery, user.Username).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if count > 0 {
		return &common.ConflictError{Message: fmt.Sprintf("username '%s' already exists", user.Username)}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (id, username, password_hash, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.Email, user.Phone, user.CreatedAt)
	if isUniqueViolation(err) {
		return &common.ConflictError{Message: fmt.Sprintf("username '%s' already exists", user.Username)}
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, password_hash, email, phone, created_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "User"}
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, password_hash, email, phone, created_at
		FROM users
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &common.NotFoundError{Resource: "User"}
		}
		return nil, err
	}
	return user, nil
}
