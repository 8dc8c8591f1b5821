package services

import (
	"context"
	"strings"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

// LoginResult is what a successful login returns: the public user projection,
// the business profile when one exists, and a session token.
type LoginResult struct {
	User            models.PublicUser       `json:"user"`
	BusinessProfile *models.BusinessProfile `json:"businessProfile"`
	Token           string                  `json:"token"`
}

type AuthService interface {
	// Register validates the payload, hashes the credential and creates the
	// account. Returns ConflictError when the username is taken. The
	// credential is never echoed back.
	Register(ctx context.Context, req *RegisterRequest) (*models.PublicUser, error)
	// Login verifies the credential and returns the user with their profile.
	// A missing profile is not an error; bad credentials are AuthError either
	// way, so the response does not reveal whether the username exists.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// IssueToken signs a session token for the user.
	IssueToken(userID uuid.UUID) (string, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	jwtSecret   []byte
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.PublicUser, error) {
	details := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		details["username"] = "username is required"
	}
	if req.Password == "" {
		details["password"] = "password is required"
	} else if len(req.Password) < 6 {
		details["password"] = "password must be at least 6 characters"
	}
	if len(details) > 0 {
		return nil, &common.ValidationError{Details: details}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, common.NewValidationError("credentials", "username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, &common.AuthError{Message: "Invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &common.AuthError{Message: "Invalid credentials"}
	}

	// A user may not have created a profile yet; that is not an error.
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !common.IsNotFound(err) {
		return nil, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:            user.Public(),
		BusinessProfile: profile,
		Token:           token,
	}, nil
}

func (s *authService) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
