package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response with field details
func SendValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", message, nil))
}

// SendServerError sends a generic server error response. Internal detail is
// never echoed to the caller.
func SendServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", "Internal server error", nil))
}

// SendDomainError maps a domain error onto the HTTP taxonomy.
func SendDomainError(c echo.Context, err error) error {
	switch e := err.(type) {
	case *ValidationError:
		return SendValidationError(c, e.Details)
	case *NotFoundError:
		return SendNotFoundError(c, e.Resource)
	case *ConflictError:
		return SendConflictError(c, e.Message)
	case *AuthError:
		return SendUnauthorizedError(c, e.Message)
	default:
		return SendServerError(c)
	}
}

// ValidateUUID validates UUID path and payload parameters
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid id", fieldName)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{10}[0-9]{1}[A-Z]{1}[A-Z0-9]{1}$`)

// ValidateGSTIN validates GSTIN format. Empty is allowed; GSTIN is optional.
func ValidateGSTIN(gstin string) error {
	if strings.TrimSpace(gstin) == "" {
		return nil
	}

	// GSTIN format: 22AAAAAAAAAA1A1 (15 characters)
	if len(gstin) != 15 {
		return fmt.Errorf("gstin must be exactly 15 characters")
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("gstin has invalid format")
	}

	return nil
}

// ValidateDocumentCategory checks the fixed category vocabulary. Empty is
// allowed; category is optional.
func ValidateDocumentCategory(category string, allowed []string) error {
	if category == "" {
		return nil
	}
	for _, a := range allowed {
		if category == a {
			return nil
		}
	}
	return fmt.Errorf("category must be one of: %s", strings.Join(allowed, ", "))
}

// GetUserIDFromContext extracts the authenticated user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
