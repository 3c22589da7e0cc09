package services

import (
	"errors"

	apperrors "github.com/fitcoach/coaching-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found - complete your profile first")
	ErrProfileExists   = errors.New("profile already exists for this user")
	ErrTrainerNotFound = errors.New("trainer not found")

	// Linkage errors. A student that does not exist and a student that is
	// not linked to the calling trainer produce the same error so callers
	// cannot probe which students exist.
	ErrStudentNotLinked = errors.New("student not found or not assigned to this trainer")

	// Resource errors
	ErrStudentRecordNotFound = errors.New("student record not found")
	ErrAnamnesisNotFound     = errors.New("anamnesis not found")
	ErrMaterialNotFound      = errors.New("material not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrStudentNotLinked) ||
		errors.Is(err, ErrStudentRecordNotFound) ||
		errors.Is(err, ErrAnamnesisNotFound) ||
		errors.Is(err, ErrMaterialNotFound) ||
		errors.Is(err, ErrTrainerNotFound)
}

// IsForbidden checks if error represents a "forbidden" condition
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrProfileExists)
}
