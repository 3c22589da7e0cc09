package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("measurement_date", "is required", "")

	if err.Field != "measurement_date" {
		t.Errorf("Expected field to be 'measurement_date', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'measurement_date': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("role", "must be a valid user role (student, trainer)", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("role", "must be a valid user role (student, trainer)", "user_role", "admin")

	if err.Rule != "user_role" {
		t.Errorf("Expected rule to be 'user_role', got '%s'", err.Rule)
	}

	if err.Value != "admin" {
		t.Errorf("Expected value to be 'admin', got '%v'", err.Value)
	}
}
