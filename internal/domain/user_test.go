package domain

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Ada Lovelace ", " Ada@Example.com ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "Ada Lovelace" {
		t.Errorf("Expected trimmed name, got %q", user.Name)
	}

	if user.Email != "ada@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Test missing name
	_, err = NewUser("", "ada@example.com")
	if !errors.Is(err, ErrEmptyUserName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserName, err)
	}

	// Whitespace-only name is a validation failure
	_, err = NewUser("   ", "ada@example.com")
	if !errors.Is(err, ErrEmptyUserName) || !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for blank name, got %v", err)
	}

	// Test missing email
	_, err = NewUser("Ada", "")
	if !errors.Is(err, ErrEmptyEmail) || !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := map[string]bool{
		"user@example.com": true,
		"a@b.c":            true,
		"invalidemail":     false,
		"@example.com":     false,
		"user@":            false,
		"user@com":         false,
		"user@.com":        false,
		"user@example.":    false,
		"a@b@example.com":  false,
	}

	for email, want := range cases {
		if got := validateEmailFormat(email); got != want {
			t.Errorf("validateEmailFormat(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestUserValidateInvalidEmail(t *testing.T) {
	user := User{Name: "Ada", Email: "not-an-email"}

	err := user.Validate()

	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "email" {
		t.Errorf("Expected validation error for email field, got %v", err)
	}
}
