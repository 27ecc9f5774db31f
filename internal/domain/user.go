package domain

import (
	"fmt"
	"strings"
	"time"
)

// Common validation errors. Both match ErrValidation.
var (
	ErrEmptyUserName = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrEmptyEmail    = fmt.Errorf("%w: email cannot be empty", ErrValidation)
)

// User is a person tasks can be assigned to.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given name and email.
// The email is lower-cased and both fields are trimmed. The ID is assigned by the store.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyUserName)
	}

	if u.Email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}

	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
	}

	return nil
}

// Ref returns the summary embedded in tasks assigned to this user.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// validateEmailFormat performs basic validation of email format:
// a non-empty local part, an @, and a domain containing an inner dot.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return false
	}

	domainPart := email[at+1:]
	if len(domainPart) < 3 {
		return false
	}

	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
