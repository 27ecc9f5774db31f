package domain

import "regexp"

// objectIDPattern matches the 24 character hexadecimal form of a document ID.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether id has the 24 character hexadecimal format used
// for task and user identifiers.
func IsValidID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// ValidateID returns an ErrInvalidID validation error naming the entity when
// id is malformed, and an ErrValidation error when it is empty.
func ValidateID(entity, id string) error {
	if id == "" {
		return NewValidationError(entity+"Id", "is required", ErrValidation)
	}
	if !IsValidID(id) {
		return NewValidationError("", "Please provide a valid "+entity+" ID", ErrInvalidID)
	}
	return nil
}
