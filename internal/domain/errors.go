package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConflictError represents a name collision with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflict builds a ConflictError for a named resource.
func NewConflict(resourceType, resourceID, name string) *ConflictError {
	return &ConflictError{
		Message:      fmt.Sprintf("a %s named %q already exists in this location", resourceType, name),
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}
