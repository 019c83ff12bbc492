package service

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneration is returned when the image generation backend fails.
	// No record is inserted for a failed generation.
	ErrGeneration = errors.New("image generation failed")
	// ErrStorage is returned when the artifact store cannot persist the
	// generated image.
	ErrStorage = errors.New("artifact storage failed")
	// ErrPersistence is returned when the record store backend fails.
	ErrPersistence = errors.New("record persistence failed")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError marks err with the given sentinel while keeping the cause
// chain intact.
func WrapError(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
