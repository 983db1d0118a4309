package config

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch matches every TypeError.
	ErrTypeMismatch = errors.New("config: type mismatch")

	// ErrValidationFailed matches every ValidationError.
	ErrValidationFailed = errors.New("config: validation failed")
)

// ValidationError reports a setting whose value is out of range.
type ValidationError struct {
	Path    string // dotted key, like "mark.ringSize"
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// TypeError reports a setting whose value has the wrong type, like a string
// where a list of command names belongs.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
