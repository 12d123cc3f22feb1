package errors

import (
	"errors"
	"fmt"
)

// Domain error types for the decision pipeline

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Pipeline-specific errors

var (
	// ErrStageFailed indicates a workflow stage failed fatally
	ErrStageFailed = errors.New("workflow stage failed")

	// ErrModelUnavailable indicates the model backend cannot be reached
	ErrModelUnavailable = errors.New("model backend unavailable")
)

// Dataflow-specific errors

var (
	// ErrProviderUnavailable indicates no market data provider responded
	ErrProviderUnavailable = errors.New("data provider unavailable")

	// ErrInvalidSymbol indicates an invalid trading symbol
	ErrInvalidSymbol = errors.New("invalid trading symbol")

	// ErrRateLimitExceeded indicates an upstream rate limit was hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
