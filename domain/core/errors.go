package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrConfiguration      = errors.New("invalid configuration")
	ErrSubjectColumn      = fmt.Errorf("%w: invalid subject column name", ErrConfiguration)
	ErrGroupVariable      = fmt.Errorf("%w: invalid grouping variable", ErrConfiguration)
	ErrInsufficientColors = errors.New("insufficient colors in palette")

	// Data errors
	ErrEmptyInput = errors.New("no input tables supplied")
)

// Error constructors with context
func NewSubjectColumnError(column, strain string) error {
	return fmt.Errorf("%w: column %q not present in table %q", ErrSubjectColumn, column, strain)
}

func NewGroupVariableError(name, reason string) error {
	return fmt.Errorf("%w: %q %s", ErrGroupVariable, name, reason)
}

func NewInsufficientColorsError(have, need int) error {
	return fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientColors, have, need)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsInsufficientColorsError(err error) bool {
	return errors.Is(err, ErrInsufficientColors)
}
