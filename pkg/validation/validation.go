// Package validation provides range checks for spawn parameters and
// configuration values, and sanitization of player names.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPlayerNameLen bounds the length of player names shown in status lines.
const MaxPlayerNameLen = 32

// Sentinel errors wrapped by every validation failure.
var (
	ErrNotFinite   = errors.New("value is not finite")
	ErrNegative    = errors.New("value is negative")
	ErrNotPositive = errors.New("value must be positive")
	ErrOutOfRange  = errors.New("value out of range")
)

var validPlayerNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.<>()]+$`)

// FieldError names the field that failed a check.
type FieldError struct {
	Field string
	Value float64
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, value float64, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}

// Finite rejects NaN and infinities.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fieldError(field, v, ErrNotFinite)
	}
	return nil
}

// NonNegative rejects values below zero.
func NonNegative(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return fieldError(field, v, ErrNegative)
	}
	return nil
}

// Positive rejects values at or below zero.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return fieldError(field, v, ErrNotPositive)
	}
	return nil
}

// Range rejects values outside [lo, hi].
func Range(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return fieldError(field, v, fmt.Errorf("%w [%g, %g]", ErrOutOfRange, lo, hi))
	}
	return nil
}

// AtMost rejects values above limit.
func AtMost(field string, v, limit float64) error {
	return Range(field, v, math.Inf(-1), limit)
}

// Collect joins the non-nil errors, returning nil when all checks passed.
func Collect(errs ...error) error {
	return errors.Join(errs...)
}

// ValidatePlayerName trims and checks a player name.
func ValidatePlayerName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("player name cannot be empty")
	}
	if len(name) > MaxPlayerNameLen {
		return "", fmt.Errorf("player name too long: %d characters (max %d)", len(name), MaxPlayerNameLen)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("player name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("player name cannot be only whitespace")
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("player name contains control characters")
		}
	}
	if !validPlayerNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("player name contains invalid characters")
	}

	return trimmed, nil
}
