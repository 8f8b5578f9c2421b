package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNumericChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"finite ok", Finite("x", 3), nil},
		{"finite nan", Finite("x", math.NaN()), ErrNotFinite},
		{"finite inf", Finite("x", math.Inf(1)), ErrNotFinite},
		{"non-negative zero", NonNegative("radius", 0), nil},
		{"non-negative negative", NonNegative("radius", -1), ErrNegative},
		{"non-negative nan", NonNegative("radius", math.NaN()), ErrNotFinite},
		{"positive ok", Positive("period", 0.2), nil},
		{"positive zero", Positive("period", 0), ErrNotPositive},
		{"range inside", Range("ratio", 0.5, 0, 1), nil},
		{"range bounds inclusive", Range("ratio", 1, 0, 1), nil},
		{"range above", Range("ratio", 1.5, 0, 1), ErrOutOfRange},
		{"at most ok", AtMost("hitpoints", 100, 100), nil},
		{"at most above", AtMost("hitpoints", 101, 100), ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				if tt.err != nil {
					t.Errorf("unexpected error: %v", tt.err)
				}
				return
			}
			if !errors.Is(tt.err, tt.wantErr) {
				t.Errorf("error = %v, want %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := NonNegative("radius", -2)

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error %T is not a *FieldError", err)
	}
	if fe.Field != "radius" || fe.Value != -2 {
		t.Errorf("FieldError = %+v", fe)
	}
	if !strings.Contains(err.Error(), "radius=-2") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCollect(t *testing.T) {
	if err := Collect(nil, Positive("a", 1), nil); err != nil {
		t.Errorf("Collect() of passing checks = %v", err)
	}

	err := Collect(Positive("a", 0), NonNegative("b", -1))
	if !errors.Is(err, ErrNotPositive) || !errors.Is(err, ErrNegative) {
		t.Errorf("Collect() lost an error: %v", err)
	}
}

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		errContains string
	}{
		{name: "simple", input: "Player1", want: "Player1"},
		{name: "spaces", input: "Player One", want: "Player One"},
		{name: "hyphen and underscore", input: "Red_Tank-2", want: "Red_Tank-2"},
		{name: "trimmed", input: "  Player1  ", want: "Player1"},
		{name: "empty", input: "", errContains: "cannot be empty"},
		{name: "whitespace", input: "   ", errContains: "only whitespace"},
		{name: "too long", input: strings.Repeat("a", MaxPlayerNameLen+1), errContains: "too long"},
		{name: "special characters", input: "Player@#$", errContains: "invalid characters"},
		{name: "control character", input: "Player\x00One", errContains: "control characters"},
		{name: "invalid utf8", input: "Player\xff", errContains: "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePlayerName(tt.input)
			if tt.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ValidatePlayerName(%q) error = %v, want containing %q", tt.input, err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePlayerName(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidatePlayerName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
