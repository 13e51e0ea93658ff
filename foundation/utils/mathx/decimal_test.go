// File: decimal_test.go
// Title: Unit Tests for Decimal Helpers
// Description: Tests for parsing, rounding modes, GCD and decimal place counting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-29

package mathx

import (
	"math"
	"testing"

	"github.com/msto63/mRW/foundation/core/errors"
)

func TestParse(t *testing.T) {
	if d, err := Parse(" 12.50 "); err != nil || !d.Equal(MustParse("12.5")) {
		t.Errorf("Parse(' 12.50 ') = %s, %v", d, err)
	}
	if _, err := Parse("abc"); !errors.IsInvalidInput(err) {
		t.Errorf("Parse(abc) error = %v, want invalid input", err)
	}
}

func TestFromFloat(t *testing.T) {
	if _, err := FromFloat(math.NaN()); err == nil {
		t.Error("FromFloat(NaN) should fail")
	}
	if _, err := FromFloat(math.Inf(1)); err == nil {
		t.Error("FromFloat(+Inf) should fail")
	}
	if d, err := FromFloat(2.5); err != nil || d.String() != "2.5" {
		t.Errorf("FromFloat(2.5) = %s, %v", d, err)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		mode RoundingMode
		want string
	}{
		{"2.345", RoundingModeHalfUp, "2.35"},
		{"-2.345", RoundingModeHalfUp, "-2.35"},
		{"2.345", RoundingModeHalfEven, "2.34"},
		{"2.341", RoundingModeUp, "2.35"},
		{"2.349", RoundingModeDown, "2.34"},
	}

	for _, tt := range tests {
		got := Round(MustParse(tt.in), 2, tt.mode)
		if got.StringFixed(2) != tt.want {
			t.Errorf("Round(%s, 2, %d) = %s, want %s", tt.in, tt.mode, got.StringFixed(2), tt.want)
		}
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(52.4899, 2); got != 52.49 {
		t.Errorf("RoundFloat(52.4899, 2) = %v, want 52.49", got)
	}
	if got := RoundFloat(2.5, 0); got != 3 {
		t.Errorf("RoundFloat(2.5, 0) = %v, want 3", got)
	}
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{12, 8, 4},
		{75, 100, 25},
		{-12, 8, 4},
		{7, 0, 7},
		{0, 0, 0},
		{1500, 2500, 500},
	}

	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDecimalPlaces(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0.75", 2},
		{"0.50", 2},
		{"3", 0},
		{"1.250", 3},
		{" 0.125 ", 3},
		{"1.5e-3", 4},
		{"1.5E2", 0},
		{"25e-1", 1},
	}

	for _, tt := range tests {
		if got := DecimalPlaces(tt.in); got != tt.want {
			t.Errorf("DecimalPlaces(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
