// File: business_test.go
// Title: Unit Tests for Business Calculations
// Description: Tests for percentage, discount, tax and interest primitives.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-29

package mathx

import (
	"testing"

	"github.com/msto63/mRW/foundation/core/errors"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		value      string
		percentage string
		want       string
	}{
		{"100", "20", "20"},
		{"150", "10", "15"},
		{"50", "50", "25"},
		{"0", "10", "0"},
		{"100", "0", "0"},
		{"19.99", "7.5", "1.49925"},
	}

	for _, tt := range tests {
		t.Run(tt.value+"*"+tt.percentage, func(t *testing.T) {
			result := Percentage(MustParse(tt.value), MustParse(tt.percentage))
			if !result.Equal(MustParse(tt.want)) {
				t.Errorf("Percentage(%s, %s) = %s, want %s",
					tt.value, tt.percentage, result.String(), tt.want)
			}
		})
	}
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		part    string
		whole   string
		want    string
		wantErr bool
	}{
		{"25", "100", "25", false},
		{"30", "150", "20", false},
		{"0", "100", "0", false},
		{"50", "0", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.part+"/"+tt.whole, func(t *testing.T) {
			result, err := PercentageOf(MustParse(tt.part), MustParse(tt.whole))
			if tt.wantErr {
				if !errors.IsDivisionByZero(err) {
					t.Errorf("PercentageOf(%s, %s) error = %v, want division by zero", tt.part, tt.whole, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PercentageOf(%s, %s) unexpected error: %v", tt.part, tt.whole, err)
			}
			if !result.Equal(MustParse(tt.want)) {
				t.Errorf("PercentageOf(%s, %s) = %s, want %s", tt.part, tt.whole, result, tt.want)
			}
		})
	}
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		old, new string
		want     string
		wantErr  bool
	}{
		{"50", "75", "50", false},
		{"200", "150", "-25", false},
		{"80", "80", "0", false},
		{"0", "10", "", true},
	}

	for _, tt := range tests {
		got, err := PercentageChange(MustParse(tt.old), MustParse(tt.new))
		if tt.wantErr {
			if !errors.IsDivisionByZero(err) {
				t.Errorf("PercentageChange(%s, %s) error = %v, want division by zero", tt.old, tt.new, err)
			}
			continue
		}
		if err != nil || !got.Equal(MustParse(tt.want)) {
			t.Errorf("PercentageChange(%s, %s) = %s, %v, want %s", tt.old, tt.new, got, err, tt.want)
		}
	}
}

func TestDiscountAndTax(t *testing.T) {
	if got := ApplyDiscount(MustParse("80"), MustParse("25")); !got.Equal(MustParse("60")) {
		t.Errorf("ApplyDiscount(80, 25) = %s, want 60", got)
	}
	if got := CalculateTax(MustParse("200"), MustParse("8.25")); !got.Equal(MustParse("16.5")) {
		t.Errorf("CalculateTax(200, 8.25) = %s, want 16.5", got)
	}
}

func TestSimpleInterest(t *testing.T) {
	got := SimpleInterest(MustParse("1000"), MustParse("5"), MustParse("3"))
	if !got.Equal(MustParse("150")) {
		t.Errorf("SimpleInterest(1000, 5, 3) = %s, want 150", got)
	}
}

func TestCompoundAmount(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      float64
		n         int
		years     float64
		want      string
	}{
		{"monthly ten years", "1000", 5, 12, 10, "1647.01"},
		{"annual two years", "100", 10, 1, 2, "121.00"},
		{"zero rate", "500", 0, 4, 3, "500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompoundAmount(MustParse(tt.principal), tt.rate, tt.n, tt.years)
			if err != nil {
				t.Fatalf("CompoundAmount() unexpected error: %v", err)
			}
			if RoundMoney(got).StringFixed(2) != tt.want {
				t.Errorf("CompoundAmount() = %s, want %s", RoundMoney(got).StringFixed(2), tt.want)
			}
		})
	}

	if _, err := CompoundAmount(MustParse("100"), 5, 0, 1); !errors.IsInvalidInput(err) {
		t.Errorf("CompoundAmount() with zero frequency error = %v, want invalid input", err)
	}
}
