// Package numbers converts between ratios, fractions and decimals.
package numbers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/shopspring/decimal"
)

// RatioScale turns ratio terms into integers before reduction, so terms are
// significant to three decimal places.
const RatioScale = 1000

// maxFractionPlaces keeps 10^places inside int64
const maxFractionPlaces = 18

// RatioResult is the outcome of Ratio
type RatioResult struct {
	A           float64 `json:"a" yaml:"a"`
	B           float64 `json:"b" yaml:"b"`
	Ratio       string  `json:"ratio" yaml:"ratio"`
	SimplifiedA int64   `json:"simplified_a" yaml:"simplified_a"`
	SimplifiedB int64   `json:"simplified_b" yaml:"simplified_b"`
	Simplified  string  `json:"simplified" yaml:"simplified"`
	Decimal     float64 `json:"decimal" yaml:"decimal"`
	Percentage  float64 `json:"percentage" yaml:"percentage"`
}

// Ratio reduces a:b by the GCD of both terms scaled by RatioScale
func Ratio(a, b float64) (*RatioResult, error) {
	const op = "Ratio"
	if b == 0 {
		return nil, errors.DivisionByZero(errors.ModuleNumbers, op, "b")
	}
	if !mathx.IsFinite(a) || !mathx.IsFinite(b) || a <= 0 || b < 0 {
		return nil, errors.InvalidInput(errors.ModuleNumbers, op, fmt.Sprintf("%v:%v", a, b), "both terms > 0")
	}

	outOfRange := errors.OutOfRange(errors.ModuleNumbers, op, fmt.Sprintf("%v:%v", a, b), 1.0/RatioScale, int64(math.MaxInt64/RatioScale))
	if math.Round(a*RatioScale) >= math.MaxInt64 || math.Round(b*RatioScale) >= math.MaxInt64 {
		return nil, outOfRange
	}
	sa := int64(math.Round(a * RatioScale))
	sb := int64(math.Round(b * RatioScale))
	if sa == 0 || sb == 0 {
		return nil, outOfRange
	}
	g := mathx.GCD(sa, sb)

	return &RatioResult{
		A:           a,
		B:           b,
		Ratio:       formatTerm(a) + ":" + formatTerm(b),
		SimplifiedA: sa / g,
		SimplifiedB: sb / g,
		Simplified:  fmt.Sprintf("%d:%d", sa/g, sb/g),
		Decimal:     a / b,
		Percentage:  a / b * 100,
	}, nil
}

// DecimalResult is the outcome of FractionToDecimal
type DecimalResult struct {
	Numerator   decimal.Decimal `json:"numerator" yaml:"numerator"`
	Denominator decimal.Decimal `json:"denominator" yaml:"denominator"`
	Fraction    string          `json:"fraction" yaml:"fraction"`
	Decimal     decimal.Decimal `json:"decimal" yaml:"decimal"`
	Percentage  decimal.Decimal `json:"percentage" yaml:"percentage"`
}

// FractionToDecimal divides numerator by denominator
func FractionToDecimal(numerator, denominator decimal.Decimal) (*DecimalResult, error) {
	if denominator.IsZero() {
		return nil, errors.DivisionByZero(errors.ModuleNumbers, "FractionToDecimal", "denominator")
	}
	value := numerator.Div(denominator)
	return &DecimalResult{
		Numerator:   numerator,
		Denominator: denominator,
		Fraction:    numerator.String() + "/" + denominator.String(),
		Decimal:     value,
		Percentage:  value.Mul(mathx.Hundred()),
	}, nil
}

// FractionResult is the outcome of DecimalToFraction
type FractionResult struct {
	Decimal               decimal.Decimal `json:"decimal" yaml:"decimal"`
	Numerator             int64           `json:"numerator" yaml:"numerator"`
	Denominator           int64           `json:"denominator" yaml:"denominator"`
	Fraction              string          `json:"fraction" yaml:"fraction"`
	SimplifiedNumerator   int64           `json:"simplified_numerator" yaml:"simplified_numerator"`
	SimplifiedDenominator int64           `json:"simplified_denominator" yaml:"simplified_denominator"`
	Simplified            string          `json:"simplified" yaml:"simplified"`
}

// DecimalToFraction rebuilds a fraction from the decimal places written in
// text: "0.50" becomes 50/100 and simplifies to 1/2.
func DecimalToFraction(text string) (*FractionResult, error) {
	const op = "DecimalToFraction"
	value, err := mathx.Parse(text)
	if err != nil {
		return nil, errors.InvalidInput(errors.ModuleNumbers, op, text, "decimal number")
	}

	places := mathx.DecimalPlaces(text)
	if places > maxFractionPlaces {
		return nil, errors.OutOfRange(errors.ModuleNumbers, op, places, 0, maxFractionPlaces)
	}

	den := decimal.New(1, int32(places))
	num := value.Mul(den)
	if !num.Equal(decimal.NewFromInt(num.IntPart())) {
		return nil, errors.OutOfRange(errors.ModuleNumbers, op, text, int64(math.MinInt64), int64(math.MaxInt64))
	}

	n, dn := num.IntPart(), den.IntPart()
	g := mathx.GCD(n, dn)
	return &FractionResult{
		Decimal:               value,
		Numerator:             n,
		Denominator:           dn,
		Fraction:              fmt.Sprintf("%d/%d", n, dn),
		SimplifiedNumerator:   n / g,
		SimplifiedDenominator: dn / g,
		Simplified:            fmt.Sprintf("%d/%d", n/g, dn/g),
	}, nil
}

func formatTerm(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
