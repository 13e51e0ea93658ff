// Package lifeexp gives a simplified remaining life expectancy estimate from
// a per-country base table.
package lifeexp

import (
	"math"
	"sort"
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
)

// Gender selects the column of the base table
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

const (
	// FallbackExpectancy applies to countries missing from the table
	FallbackExpectancy = 78.0
	// AgeAdjustment is added per year already lived
	AgeAdjustment = 0.1
	MaxAge        = 120
)

type baseline struct {
	male, female float64
}

var table = map[string]baseline{
	"US": {76.3, 81.1},
	"UK": {79.4, 83.1},
	"CA": {80.9, 84.7},
	"AU": {80.9, 85.0},
	"JP": {81.6, 87.7},
	"DE": {78.9, 83.6},
	"FR": {79.7, 85.6},
}

// Countries returns the country codes of the base table, sorted
func Countries() []string {
	codes := make([]string, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// ParseGender maps a gender name to a Gender. The empty string selects male.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case "", Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", errors.InvalidInput(errors.ModuleLifeExp, "ParseGender", s, "male or female")
}

// Base returns the life expectancy at birth for gender and country
func Base(gender Gender, country string) float64 {
	b, ok := table[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return FallbackExpectancy
	}
	if gender == Female {
		return b.female
	}
	return b.male
}

// Result is the outcome of Estimate
type Result struct {
	CurrentAge     float64 `json:"current_age" yaml:"current_age"`
	Gender         Gender  `json:"gender" yaml:"gender"`
	Country        string  `json:"country" yaml:"country"`
	LifeExpectancy float64 `json:"life_expectancy" yaml:"life_expectancy"`
	RemainingYears float64 `json:"remaining_years" yaml:"remaining_years"`
	EstimatedYear  int     `json:"estimated_year" yaml:"estimated_year"`
}

// Estimate computes the adjusted expectancy for someone of the given age.
// referenceYear is the current calendar year.
func Estimate(age float64, gender Gender, country string, referenceYear int) (*Result, error) {
	if !mathx.IsFinite(age) || age < 0 || age > MaxAge {
		return nil, errors.OutOfRange(errors.ModuleLifeExp, "Estimate", age, 0, MaxAge)
	}
	if gender == "" {
		gender = Male
	}
	if gender != Male && gender != Female {
		return nil, errors.InvalidInput(errors.ModuleLifeExp, "Estimate", gender, "male or female")
	}

	adjusted := Base(gender, country) + age*AgeAdjustment
	remaining := math.Max(0, adjusted-age)
	return &Result{
		CurrentAge:     age,
		Gender:         gender,
		Country:        strings.ToUpper(strings.TrimSpace(country)),
		LifeExpectancy: adjusted,
		RemainingYears: remaining,
		EstimatedYear:  referenceYear + int(math.Round(remaining)),
	}, nil
}
