// Package petage converts dog and cat ages into human-equivalent years.
package petage

import (
	"fmt"
	"math"
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
)

// Species identifies the animal a result belongs to
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Method selects the dog age formula
type Method string

const (
	// MethodLogarithmic is 16·ln(years)+31 from the epigenetic clock study
	MethodLogarithmic Method = "logarithmic"
	// MethodTraditional is the 15/24/+N table used by veterinarians
	MethodTraditional Method = "traditional"
)

// BreedSize influences the yearly rate of the traditional method
type BreedSize string

const (
	BreedSmall  BreedSize = "small"
	BreedMedium BreedSize = "medium"
	BreedLarge  BreedSize = "large"
)

// Result is one converted age
type Result struct {
	Species     Species   `json:"species" yaml:"species"`
	AnimalYears float64   `json:"animal_years" yaml:"animal_years"`
	HumanAge    float64   `json:"human_age" yaml:"human_age"`
	LifeStage   string    `json:"life_stage" yaml:"life_stage"`
	Method      Method    `json:"method,omitempty" yaml:"method,omitempty"`
	BreedSize   BreedSize `json:"breed_size,omitempty" yaml:"breed_size,omitempty"`
	Calculation string    `json:"calculation" yaml:"calculation"`
}

// RoundedHumanAge returns the human age rounded to one decimal place
func (r *Result) RoundedHumanAge() float64 {
	return mathx.RoundFloat(r.HumanAge, 1)
}

// ParseMethod maps a method name to a Method. The empty string selects the
// logarithmic method.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodLogarithmic:
		return MethodLogarithmic, nil
	case MethodTraditional:
		return MethodTraditional, nil
	}
	return "", errors.InvalidInput(errors.ModulePetAge, "ParseMethod", s, "logarithmic or traditional")
}

// ParseBreedSize maps a size name to a BreedSize. The empty string selects
// medium.
func ParseBreedSize(s string) (BreedSize, error) {
	switch BreedSize(strings.ToLower(strings.TrimSpace(s))) {
	case "", BreedMedium:
		return BreedMedium, nil
	case BreedSmall:
		return BreedSmall, nil
	case BreedLarge:
		return BreedLarge, nil
	}
	return "", errors.InvalidInput(errors.ModulePetAge, "ParseBreedSize", s, "small, medium or large")
}

// Dog converts a dog's age in years
func Dog(years float64, method Method, breed BreedSize) (*Result, error) {
	if err := checkYears("Dog", years); err != nil {
		return nil, err
	}
	if method == "" {
		method = MethodLogarithmic
	}
	if breed == "" {
		breed = BreedMedium
	}
	if _, err := ParseBreedSize(string(breed)); err != nil {
		return nil, err
	}

	var human float64
	var calc string
	switch method {
	case MethodLogarithmic:
		if years < 1 {
			human = 15 * years
			calc = fmt.Sprintf("15 × %g = %.2f", years, human)
		} else {
			human = 16*math.Log(years) + 31
			calc = fmt.Sprintf("16 × ln(%g) + 31 = %.2f", years, human)
		}
	case MethodTraditional:
		human, calc = traditionalDog(years, breed)
	default:
		return nil, errors.InvalidInput(errors.ModulePetAge, "Dog", method, "logarithmic or traditional")
	}

	return &Result{
		Species:     SpeciesDog,
		AnimalYears: years,
		HumanAge:    human,
		LifeStage:   DogLifeStage(years),
		Method:      method,
		BreedSize:   breed,
		Calculation: calc,
	}, nil
}

func traditionalDog(years float64, breed BreedSize) (float64, string) {
	rate := 5.0
	if breed == BreedLarge {
		rate = 6
	}
	switch {
	case years < 1:
		human := 15 * years
		return human, fmt.Sprintf("15 × %g = %.2f", years, human)
	case years <= 2:
		// 15 in the first year, 9 more across the second
		human := 15 + 9*(years-1)
		return human, fmt.Sprintf("15 + 9 × (%g - 1) = %.2f", years, human)
	default:
		human := 24 + (years-2)*rate
		return human, fmt.Sprintf("24 + (%g - 2) × %g = %.2f", years, rate, human)
	}
}

// Cat converts a cat's age in years
func Cat(years float64) (*Result, error) {
	if err := checkYears("Cat", years); err != nil {
		return nil, err
	}

	var human float64
	var calc string
	switch {
	case years < 1:
		human = 15 * years
		calc = fmt.Sprintf("15 × %g = %.2f", years, human)
	case years == 1:
		human = 15
		calc = "first year = 15"
	case years == 2:
		human = 24
		calc = "first two years = 24"
	default:
		human = 24 + 4*(years-2)
		calc = fmt.Sprintf("24 + 4 × (%g - 2) = %.2f", years, human)
	}

	return &Result{
		Species:     SpeciesCat,
		AnimalYears: years,
		HumanAge:    human,
		LifeStage:   CatLifeStage(years),
		Calculation: calc,
	}, nil
}

// CatLifeStage returns the life stage label for a cat of the given age
func CatLifeStage(years float64) string {
	switch {
	case years < 1:
		return "Kitten"
	case years < 2:
		return "Young Adult"
	case years < 7:
		return "Adult"
	case years < 11:
		return "Mature"
	case years < 15:
		return "Senior"
	default:
		return "Geriatric"
	}
}

// DogLifeStage returns the life stage label for a dog of the given age
func DogLifeStage(years float64) string {
	switch {
	case years < 1:
		return "Puppy"
	case years < 3:
		return "Young Adult"
	case years < 8:
		return "Adult"
	case years < 12:
		return "Senior"
	default:
		return "Geriatric"
	}
}

func checkYears(op string, years float64) error {
	if !mathx.IsFinite(years) || years <= 0 {
		return errors.InvalidInput(errors.ModulePetAge, op, years, "age in years > 0")
	}
	return nil
}
