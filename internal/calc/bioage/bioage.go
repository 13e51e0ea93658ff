// Package bioage estimates a biological age from a weighted panel of
// biomarker deviations.
package bioage

import (
	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
)

// Slope converts the composite index into years
const Slope = 2.5

// Sample is one biomarker measurement with its reference norm. Observed is
// nil when the value was not provided.
type Sample struct {
	Name            string   `json:"name" yaml:"name"`
	Observed        *float64 `json:"observed" yaml:"observed"`
	ReferenceMean   float64  `json:"reference_mean" yaml:"reference_mean"`
	ReferenceStdDev float64  `json:"reference_std_dev" yaml:"reference_std_dev"`
	Weight          float64  `json:"weight" yaml:"weight"`
}

// Usable reports whether the sample contributes to the composite index
func (s Sample) Usable() bool {
	return s.Observed != nil &&
		mathx.IsFinite(*s.Observed) &&
		mathx.IsFinite(s.ReferenceMean) && s.ReferenceMean > 0 &&
		mathx.IsFinite(s.ReferenceStdDev) && s.ReferenceStdDev > 0 &&
		mathx.IsFinite(s.Weight) && s.Weight >= 0
}

// ZScore returns (observed - mean) / stdDev. Only meaningful for usable samples.
func (s Sample) ZScore() float64 {
	return (*s.Observed - s.ReferenceMean) / s.ReferenceStdDev
}

// Contribution is the z-score of one usable sample
type Contribution struct {
	Name   string  `json:"name" yaml:"name"`
	ZScore float64 `json:"z_score" yaml:"z_score"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Result is the outcome of Score
type Result struct {
	ChronologicalAge float64        `json:"chronological_age" yaml:"chronological_age"`
	BiologicalAge    float64        `json:"biological_age" yaml:"biological_age"`
	AgeGap           float64        `json:"age_gap" yaml:"age_gap"`
	CompositeIndex   float64        `json:"composite_index" yaml:"composite_index"`
	Contributions    []Contribution `json:"contributions" yaml:"contributions"`
	Dropped          []string       `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// Interpretation gives a short reading of the age gap
func (r *Result) Interpretation() string {
	switch {
	case r.AgeGap <= -2:
		return "younger than chronological age"
	case r.AgeGap >= 2:
		return "older than chronological age"
	default:
		return "in line with chronological age"
	}
}

// Score computes the biological age. Unusable samples are left out of the
// index and listed in Result.Dropped.
func Score(chronologicalAge float64, samples []Sample) (*Result, error) {
	if !mathx.IsFinite(chronologicalAge) || chronologicalAge <= 0 {
		return nil, errors.InvalidInput(errors.ModuleBioAge, "Score", chronologicalAge, "chronological age > 0")
	}

	res := &Result{ChronologicalAge: chronologicalAge}
	var weighted, weights float64
	for _, s := range samples {
		if !s.Usable() {
			res.Dropped = append(res.Dropped, s.Name)
			continue
		}
		z := s.ZScore()
		weighted += s.Weight * z
		weights += s.Weight
		res.Contributions = append(res.Contributions, Contribution{Name: s.Name, ZScore: z, Weight: s.Weight})
	}

	if len(res.Contributions) == 0 || weights == 0 {
		return nil, errors.InvalidInput(errors.ModuleBioAge, "Score", len(samples), "at least one usable biomarker with positive weight")
	}

	res.CompositeIndex = weighted / weights
	res.BiologicalAge = chronologicalAge + Slope*res.CompositeIndex
	res.AgeGap = res.BiologicalAge - chronologicalAge
	return res, nil
}
