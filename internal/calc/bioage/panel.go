package bioage

import (
	"github.com/msto63/mRW/foundation/core/errors"
)

// Panel is an ordered list of biomarker samples. Entries have no identity
// beyond their position.
type Panel struct {
	samples []Sample
}

// DefaultPanel returns the six standard biomarkers without observed values
func DefaultPanel() *Panel {
	return &Panel{samples: []Sample{
		{Name: "Systolic Blood Pressure", ReferenceMean: 120, ReferenceStdDev: 15, Weight: 0.2},
		{Name: "BMI", ReferenceMean: 25, ReferenceStdDev: 4, Weight: 0.15},
		{Name: "Resting Heart Rate", ReferenceMean: 70, ReferenceStdDev: 12, Weight: 0.15},
		{Name: "Fasting Glucose", ReferenceMean: 90, ReferenceStdDev: 10, Weight: 0.2},
		{Name: "Total Cholesterol", ReferenceMean: 200, ReferenceStdDev: 30, Weight: 0.15},
		{Name: "HbA1c", ReferenceMean: 5.5, ReferenceStdDev: 0.5, Weight: 0.15},
	}}
}

// Len returns the number of entries
func (p *Panel) Len() int {
	return len(p.samples)
}

// Add appends a sample
func (p *Panel) Add(s Sample) {
	p.samples = append(p.samples, s)
}

// Set replaces the sample at index i
func (p *Panel) Set(i int, s Sample) error {
	if i < 0 || i >= len(p.samples) {
		return errors.OutOfRange(errors.ModuleBioAge, "Set", i, 0, len(p.samples)-1)
	}
	p.samples[i] = s
	return nil
}

// Observe stores an observed value for the sample at index i
func (p *Panel) Observe(i int, value float64) error {
	if i < 0 || i >= len(p.samples) {
		return errors.OutOfRange(errors.ModuleBioAge, "Observe", i, 0, len(p.samples)-1)
	}
	v := value
	p.samples[i].Observed = &v
	return nil
}

// Remove deletes the sample at index i. The last remaining entry cannot be
// removed.
func (p *Panel) Remove(i int) error {
	if i < 0 || i >= len(p.samples) {
		return errors.OutOfRange(errors.ModuleBioAge, "Remove", i, 0, len(p.samples)-1)
	}
	if len(p.samples) == 1 {
		return errors.InvalidInput(errors.ModuleBioAge, "Remove", i, "panel keeps at least one biomarker")
	}
	p.samples = append(p.samples[:i], p.samples[i+1:]...)
	return nil
}

// Samples returns a copy of the entries in order
func (p *Panel) Samples() []Sample {
	out := make([]Sample, len(p.samples))
	copy(out, p.samples)
	return out
}

// Score scores the panel for the given chronological age
func (p *Panel) Score(chronologicalAge float64) (*Result, error) {
	return Score(chronologicalAge, p.samples)
}
