// Package stats summarizes a list of numbers: sum, mean, median and mode.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
)

// Summary is the outcome of Summarize
type Summary struct {
	Values []float64 `json:"values" yaml:"values"`
	Count  int       `json:"count" yaml:"count"`
	Sum    float64   `json:"sum" yaml:"sum"`
	Mean   float64   `json:"mean" yaml:"mean"`
	Median float64   `json:"median" yaml:"median"`
	Min    float64   `json:"min" yaml:"min"`
	Max    float64   `json:"max" yaml:"max"`
	// Mode holds every value with the highest frequency, ascending
	Mode   []float64 `json:"mode" yaml:"mode"`
	NoMode bool      `json:"no_mode" yaml:"no_mode"`
}

// Summarize computes the summary of values. At least one value is required.
func Summarize(values []float64) (*Summary, error) {
	if len(values) == 0 {
		return nil, errors.InvalidInput(errors.ModuleStats, "Summarize", 0, "at least one number")
	}
	for _, v := range values {
		if !mathx.IsFinite(v) {
			return nil, errors.InvalidInput(errors.ModuleStats, "Summarize", v, "finite number")
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	freq := make(map[float64]int, len(values))
	maxFreq := 0
	for _, v := range values {
		sum += v
		freq[v]++
		if freq[v] > maxFreq {
			maxFreq = freq[v]
		}
	}

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var mode []float64
	for v, c := range freq {
		if c == maxFreq {
			mode = append(mode, v)
		}
	}
	sort.Float64s(mode)

	return &Summary{
		Values: append([]float64(nil), values...),
		Count:  n,
		Sum:    sum,
		Mean:   sum / float64(n),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mode:   mode,
		NoMode: len(mode) == n,
	}, nil
}

// ParseValues parses the numeric entries of raw and skips the rest, so a
// form with blank rows still yields the filled-in numbers.
func ParseValues(raw []string) []float64 {
	var out []float64
	for _, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || !mathx.IsFinite(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
