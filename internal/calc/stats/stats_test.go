package stats

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/msto63/mRW/foundation/core/errors"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		median float64
		mode   []float64
		noMode bool
	}{
		{"odd count", []float64{3, 1, 2}, 2, 2, []float64{1, 2, 3}, true},
		{"even count", []float64{4, 1, 3, 2}, 2.5, 2.5, []float64{1, 2, 3, 4}, true},
		{"single mode", []float64{1, 2, 2, 3}, 2, 2, []float64{2}, false},
		{"two modes", []float64{5, 1, 1, 5, 3}, 3, 3, []float64{1, 5}, false},
		{"all equal", []float64{7, 7, 7}, 7, 7, []float64{7}, false},
		{"single value", []float64{4.5}, 4.5, 4.5, []float64{4.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.values)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if math.Abs(got.Mean-tt.mean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.mean)
			}
			if got.Median != tt.median {
				t.Errorf("Median = %v, want %v", got.Median, tt.median)
			}
			if diff := cmp.Diff(tt.mode, got.Mode); diff != "" {
				t.Errorf("Mode mismatch (-want +got):\n%s", diff)
			}
			if got.NoMode != tt.noMode {
				t.Errorf("NoMode = %v, want %v", got.NoMode, tt.noMode)
			}
			if got.Count != len(tt.values) {
				t.Errorf("Count = %d, want %d", got.Count, len(tt.values))
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	got, _ := Summarize(in)
	if diff := cmp.Diff([]float64{3, 1, 2}, in); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
	if got.Min != 1 || got.Max != 3 || got.Sum != 6 {
		t.Errorf("Min, Max, Sum = %v, %v, %v", got.Min, got.Max, got.Sum)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil); !errors.IsInvalidInput(err) {
		t.Errorf("Summarize(nil) error = %v, want invalid input", err)
	}
	if _, err := Summarize([]float64{1, math.NaN()}); !errors.IsInvalidInput(err) {
		t.Errorf("Summarize(NaN) error = %v, want invalid input", err)
	}
}

func TestParseValues(t *testing.T) {
	got := ParseValues([]string{"1", " 2.5 ", "", "abc", "-3", "NaN"})
	if diff := cmp.Diff([]float64{1, 2.5, -3}, got); diff != "" {
		t.Errorf("ParseValues() mismatch (-want +got):\n%s", diff)
	}
}
