package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
	"github.com/msto63/mRW/internal/calc/age"
	"github.com/msto63/mRW/internal/calc/finance"
	"github.com/msto63/mRW/internal/calc/grades"
	"github.com/msto63/mRW/internal/calc/stats"
	"github.com/msto63/mRW/internal/euler/store"
	"github.com/msto63/mRW/pkg/core/config"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, journal store.Journal) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Journal = journal
	cfg.Location = time.UTC
	cfg.Now = func() time.Time { return fixedNow }
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestBuiltinRegistersEveryCalculator(t *testing.T) {
	r := Builtin(config.Default().Calculators)

	want := []string{
		"age", "average", "bio-age", "cat-age", "compound-interest", "decimal-to-fraction",
		"discount", "dog-age", "fraction-to-decimal", "gpa", "grade", "life-expectancy",
		"percent-of", "percentage-change", "pregnancy", "ratio", "sales-tax", "simple-interest",
		"timezone", "tip", "unit-price", "zodiac",
	}
	assert.Equal(t, want, r.Names())

	list := r.List()
	require.Len(t, list, len(want))
	assert.Equal(t, CategoryDate, list[0].Category)
	assert.Equal(t, CategoryEducation, list[len(list)-1].Category)

	for _, c := range list {
		assert.NotEmpty(t, c.Title, c.Name)
		assert.NotNil(t, c.Run, c.Name)
	}
}

func TestCalculateAge(t *testing.T) {
	journal := store.NewMemoryJournal()
	svc := newTestService(t, journal)

	out, err := svc.Calculate(context.Background(), "age", map[string]string{"birth": " 1990-05-17 "})
	require.NoError(t, err)
	assert.Equal(t, store.StatusOK, out.Status)
	assert.Equal(t, "1990-05-17", out.Inputs["birth"])

	b, ok := out.Result.(*age.Breakdown)
	require.True(t, ok, "result type %T", out.Result)
	assert.Equal(t, 33, b.Years)
	assert.Equal(t, 7, b.Months)
	assert.Equal(t, "Taurus", b.ZodiacSign)

	entries, err := svc.History(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, out.ID, entries[0].ID)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(entries[0].Result, &decoded))
	assert.EqualValues(t, 33, decoded["years"])
}

func TestCalculateUnknown(t *testing.T) {
	journal := store.NewMemoryJournal()
	svc := newTestService(t, journal)

	out, err := svc.Calculate(context.Background(), "bmi", nil)
	assert.Nil(t, out)
	assert.True(t, errors.IsNotFound(err))

	stats, err := svc.HistoryStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestCalculateDeclined(t *testing.T) {
	tests := []struct {
		name       string
		calculator string
		fields     map[string]string
		code       mrwerror.Code
		field      string
	}{
		{"non numeric price", "discount", map[string]string{"price": "abc", "percent": "10"}, mrwerror.CodeValidationFailed, "price"},
		{"missing required", "simple-interest", map[string]string{"principal": "100", "rate": "5"}, mrwerror.CodeValidationFailed, "years"},
		{"bad option", "dog-age", map[string]string{"years": "3", "method": "magic"}, mrwerror.CodeValidationFailed, "method"},
		{"bad row value", "gpa", map[string]string{"course.0.credits": "3", "course.0.grade": "A", "course.1.credits": "x", "course.1.grade": "B"}, mrwerror.CodeValidationFailed, "course.1.credits"},
		{"zero denominator", "ratio", map[string]string{"a": "4", "b": "0"}, mrwerror.CodeDivisionByZero, ""},
		{"birth after reference", "age", map[string]string{"birth": "2030-01-01"}, mrwerror.CodeInvalidDate, ""},
		{"unknown grade", "gpa", map[string]string{"course.0.credits": "3", "course.0.grade": "Z"}, mrwerror.CodeInvalidInput, ""},
		{"unparsable date", "zodiac", map[string]string{"date": "someday"}, mrwerror.CodeInvalidInput, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := store.NewMemoryJournal()
			svc := newTestService(t, journal)

			out, err := svc.Calculate(context.Background(), tt.calculator, tt.fields)
			require.Error(t, err)
			require.NotNil(t, out)
			assert.True(t, out.Declined())
			assert.Nil(t, out.Result)
			assert.Equal(t, tt.code.String(), out.ErrorCode)
			assert.True(t, mrwerror.HasCode(err, tt.code), "got %v", err)
			if tt.field != "" {
				assert.Equal(t, tt.field, errors.ExtractDetails(err)["field"])
			}

			entries, qerr := journal.Query(context.Background(), store.Filter{Status: store.StatusDeclined})
			require.NoError(t, qerr)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.code.String(), entries[0].ErrorCode)
			assert.Empty(t, entries[0].Result)
		})
	}
}

func TestCalculateUsesConfiguredDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Calculators.DefaultCycleLength = 30
	cfg.Location = time.UTC
	cfg.Now = func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }
	svc, err := NewService(cfg)
	require.NoError(t, err)

	out, err := svc.Calculate(context.Background(), "pregnancy", map[string]string{"lmp": "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "30", out.Inputs["cycle"])

	res, ok := out.Result.(*PregnancyResult)
	require.True(t, ok)
	assert.Equal(t, 30, res.CycleLength)
	assert.Equal(t, "2024-10-07", res.DueDate.Format(timex.ISO8601Date))
	assert.False(t, res.IsOverdue)
}

func TestCalculateRows(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	t.Run("gpa skips blank rows", func(t *testing.T) {
		out, err := svc.Calculate(ctx, "gpa", map[string]string{
			"course.0.name": "Mathe", "course.0.credits": "3", "course.0.grade": "A",
			"course.1.name": "", "course.1.credits": "", "course.1.grade": "",
			"course.2.credits": "1", "course.2.grade": "B",
		})
		require.NoError(t, err)
		res := out.Result.(*grades.GPAResult)
		require.Len(t, res.Courses, 2)
		assert.Equal(t, "Mathe", res.Courses[0].Name)
		assert.InDelta(t, 3.75, res.GPA, 1e-9)
	})

	t.Run("average merges rows and free text", func(t *testing.T) {
		out, err := svc.Calculate(ctx, "average", map[string]string{
			"number.0": "5",
			"values":   "1, 2;2",
		})
		require.NoError(t, err)
		res := out.Result.(*stats.Summary)
		assert.Equal(t, []float64{5, 1, 2, 2}, res.Values)
		assert.InDelta(t, 2.5, res.Mean, 1e-9)
		assert.Equal(t, []float64{2}, res.Mode)
	})

	t.Run("weighted grade", func(t *testing.T) {
		out, err := svc.Calculate(ctx, "grade", map[string]string{
			"assignment.0.score": "90", "assignment.0.max_score": "100", "assignment.0.weight": "1",
			"assignment.1.score": "40", "assignment.1.max_score": "50", "assignment.1.weight": "1",
		})
		require.NoError(t, err)
		res := out.Result.(*grades.GradeResult)
		assert.InDelta(t, 85, res.FinalGrade, 1e-9)
	})
}

func TestCalculateFinance(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.Calculate(context.Background(), "discount", map[string]string{"price": "100", "percent": "20"})
	require.NoError(t, err)
	res := out.Result.(*finance.DiscountResult)
	assert.Equal(t, "20", res.Amount.String())

	out, err = svc.Calculate(context.Background(), "tip", map[string]string{"bill": "50"})
	require.NoError(t, err)
	tip := out.Result.(*finance.TipResult)
	assert.Equal(t, "7.5", tip.Tip.String())
	assert.Equal(t, 1, tip.People)
}

func TestCalculateBioAge(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.Calculate(context.Background(), "bio-age", map[string]string{
		"age":      "40",
		"systolic": "120",
	})
	require.NoError(t, err)
	res := out.Result.(*BioAgeResult)
	assert.InDelta(t, 40, res.BiologicalAge, 1e-9)
	assert.NotEmpty(t, res.Reading)

	_, err = svc.Calculate(context.Background(), "bio-age", map[string]string{"age": "40"})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCalculateBioAgeSkipsUnreadableMarkers(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.Calculate(context.Background(), "bio-age", map[string]string{
		"age":      "40",
		"systolic": "abc",
		"bmi":      "29",
	})
	require.NoError(t, err)
	assert.Equal(t, store.StatusOK, out.Status)
	res := out.Result.(*BioAgeResult)
	assert.Contains(t, res.Dropped, "Systolic Blood Pressure")
	require.Len(t, res.Contributions, 1)
	assert.Equal(t, "BMI", res.Contributions[0].Name)

	out, err = svc.Calculate(context.Background(), "bio-age", map[string]string{
		"age":             "40",
		"bmi":             "25",
		"marker.0.name":   "Ferritin",
		"marker.0.value":  "n/a",
		"marker.0.mean":   "100",
		"marker.0.stddev": "20",
		"marker.0.weight": "0.1",
	})
	require.NoError(t, err)
	res = out.Result.(*BioAgeResult)
	assert.Contains(t, res.Dropped, "Ferritin")
	assert.InDelta(t, 40, res.BiologicalAge, 1e-9)
}

func TestCalculateTimezone(t *testing.T) {
	if _, err := timex.LoadLocation("Europe/Berlin"); err != nil {
		t.Skip("time zone database not available")
	}
	svc := newTestService(t, nil)

	out, err := svc.Calculate(context.Background(), "timezone", map[string]string{
		"time": "2024-01-15T12:00",
		"from": "Europe/Berlin",
		"to":   "UTC",
	})
	require.NoError(t, err)
	res := out.Result.(*TimezoneResult)
	assert.Equal(t, 11, res.To.Hour())
	assert.InDelta(t, -1, res.OffsetHours, 1e-9)

	_, err = svc.Calculate(context.Background(), "timezone", map[string]string{"from": "Mars/Olympus", "to": "UTC"})
	assert.True(t, mrwerror.HasCode(err, mrwerror.CodeValidationFailed))
}

func TestCalculateCancelledContext(t *testing.T) {
	svc := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := svc.Calculate(ctx, "age", map[string]string{"birth": "1990-05-17"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryWithoutJournal(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.False(t, svc.HasHistory())
	entries, err := svc.History(ctx, store.Filter{})
	assert.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.HistoryEntry(ctx, "x")
	assert.True(t, errors.IsNotFound(err))

	removed, err := svc.Prune(ctx, time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, removed)
	assert.NoError(t, svc.Ping(ctx))
	assert.NoError(t, svc.Close())
}
