package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calc/finance"
	"github.com/msto63/mRW/internal/calc/grades"
	"github.com/msto63/mRW/internal/euler/service"
)

func TestLinesMoney(t *testing.T) {
	res, err := finance.Discount(decimal.NewFromInt(1250), decimal.NewFromInt(20))
	require.NoError(t, err)

	out := &service.Outcome{Calculator: "discount", Title: "Rabattrechner", Result: res}
	lines, err := Lines(out, DefaultOptions())
	require.NoError(t, err)

	byKey := map[string]Line{}
	for _, l := range lines {
		byKey[l.Key] = l
	}
	assert.Equal(t, "Endpreis", byKey["final"].Label)
	assert.Equal(t, "€1,000.00", byKey["final"].Value)
	assert.Equal(t, "20", byKey["percent"].Value)

	usd := Options{Currency: mathx.USD}
	lines, err = Lines(out, usd)
	require.NoError(t, err)
	assert.Equal(t, "price", lines[0].Key)
	assert.Equal(t, "$1,250.00", lines[0].Value)
}

func TestLinesNested(t *testing.T) {
	res, err := grades.GPA([]grades.Course{
		{Name: "Mathe", Credits: 3, Grade: "A"},
		{Name: "Physik", Credits: 1, Grade: "B"},
	})
	require.NoError(t, err)

	lines, err := Lines(&service.Outcome{Calculator: "gpa", Title: "GPA", Result: res}, DefaultOptions())
	require.NoError(t, err)

	require.NotEmpty(t, lines)
	assert.Equal(t, "courses", lines[0].Key)
	assert.True(t, lines[0].Header)
	assert.Equal(t, "#1", lines[1].Label)
	assert.Equal(t, 2, lines[2].Depth)
	assert.Equal(t, "Mathe", lines[2].Value)

	last := lines[len(lines)-1]
	assert.Equal(t, "gpa", last.Key)
	assert.Equal(t, "3.75", last.Value)
}

func TestScalarFormatting(t *testing.T) {
	type sample struct {
		When    time.Time `yaml:"date"`
		Overdue bool      `yaml:"overdue"`
		Values  []float64 `yaml:"values"`
		Display string    `yaml:"display"`
	}
	out := &service.Outcome{
		Calculator: "sample",
		Result: sample{
			When:    time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC),
			Overdue: true,
			Values:  []float64{1, 2.5},
		},
	}

	lines, err := Lines(out, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "07.10.2024", lines[0].Value)
	assert.Equal(t, "ja", lines[1].Value)
	assert.Equal(t, "1, 2.5", lines[2].Value)
	assert.Equal(t, "-", lines[3].Value)
}

func TestText(t *testing.T) {
	res := finance.PercentOf(decimal.NewFromInt(15), decimal.NewFromInt(80))
	out := &service.Outcome{Calculator: "percent-of", Title: "Prozentrechner", Result: res}

	text, err := Text(out, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Prozentrechner\n==============\n"))
	assert.Contains(t, text, "Betrag:")
	assert.Contains(t, text, " 12\n")
	assert.NotContains(t, text, "€")
}

func TestLinesEmpty(t *testing.T) {
	lines, err := Lines(&service.Outcome{Calculator: "ratio"}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, "unknown_key", Label("unknown_key"))
}
