package service

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/foundation/utils/timex"
)

var validate = validator.New()

// Form holds the trimmed raw values of one calculation
type Form struct {
	values map[string]string
	loc    *time.Location
}

// NewForm creates a form from raw key/value pairs. Dates are read in loc.
func NewForm(values map[string]string, loc *time.Location) Form {
	if loc == nil {
		loc = time.Local
	}
	f := Form{values: make(map[string]string, len(values)), loc: loc}
	for k, v := range values {
		f.values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return f
}

// Values returns a copy of the non-empty values
func (f Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Location returns the location used for date fields
func (f Form) Location() *time.Location {
	return f.loc
}

// String returns the raw value of name, empty when absent
func (f Form) String(name string) string {
	return f.values[name]
}

// Has reports whether name carries a non-empty value
func (f Form) Has(name string) bool {
	return f.values[name] != ""
}

// Decimal parses name as a decimal number. An empty value is zero.
func (f Form) Decimal(name string) (decimal.Decimal, error) {
	raw := f.values[name]
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := mathx.Parse(raw)
	if err != nil {
		return decimal.Zero, errors.InvalidInput(errors.ModuleService, "Decimal", raw, "number for "+name)
	}
	return d, nil
}

// Float parses name as a float. An empty value is zero.
func (f Form) Float(name string) (float64, error) {
	raw := f.values[name]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !mathx.IsFinite(v) {
		return 0, errors.InvalidInput(errors.ModuleService, "Float", raw, "number for "+name)
	}
	return v, nil
}

// Int parses name as an integer. An empty value is zero.
func (f Form) Int(name string) (int, error) {
	raw := f.values[name]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(errors.ModuleService, "Int", raw, "integer for "+name)
	}
	return v, nil
}

// Date parses name as a calendar date at midnight in the form location
func (f Form) Date(name string) (time.Time, error) {
	return timex.ParseDateIn(f.values[name], f.loc)
}

// DateTime parses name as a wall clock date and time in the form location
func (f Form) DateTime(name string) (time.Time, error) {
	return timex.ParseDateTimeIn(f.values[name], f.loc)
}

// Rows returns the non-empty rows of group in index order
func (f Form) Rows(group string) []Form {
	rows := f.rows(group)
	out := make([]Form, len(rows))
	for i, r := range rows {
		out[i] = r.form
	}
	return out
}

type row struct {
	index int
	form  Form
}

func (f Form) rows(group string) []row {
	prefix := group + "."
	byIndex := make(map[int]map[string]string)

	for key, value := range f.values {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		idxText, field, _ := strings.Cut(rest, ".")
		idx, err := strconv.Atoi(idxText)
		if err != nil || idx < 0 {
			continue
		}
		if byIndex[idx] == nil {
			byIndex[idx] = make(map[string]string)
		}
		byIndex[idx][field] = value
	}

	indices := make([]int, 0, len(byIndex))
	for idx, values := range byIndex {
		if !blank(values) {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	out := make([]row, len(indices))
	for i, idx := range indices {
		out[i] = row{index: idx, form: Form{values: byIndex[idx], loc: f.loc}}
	}
	return out
}

func blank(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// withDefaults fills empty scalar fields from their declared defaults
func (f Form) withDefaults(fields []Field) Form {
	for _, field := range fields {
		if f.values[field.Name] == "" && field.Default != "" {
			f.values[field.Name] = field.Default
		}
	}
	return f
}

// check validates every scalar field and every row of every group
func (f Form) check(c *Calculator) error {
	for _, field := range c.Fields {
		if err := checkValue(field.Name, f.values[field.Name], field.tag()); err != nil {
			return err
		}
	}
	for _, g := range c.Groups {
		for _, r := range f.rows(g.Name) {
			for _, field := range g.Fields {
				if err := checkValue(field.Key(g.Name, r.index), r.form.values[field.Name], field.tag()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkValue(key, value, tag string) error {
	if tag == "" {
		return nil
	}
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		return errors.ValidationFailed(errors.ModuleService, key, value, reason(verrs[0]))
	}
	return errors.ValidationFailed(errors.ModuleService, key, value, err.Error())
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "numeric":
		return "must be a number"
	case "number":
		return "must be a whole number"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "timezone":
		return "must be an IANA time zone such as Europe/Berlin"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "failed rule " + fe.Tag()
}
