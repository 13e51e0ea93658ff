// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     service
// Description: Calculator registry of the Euler service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package service

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/msto63/mRW/foundation/core/errors"
)

// Calculator categories
const (
	CategoryDate      = "Datum & Zeit"
	CategoryHealth    = "Gesundheit"
	CategoryFinance   = "Finanzen"
	CategoryNumbers   = "Zahlen"
	CategoryEducation = "Bildung"
)

// Field describes one form input of a calculator
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label" yaml:"label"`
	Required bool   `json:"required" yaml:"required"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
	Rules    string `json:"rules,omitempty" yaml:"rules,omitempty"` // validator tag
}

// Key returns the form key of the field inside group row i. A field without
// a name is the row value itself.
func (f Field) Key(group string, i int) string {
	if group == "" {
		return f.Name
	}
	if f.Name == "" {
		return group + "." + strconv.Itoa(i)
	}
	return group + "." + strconv.Itoa(i) + "." + f.Name
}

// tag builds the validator tag for the field
func (f Field) tag() string {
	switch {
	case f.Required && f.Rules != "":
		return "required," + f.Rules
	case f.Required:
		return "required"
	case f.Rules != "":
		return "omitempty," + f.Rules
	}
	return ""
}

// Group is an ordered list of rows sharing the same fields, passed as
// indexed keys like "course.0.credits". Rows have no identity beyond their
// position.
type Group struct {
	Name   string  `json:"name" yaml:"name"`
	Label  string  `json:"label" yaml:"label"`
	Rows   int     `json:"rows" yaml:"rows"` // rows a form shows initially
	Fields []Field `json:"fields" yaml:"fields"`
}

// RunFunc executes a calculator on validated form values
type RunFunc func(form Form, now time.Time) (interface{}, error)

// Calculator is a registered calculator
type Calculator struct {
	Name        string  `json:"name" yaml:"name"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Fields      []Field `json:"fields" yaml:"fields"`
	Groups      []Group `json:"groups,omitempty" yaml:"groups,omitempty"`
	Run         RunFunc `json:"-" yaml:"-"`
}

// Registry holds the calculators by name
type Registry struct {
	mu          sync.RWMutex
	calculators map[string]*Calculator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{calculators: make(map[string]*Calculator)}
}

// Register adds or replaces a calculator
func (r *Registry) Register(c *Calculator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calculators[c.Name] = c
}

// Lookup returns the calculator registered under name
func (r *Registry) Lookup(name string) (*Calculator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.calculators[name]
	if !ok {
		return nil, errors.NotFound(errors.ModuleService, "Lookup", name)
	}
	return c, nil
}

// List returns all calculators ordered by category and name
func (r *Registry) List() []*Calculator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Calculator, 0, len(r.calculators))
	for _, c := range r.calculators {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return categoryRank(out[i].Category) < categoryRank(out[j].Category)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the registered names in alphabetical order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func categoryRank(category string) int {
	for i, c := range []string{CategoryDate, CategoryHealth, CategoryFinance, CategoryNumbers, CategoryEducation} {
		if c == category {
			return i
		}
	}
	return 99
}
