// Package grades computes a grade point average from letter grades and a
// weighted percentage grade from scored assignments.
package grades

import (
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
)

var points = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// Letters lists the accepted letter grades from best to worst
var Letters = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"}

type band struct {
	min    float64
	letter string
}

var bands = []band{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

// Points returns the grade points of a letter grade
func Points(letter string) (float64, bool) {
	p, ok := points[normalize(letter)]
	return p, ok
}

// Letter maps a percentage to its letter grade
func Letter(pct float64) string {
	for _, b := range bands {
		if pct >= b.min {
			return b.letter
		}
	}
	return "F"
}

// Course is one GPA entry
type Course struct {
	Name    string  `json:"name" yaml:"name"`
	Credits float64 `json:"credits" yaml:"credits"`
	Grade   string  `json:"grade" yaml:"grade"`
}

// GPAResult is the outcome of GPA
type GPAResult struct {
	Courses          []Course `json:"courses" yaml:"courses"`
	TotalCredits     float64  `json:"total_credits" yaml:"total_credits"`
	TotalGradePoints float64  `json:"total_grade_points" yaml:"total_grade_points"`
	GPA              float64  `json:"gpa" yaml:"gpa"`
}

// GPA computes Σ(points·credits)/Σcredits. Courses without positive credits
// are skipped.
func GPA(courses []Course) (*GPAResult, error) {
	res := &GPAResult{}
	for _, c := range courses {
		if !mathx.IsFinite(c.Credits) || c.Credits <= 0 {
			continue
		}
		p, ok := Points(c.Grade)
		if !ok {
			return nil, errors.InvalidInput(errors.ModuleGrades, "GPA", c.Grade, "letter grade A+ to F")
		}
		c.Grade = normalize(c.Grade)
		res.Courses = append(res.Courses, c)
		res.TotalCredits += c.Credits
		res.TotalGradePoints += p * c.Credits
	}
	if len(res.Courses) == 0 {
		return nil, errors.InvalidInput(errors.ModuleGrades, "GPA", len(courses), "at least one course with credits > 0")
	}
	res.GPA = res.TotalGradePoints / res.TotalCredits
	return res, nil
}

// Assignment is one weighted grade entry
type Assignment struct {
	Name     string  `json:"name" yaml:"name"`
	Score    float64 `json:"score" yaml:"score"`
	MaxScore float64 `json:"max_score" yaml:"max_score"`
	Weight   float64 `json:"weight" yaml:"weight"`
}

// Percentage returns score/maxScore·100
func (a Assignment) Percentage() float64 {
	return a.Score / a.MaxScore * 100
}

// GradeResult is the outcome of WeightedGrade
type GradeResult struct {
	Assignments        []Assignment `json:"assignments" yaml:"assignments"`
	TotalWeightedScore float64      `json:"total_weighted_score" yaml:"total_weighted_score"`
	TotalWeight        float64      `json:"total_weight" yaml:"total_weight"`
	FinalGrade         float64      `json:"final_grade" yaml:"final_grade"`
	LetterGrade        string       `json:"letter_grade" yaml:"letter_grade"`
}

// WeightedGrade computes Σ(pct·weight)/Σweight. Assignments without a
// positive maximum score are skipped.
func WeightedGrade(assignments []Assignment) (*GradeResult, error) {
	res := &GradeResult{}
	for _, a := range assignments {
		if !mathx.IsFinite(a.MaxScore) || a.MaxScore <= 0 {
			continue
		}
		if !mathx.IsFinite(a.Score) || !mathx.IsFinite(a.Weight) || a.Weight < 0 {
			return nil, errors.InvalidInput(errors.ModuleGrades, "WeightedGrade", a.Name, "finite score and weight >= 0")
		}
		res.Assignments = append(res.Assignments, a)
		res.TotalWeightedScore += a.Percentage() * a.Weight
		res.TotalWeight += a.Weight
	}
	if len(res.Assignments) == 0 || res.TotalWeight == 0 {
		return nil, errors.InvalidInput(errors.ModuleGrades, "WeightedGrade", len(assignments), "at least one assignment with max score > 0 and weight > 0")
	}
	res.FinalGrade = res.TotalWeightedScore / res.TotalWeight
	res.LetterGrade = Letter(res.FinalGrade)
	return res, nil
}

func normalize(letter string) string {
	letter = strings.ReplaceAll(letter, "−", "-")
	return strings.ToUpper(strings.TrimSpace(letter))
}
