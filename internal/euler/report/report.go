// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     report
// Description: German-labelled rendering of calculation outcomes
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

// Package report turns calculation outcomes into labelled lines for the CLI
// and the terminal UI. Result structs are walked through their YAML node
// tree so the lines keep the field order of the result type.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/euler/service"
)

// Line is one labelled value of a result
type Line struct {
	Key   string
	Label string
	Value string
	Depth int
	// Header lines introduce the nested lines that follow
	Header bool
}

// Options controls value formatting
type Options struct {
	Currency mathx.Currency
}

// DefaultOptions formats money in euro
func DefaultOptions() Options {
	return Options{Currency: mathx.EUR}
}

var labels = map[string]string{
	"a":                      "A",
	"age_gap":                "Differenz (Jahre)",
	"amount":                 "Betrag",
	"animal_years":           "Tierjahre",
	"assignments":            "Leistungen",
	"b":                      "B",
	"bill":                   "Rechnung",
	"biological_age":         "Biologisches Alter",
	"birth_date":             "Geburtsdatum",
	"birth_weekday":          "Wochentag der Geburt",
	"breed_size":             "Rassegröße",
	"calculation":            "Rechnung",
	"change":                 "Änderung",
	"chronological_age":      "Kalendarisches Alter",
	"composite_index":        "Gesamtindex",
	"conception_date":        "Empfängnis",
	"conception_display":     "Empfängnis (Text)",
	"contributions":          "Beiträge",
	"count":                  "Anzahl",
	"country":                "Land",
	"courses":                "Kurse",
	"credits":                "Credits",
	"current_age":            "Aktuelles Alter",
	"cycle_length":           "Zykluslänge",
	"date":                   "Datum",
	"day_shift":              "Tageswechsel",
	"days":                   "Tage",
	"days_remaining":         "Tage bis dahin",
	"decimal":                "Dezimalzahl",
	"denominator":            "Nenner",
	"direction":              "Richtung",
	"display":                "Anzeige",
	"dropped":                "Verworfen",
	"due_date":               "Errechneter Termin",
	"due_date_display":       "Termin (Text)",
	"end_day":                "Endtag",
	"end_month":              "Endmonat",
	"estimated_year":         "Geschätztes Todesjahr",
	"fetal_age":              "Alter des Fötus",
	"final":                  "Endpreis",
	"final_grade":            "Endnote (%)",
	"fraction":               "Bruch",
	"from":                   "Von",
	"from_display":           "Von (Text)",
	"from_zone":              "Von Zeitzone",
	"gender":                 "Geschlecht",
	"gestational_age":        "Schwangerschaftswoche",
	"gestational_days":       "Schwangerschaftstage",
	"gpa":                    "GPA",
	"grade":                  "Note",
	"hours":                  "Stunden",
	"human_age":              "Menschenjahre",
	"interest":               "Zinsen",
	"interpretation":         "Bewertung",
	"interval":               "Zeitraum",
	"letter_grade":           "Buchstabennote",
	"life_expectancy":        "Lebenserwartung",
	"life_stage":             "Lebensphase",
	"lmp":                    "Letzte Periode",
	"max":                    "Maximum",
	"max_score":              "Maximalpunkte",
	"mean":                   "Mittelwert",
	"median":                 "Median",
	"method":                 "Methode",
	"min":                    "Minimum",
	"minutes":                "Minuten",
	"mode":                   "Modus",
	"months":                 "Monate",
	"name":                   "Name",
	"new":                    "Neuer Wert",
	"next_birthday":          "Nächster Geburtstag",
	"no_mode":                "Kein Modus",
	"numerator":              "Zähler",
	"observed":               "Messwert",
	"offset_hours":           "Zeitverschiebung (h)",
	"old":                    "Alter Wert",
	"overdue":                "Überfällig",
	"people":                 "Personen",
	"per_person":             "Pro Person",
	"percent":                "Prozent",
	"percentage":             "Prozentsatz",
	"periods_per_year":       "Perioden pro Jahr",
	"price":                  "Preis",
	"principal":              "Kapital",
	"quantity":               "Menge",
	"rate":                   "Satz (%)",
	"ratio":                  "Verhältnis",
	"reference":              "Stichtag",
	"reference_mean":         "Referenzmittel",
	"reference_std_dev":      "Referenzstreuung",
	"remaining":              "Verbleibend",
	"remaining_years":        "Verbleibende Jahre",
	"savings":                "Ersparnis",
	"score":                  "Punkte",
	"sign":                   "Sternzeichen",
	"simplified":             "Gekürzt",
	"simplified_a":           "Gekürzt A",
	"simplified_b":           "Gekürzt B",
	"simplified_denominator": "Gekürzter Nenner",
	"simplified_numerator":   "Gekürzter Zähler",
	"species":                "Tierart",
	"start_day":              "Starttag",
	"start_month":            "Startmonat",
	"sum":                    "Summe",
	"tax":                    "Steuer",
	"tip":                    "Trinkgeld",
	"to":                     "Nach",
	"to_display":             "Nach (Text)",
	"to_zone":                "Nach Zeitzone",
	"total":                  "Gesamt",
	"total_credits":          "Credits gesamt",
	"total_grade_points":     "Notenpunkte gesamt",
	"total_weight":           "Gewichtung gesamt",
	"total_weighted_score":   "Gewichtete Punkte",
	"trimester":              "Trimester",
	"trimester_name":         "Trimester (Text)",
	"unit":                   "Einheit",
	"unit_price":             "Stückpreis",
	"value":                  "Wert",
	"values":                 "Werte",
	"weeks":                  "Wochen",
	"weight":                 "Gewichtung",
	"years":                  "Jahre",
	"z_score":                "Z-Wert",
	"zodiac_sign":            "Sternzeichen",
}

// money keys are rendered with the currency
var money = map[string]bool{
	"amount":     true,
	"bill":       true,
	"final":      true,
	"interest":   true,
	"per_person": true,
	"price":      true,
	"principal":  true,
	"savings":    true,
	"tax":        true,
	"tip":        true,
	"total":      true,
	"unit_price": true,
}

// Label returns the German label of a result key
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// Lines flattens the result of an outcome into labelled lines
func Lines(out *service.Outcome, opts Options) ([]Line, error) {
	if out == nil || out.Result == nil {
		return nil, nil
	}

	var node yaml.Node
	if err := node.Encode(out.Result); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	var lines []Line
	walk(&node, "", 0, opts, out.Calculator, &lines)
	return lines, nil
}

func walk(n *yaml.Node, key string, depth int, opts Options, calculator string, lines *[]Line) {
	switch n.Kind {
	case yaml.MappingNode:
		if key != "" {
			*lines = append(*lines, Line{Key: key, Label: Label(key), Depth: depth, Header: true})
			depth++
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			walk(n.Content[i+1], n.Content[i].Value, depth, opts, calculator, lines)
		}

	case yaml.SequenceNode:
		if scalars(n) {
			values := make([]string, len(n.Content))
			for i, item := range n.Content {
				values[i] = scalar(item, "", opts, calculator)
			}
			*lines = append(*lines, Line{Key: key, Label: Label(key), Value: strings.Join(values, ", "), Depth: depth})
			return
		}
		*lines = append(*lines, Line{Key: key, Label: Label(key), Depth: depth, Header: true})
		for i, item := range n.Content {
			*lines = append(*lines, Line{Key: key, Label: "#" + strconv.Itoa(i+1), Depth: depth + 1, Header: true})
			for j := 0; item.Kind == yaml.MappingNode && j+1 < len(item.Content); j += 2 {
				walk(item.Content[j+1], item.Content[j].Value, depth+2, opts, calculator, lines)
			}
		}

	case yaml.ScalarNode:
		*lines = append(*lines, Line{Key: key, Label: Label(key), Value: scalar(n, key, opts, calculator), Depth: depth})
	}
}

func scalars(n *yaml.Node) bool {
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

func scalar(n *yaml.Node, key string, opts Options, calculator string) string {
	switch n.ShortTag() {
	case "!!null":
		return "-"
	case "!!bool":
		if n.Value == "true" {
			return "ja"
		}
		return "nein"
	case "!!timestamp":
		return formatTime(n.Value)
	}

	if n.Value == "" {
		return "-"
	}
	if money[key] && isMoneyCalculator(calculator) {
		if d, err := decimal.NewFromString(n.Value); err == nil {
			return opts.Currency.Format(d)
		}
	}
	return n.Value
}

// isMoneyCalculator excludes calculators whose "amount" or "total" keys are
// not currency, like the percent-of share of a plain number.
func isMoneyCalculator(calculator string) bool {
	switch calculator {
	case "percent-of", "grade", "gpa", "average":
		return false
	}
	return true
}

func formatTime(v string) string {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return v
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02.01.2006")
	}
	return t.Format("02.01.2006 15:04 MST")
}

// Text renders an outcome as an indented label/value block
func Text(out *service.Outcome, opts Options) (string, error) {
	lines, err := Lines(out, opts)
	if err != nil {
		return "", err
	}

	width := 0
	for _, l := range lines {
		if w := len([]rune(l.Label)) + 2*l.Depth; w > width {
			width = w
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", out.Title, strings.Repeat("=", len([]rune(out.Title))))
	for _, l := range lines {
		indent := strings.Repeat("  ", l.Depth)
		if l.Header {
			fmt.Fprintf(&b, "%s%s:\n", indent, l.Label)
			continue
		}
		pad := width - len([]rune(l.Label)) - 2*l.Depth
		fmt.Fprintf(&b, "%s%s:%s %s\n", indent, l.Label, strings.Repeat(" ", pad), l.Value)
	}
	return b.String(), nil
}
