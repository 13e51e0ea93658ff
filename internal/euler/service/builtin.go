package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
	"github.com/msto63/mRW/internal/calc/age"
	"github.com/msto63/mRW/internal/calc/bioage"
	"github.com/msto63/mRW/internal/calc/finance"
	"github.com/msto63/mRW/internal/calc/grades"
	"github.com/msto63/mRW/internal/calc/lifeexp"
	"github.com/msto63/mRW/internal/calc/numbers"
	"github.com/msto63/mRW/internal/calc/petage"
	"github.com/msto63/mRW/internal/calc/pregnancy"
	"github.com/msto63/mRW/internal/calc/stats"
	"github.com/msto63/mRW/internal/calc/tzconv"
	"github.com/msto63/mRW/internal/calc/zodiac"
	"github.com/msto63/mRW/pkg/core/config"
)

// ZodiacResult is the outcome of the zodiac calculator
type ZodiacResult struct {
	Date     string          `json:"date" yaml:"date"`
	Sign     string          `json:"sign" yaml:"sign"`
	Interval zodiac.Interval `json:"interval" yaml:"interval"`
}

// BioAgeResult adds the reading of the age gap to the score
type BioAgeResult struct {
	bioage.Result `yaml:",inline"`
	Reading       string `json:"interpretation" yaml:"interpretation"`
}

// PregnancyResult adds the overdue flag and remaining text to the dates
type PregnancyResult struct {
	pregnancy.Result `yaml:",inline"`
	IsOverdue        bool   `json:"overdue" yaml:"overdue"`
	Remaining        string `json:"remaining" yaml:"remaining"`
}

// TimezoneResult adds the calendar day shift to a conversion
type TimezoneResult struct {
	tzconv.Result `yaml:",inline"`
	DayShift      int `json:"day_shift" yaml:"day_shift"`
}

// Builtin returns a registry holding every calculator. defaults supplies
// the preset values of the configurable fields.
func Builtin(defaults config.CalculatorsConfig) *Registry {
	r := NewRegistry()
	registerDateCalculators(r, defaults)
	registerHealthCalculators(r, defaults)
	registerFinanceCalculators(r)
	registerNumberCalculators(r)
	registerEducationCalculators(r)
	return r
}

// registerDateCalculators registers age, zodiac, pregnancy and timezone
func registerDateCalculators(r *Registry, defaults config.CalculatorsConfig) {
	r.Register(&Calculator{
		Name:        "age",
		Title:       "Altersrechner",
		Description: "Zerlegt das Alter in Jahre, Monate, Wochen, Tage, Stunden und Minuten",
		Category:    CategoryDate,
		Fields: []Field{
			{Name: "birth", Label: "Geburtsdatum", Required: true, Help: "z.B. 1990-05-17"},
			{Name: "at", Label: "Stichtag", Help: "Datum und Uhrzeit, Standard: jetzt"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			birth, err := f.Date("birth")
			if err != nil {
				return nil, err
			}
			ref, err := referenceTime(f, "at", now, true)
			if err != nil {
				return nil, err
			}
			return age.Decompose(birth, ref)
		},
	})

	r.Register(&Calculator{
		Name:        "zodiac",
		Title:       "Sternzeichen",
		Description: "Ermittelt das westliche Sternzeichen eines Datums",
		Category:    CategoryDate,
		Fields: []Field{
			{Name: "date", Label: "Geburtsdatum", Required: true},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			d, err := f.Date("date")
			if err != nil {
				return nil, err
			}
			iv, ok := zodiac.Lookup(int(d.Month()), d.Day())
			if !ok {
				return nil, errors.InvalidInput(errors.ModuleZodiac, "Lookup", f.String("date"), "calendar date")
			}
			return &ZodiacResult{Date: d.Format(timex.ISO8601Date), Sign: iv.Name, Interval: iv}, nil
		},
	})

	r.Register(&Calculator{
		Name:        "pregnancy",
		Title:       "Schwangerschaftsrechner",
		Description: "Geburtstermin, Empfängnis, Schwangerschaftswoche und Trimester",
		Category:    CategoryDate,
		Fields: []Field{
			{Name: "lmp", Label: "Erster Tag der letzten Periode", Required: true},
			{Name: "cycle", Label: "Zykluslänge (Tage)", Default: strconv.Itoa(defaults.DefaultCycleLength), Rules: "number",
				Help: "21 bis 35 Tage"},
			{Name: "today", Label: "Heute", Help: "Standard: aktuelles Datum"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			lmp, err := f.Date("lmp")
			if err != nil {
				return nil, err
			}
			cycle, err := f.Int("cycle")
			if err != nil {
				return nil, err
			}
			today, err := referenceTime(f, "today", now, false)
			if err != nil {
				return nil, err
			}
			res, err := pregnancy.Calculate(lmp, cycle, today)
			if err != nil {
				return nil, err
			}
			return &PregnancyResult{Result: *res, IsOverdue: res.Overdue(), Remaining: res.RemainingDisplay()}, nil
		},
	})

	r.Register(&Calculator{
		Name:        "timezone",
		Title:       "Zeitzonen-Umrechner",
		Description: "Rechnet eine Uhrzeit zwischen zwei IANA-Zeitzonen um",
		Category:    CategoryDate,
		Fields: []Field{
			{Name: "time", Label: "Datum und Uhrzeit", Help: "z.B. 2024-03-10 14:30, Standard: jetzt"},
			{Name: "from", Label: "Von Zeitzone", Required: true, Rules: "timezone", Help: "z.B. Europe/Berlin"},
			{Name: "to", Label: "Nach Zeitzone", Required: true, Rules: "timezone", Help: "z.B. America/New_York"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			t := now
			if f.Has("time") {
				var err error
				if t, err = f.DateTime("time"); err != nil {
					return nil, err
				}
			} else if loc, err := timex.LoadLocation(f.String("from")); err == nil {
				t = now.In(loc)
			}
			res, err := tzconv.Convert(t, f.String("from"), f.String("to"))
			if err != nil {
				return nil, err
			}
			return &TimezoneResult{Result: *res, DayShift: res.DayShift()}, nil
		},
	})
}

// registerHealthCalculators registers the pet age, biological age and life
// expectancy calculators
func registerHealthCalculators(r *Registry, defaults config.CalculatorsConfig) {
	r.Register(&Calculator{
		Name:        "dog-age",
		Title:       "Hundealter",
		Description: "Rechnet Hundejahre in Menschenjahre um",
		Category:    CategoryHealth,
		Fields: []Field{
			{Name: "years", Label: "Alter in Jahren", Required: true, Rules: "numeric"},
			{Name: "method", Label: "Methode", Default: defaults.DefaultDogMethod, Rules: "oneof=logarithmic traditional"},
			{Name: "breed", Label: "Größe", Default: string(petage.BreedMedium), Rules: "oneof=small medium large",
				Help: "nur für die traditionelle Methode"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			years, err := f.Float("years")
			if err != nil {
				return nil, err
			}
			method, err := petage.ParseMethod(f.String("method"))
			if err != nil {
				return nil, err
			}
			breed, err := petage.ParseBreedSize(f.String("breed"))
			if err != nil {
				return nil, err
			}
			return petage.Dog(years, method, breed)
		},
	})

	r.Register(&Calculator{
		Name:        "cat-age",
		Title:       "Katzenalter",
		Description: "Rechnet Katzenjahre in Menschenjahre um",
		Category:    CategoryHealth,
		Fields: []Field{
			{Name: "years", Label: "Alter in Jahren", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			years, err := f.Float("years")
			if err != nil {
				return nil, err
			}
			return petage.Cat(years)
		},
	})

	r.Register(&Calculator{
		Name:        "bio-age",
		Title:       "Biologisches Alter",
		Description: "Schätzt das biologische Alter aus gewichteten Biomarkern",
		Category:    CategoryHealth,
		Fields: append([]Field{
			{Name: "age", Label: "Chronologisches Alter", Required: true, Rules: "numeric"},
		}, biomarkerFields...),
		Groups: []Group{{
			Name:  "marker",
			Label: "Weitere Biomarker",
			Rows:  1,
			Fields: []Field{
				{Name: "name", Label: "Name", Required: true},
				{Name: "value", Label: "Messwert", Required: true},
				{Name: "mean", Label: "Referenzmittel", Required: true, Rules: "numeric"},
				{Name: "stddev", Label: "Standardabweichung", Required: true, Rules: "numeric"},
				{Name: "weight", Label: "Gewicht", Required: true, Rules: "numeric"},
			},
		}},
		Run: runBioAge,
	})

	r.Register(&Calculator{
		Name:        "life-expectancy",
		Title:       "Lebenserwartung",
		Description: "Schätzt die Lebenserwartung nach Land und Geschlecht",
		Category:    CategoryHealth,
		Fields: []Field{
			{Name: "age", Label: "Aktuelles Alter", Required: true, Rules: "numeric"},
			{Name: "gender", Label: "Geschlecht", Default: string(lifeexp.Male), Rules: "oneof=male female"},
			{Name: "country", Label: "Land", Default: defaults.DefaultCountry,
				Help: "Ländercode: " + strings.Join(lifeexp.Countries(), ", ")},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			a, err := f.Float("age")
			if err != nil {
				return nil, err
			}
			gender, err := lifeexp.ParseGender(f.String("gender"))
			if err != nil {
				return nil, err
			}
			return lifeexp.Estimate(a, gender, strings.ToUpper(f.String("country")), now.Year())
		},
	})
}

// biomarkerFields follow the order of bioage.DefaultPanel
var biomarkerFields = []Field{
	{Name: "systolic", Label: "Systolischer Blutdruck (mmHg)"},
	{Name: "bmi", Label: "BMI"},
	{Name: "heart_rate", Label: "Ruhepuls (bpm)"},
	{Name: "glucose", Label: "Nüchternblutzucker (mg/dl)"},
	{Name: "cholesterol", Label: "Gesamtcholesterin (mg/dl)"},
	{Name: "hba1c", Label: "HbA1c (%)"},
}

func runBioAge(f Form, now time.Time) (interface{}, error) {
	chronological, err := f.Float("age")
	if err != nil {
		return nil, err
	}

	panel := bioage.DefaultPanel()
	for i, field := range biomarkerFields {
		v, ok := observed(f, field.Name)
		if !ok {
			continue
		}
		if err := panel.Observe(i, v); err != nil {
			return nil, err
		}
	}

	for _, row := range f.Rows("marker") {
		s := bioage.Sample{Name: row.String("name")}
		if v, ok := observed(row, "value"); ok {
			s.Observed = &v
		}
		if s.ReferenceMean, err = row.Float("mean"); err != nil {
			return nil, err
		}
		if s.ReferenceStdDev, err = row.Float("stddev"); err != nil {
			return nil, err
		}
		if s.Weight, err = row.Float("weight"); err != nil {
			return nil, err
		}
		panel.Add(s)
	}

	res, err := panel.Score(chronological)
	if err != nil {
		return nil, err
	}
	return &BioAgeResult{Result: *res, Reading: res.Interpretation()}, nil
}

// observed parses a biomarker reading. Readings that are not numbers stay
// unobserved and end up in Result.Dropped.
func observed(f Form, name string) (float64, bool) {
	if !f.Has(name) {
		return 0, false
	}
	v, err := f.Float(name)
	if err != nil {
		return 0, false
	}
	return v, true
}

// registerFinanceCalculators registers the interest and pricing calculators
func registerFinanceCalculators(r *Registry) {
	r.Register(&Calculator{
		Name:        "simple-interest",
		Title:       "Einfache Zinsen",
		Description: "Zinsen ohne Zinseszins: P·r·t",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "principal", Label: "Kapital", Required: true, Rules: "numeric"},
			{Name: "rate", Label: "Zinssatz (% p.a.)", Required: true, Rules: "numeric"},
			{Name: "years", Label: "Laufzeit (Jahre)", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			p, r, t, err := decimals3(f, "principal", "rate", "years")
			if err != nil {
				return nil, err
			}
			return finance.SimpleInterest(p, r, t)
		},
	})

	frequencyNames := make([]string, 0, len(finance.Frequencies()))
	for _, fr := range finance.Frequencies() {
		frequencyNames = append(frequencyNames, fr.Name)
	}

	r.Register(&Calculator{
		Name:        "compound-interest",
		Title:       "Zinseszins",
		Description: "Endkapital mit Zinseszins: P·(1 + r/n)^(n·t)",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "principal", Label: "Kapital", Required: true, Rules: "numeric"},
			{Name: "rate", Label: "Zinssatz (% p.a.)", Required: true, Rules: "numeric"},
			{Name: "years", Label: "Laufzeit (Jahre)", Required: true, Rules: "numeric"},
			{Name: "frequency", Label: "Zinsperioden pro Jahr", Default: "monthly",
				Help: strings.Join(frequencyNames, ", ") + " oder eine Zahl"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			p, r, t, err := decimals3(f, "principal", "rate", "years")
			if err != nil {
				return nil, err
			}
			n, err := finance.ParseFrequency(f.String("frequency"))
			if err != nil {
				return nil, err
			}
			return finance.CompoundInterest(p, r, n, t)
		},
	})

	r.Register(&Calculator{
		Name:        "discount",
		Title:       "Rabattrechner",
		Description: "Ersparnis und Endpreis nach Rabatt",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "price", Label: "Preis", Required: true, Rules: "numeric"},
			{Name: "percent", Label: "Rabatt (%)", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			price, pct, err := decimals2(f, "price", "percent")
			if err != nil {
				return nil, err
			}
			return finance.Discount(price, pct)
		},
	})

	r.Register(&Calculator{
		Name:        "sales-tax",
		Title:       "Umsatzsteuer",
		Description: "Steuerbetrag und Bruttopreis",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "price", Label: "Nettopreis", Required: true, Rules: "numeric"},
			{Name: "rate", Label: "Steuersatz (%)", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			price, rate, err := decimals2(f, "price", "rate")
			if err != nil {
				return nil, err
			}
			return finance.SalesTax(price, rate)
		},
	})

	r.Register(&Calculator{
		Name:        "percentage-change",
		Title:       "Prozentuale Veränderung",
		Description: "Veränderung zwischen altem und neuem Wert in Prozent",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "old", Label: "Alter Wert", Required: true, Rules: "numeric"},
			{Name: "new", Label: "Neuer Wert", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			oldValue, newValue, err := decimals2(f, "old", "new")
			if err != nil {
				return nil, err
			}
			return finance.PercentageChange(oldValue, newValue)
		},
	})

	r.Register(&Calculator{
		Name:        "unit-price",
		Title:       "Grundpreis",
		Description: "Preis pro Einheit",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "price", Label: "Preis", Required: true, Rules: "numeric"},
			{Name: "quantity", Label: "Menge", Required: true, Rules: "numeric"},
			{Name: "unit", Label: "Einheit", Default: "item", Help: strings.Join(finance.Units, ", ")},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			price, qty, err := decimals2(f, "price", "quantity")
			if err != nil {
				return nil, err
			}
			return finance.UnitPrice(price, qty, f.String("unit"))
		},
	})

	r.Register(&Calculator{
		Name:        "tip",
		Title:       "Trinkgeldrechner",
		Description: "Trinkgeld, Gesamtbetrag und Anteil pro Person",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "bill", Label: "Rechnungsbetrag", Required: true, Rules: "numeric"},
			{Name: "percent", Label: "Trinkgeld (%)", Default: "15", Rules: "numeric"},
			{Name: "people", Label: "Personen", Default: "1", Rules: "number"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			bill, pct, err := decimals2(f, "bill", "percent")
			if err != nil {
				return nil, err
			}
			people, err := f.Int("people")
			if err != nil {
				return nil, err
			}
			return finance.Tip(bill, pct, people)
		},
	})

	r.Register(&Calculator{
		Name:        "percent-of",
		Title:       "Prozentrechner",
		Description: "Wie viel sind x Prozent von y",
		Category:    CategoryFinance,
		Fields: []Field{
			{Name: "percent", Label: "Prozent", Required: true, Rules: "numeric"},
			{Name: "value", Label: "Grundwert", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			pct, value, err := decimals2(f, "percent", "value")
			if err != nil {
				return nil, err
			}
			return finance.PercentOf(pct, value), nil
		},
	})
}

// registerNumberCalculators registers ratio, fraction and average
func registerNumberCalculators(r *Registry) {
	r.Register(&Calculator{
		Name:        "ratio",
		Title:       "Verhältnisrechner",
		Description: "Kürzt das Verhältnis a:b",
		Category:    CategoryNumbers,
		Fields: []Field{
			{Name: "a", Label: "Wert A", Required: true, Rules: "numeric"},
			{Name: "b", Label: "Wert B", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			a, err := f.Float("a")
			if err != nil {
				return nil, err
			}
			b, err := f.Float("b")
			if err != nil {
				return nil, err
			}
			return numbers.Ratio(a, b)
		},
	})

	r.Register(&Calculator{
		Name:        "fraction-to-decimal",
		Title:       "Bruch in Dezimalzahl",
		Description: "Wandelt einen Bruch in eine Dezimalzahl um",
		Category:    CategoryNumbers,
		Fields: []Field{
			{Name: "numerator", Label: "Zähler", Required: true, Rules: "numeric"},
			{Name: "denominator", Label: "Nenner", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			num, den, err := decimals2(f, "numerator", "denominator")
			if err != nil {
				return nil, err
			}
			return numbers.FractionToDecimal(num, den)
		},
	})

	r.Register(&Calculator{
		Name:        "decimal-to-fraction",
		Title:       "Dezimalzahl in Bruch",
		Description: "Wandelt eine Dezimalzahl in einen gekürzten Bruch um",
		Category:    CategoryNumbers,
		Fields: []Field{
			{Name: "decimal", Label: "Dezimalzahl", Required: true, Rules: "numeric"},
		},
		Run: func(f Form, now time.Time) (interface{}, error) {
			return numbers.DecimalToFraction(f.String("decimal"))
		},
	})

	r.Register(&Calculator{
		Name:        "average",
		Title:       "Mittelwertrechner",
		Description: "Mittelwert, Median, Modus, Minimum und Maximum",
		Category:    CategoryNumbers,
		Fields: []Field{
			{Name: "values", Label: "Werte", Help: "durch Komma oder Leerzeichen getrennt"},
		},
		Groups: []Group{{
			Name:   "number",
			Label:  "Zahlen",
			Rows:   5,
			Fields: []Field{{Label: "Zahl"}},
		}},
		Run: func(f Form, now time.Time) (interface{}, error) {
			var raw []string
			for _, row := range f.Rows("number") {
				raw = append(raw, row.String(""))
			}
			raw = append(raw, splitValues(f.String("values"))...)
			return stats.Summarize(stats.ParseValues(raw))
		},
	})
}

// registerEducationCalculators registers GPA and weighted grade
func registerEducationCalculators(r *Registry) {
	r.Register(&Calculator{
		Name:        "gpa",
		Title:       "Notendurchschnitt (GPA)",
		Description: "Nach Leistungspunkten gewichteter Notendurchschnitt",
		Category:    CategoryEducation,
		Groups: []Group{{
			Name:  "course",
			Label: "Kurse",
			Rows:  3,
			Fields: []Field{
				{Name: "name", Label: "Kurs"},
				{Name: "credits", Label: "Leistungspunkte", Required: true, Rules: "numeric"},
				{Name: "grade", Label: "Note", Required: true, Help: strings.Join(grades.Letters, ", ")},
			},
		}},
		Run: func(f Form, now time.Time) (interface{}, error) {
			var courses []grades.Course
			for _, row := range f.Rows("course") {
				credits, err := row.Float("credits")
				if err != nil {
					return nil, err
				}
				courses = append(courses, grades.Course{
					Name:    row.String("name"),
					Credits: credits,
					Grade:   row.String("grade"),
				})
			}
			return grades.GPA(courses)
		},
	})

	r.Register(&Calculator{
		Name:        "grade",
		Title:       "Gewichtete Note",
		Description: "Gewichtete Gesamtnote aus Teilleistungen",
		Category:    CategoryEducation,
		Groups: []Group{{
			Name:  "assignment",
			Label: "Teilleistungen",
			Rows:  3,
			Fields: []Field{
				{Name: "name", Label: "Name"},
				{Name: "score", Label: "Punkte", Required: true, Rules: "numeric"},
				{Name: "max_score", Label: "Maximalpunkte", Required: true, Rules: "numeric"},
				{Name: "weight", Label: "Gewicht", Required: true, Rules: "numeric"},
			},
		}},
		Run: func(f Form, now time.Time) (interface{}, error) {
			var assignments []grades.Assignment
			for _, row := range f.Rows("assignment") {
				a := grades.Assignment{Name: row.String("name")}
				var err error
				if a.Score, err = row.Float("score"); err != nil {
					return nil, err
				}
				if a.MaxScore, err = row.Float("max_score"); err != nil {
					return nil, err
				}
				if a.Weight, err = row.Float("weight"); err != nil {
					return nil, err
				}
				assignments = append(assignments, a)
			}
			return grades.WeightedGrade(assignments)
		},
	})
}

// referenceTime returns the value of name, or now when it is empty. With
// clock set the value may carry a time of day.
func referenceTime(f Form, name string, now time.Time, clock bool) (time.Time, error) {
	if !f.Has(name) {
		return now, nil
	}
	if clock {
		return f.DateTime(name)
	}
	return f.Date(name)
}

func decimals2(f Form, a, b string) (da, db decimal.Decimal, err error) {
	if da, err = f.Decimal(a); err != nil {
		return
	}
	db, err = f.Decimal(b)
	return
}

func decimals3(f Form, a, b, c string) (da, db, dc decimal.Decimal, err error) {
	if da, db, err = decimals2(f, a, b); err != nil {
		return
	}
	dc, err = f.Decimal(c)
	return
}

func splitValues(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}
