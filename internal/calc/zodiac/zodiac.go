// Package zodiac maps calendar days onto western zodiac signs.
package zodiac

// Unknown is returned for a (month, day) pair that no interval covers
const Unknown = "Unknown"

// Interval is a named range of calendar days. Capricorn wraps the year end,
// so StartMonth may be greater than EndMonth.
type Interval struct {
	Name       string `json:"name" yaml:"name"`
	StartMonth int    `json:"start_month" yaml:"start_month"`
	StartDay   int    `json:"start_day" yaml:"start_day"`
	EndMonth   int    `json:"end_month" yaml:"end_month"`
	EndDay     int    `json:"end_day" yaml:"end_day"`
}

var table = []Interval{
	{"Aries", 3, 21, 4, 19},
	{"Taurus", 4, 20, 5, 20},
	{"Gemini", 5, 21, 6, 20},
	{"Cancer", 6, 21, 7, 22},
	{"Leo", 7, 23, 8, 22},
	{"Virgo", 8, 23, 9, 22},
	{"Libra", 9, 23, 10, 22},
	{"Scorpio", 10, 23, 11, 21},
	{"Sagittarius", 11, 22, 12, 21},
	{"Capricorn", 12, 22, 1, 19},
	{"Aquarius", 1, 20, 2, 18},
	{"Pisces", 2, 19, 3, 20},
}

// Matches reports whether (month, day) lies inside the interval
func (iv Interval) Matches(month, day int) bool {
	return (month == iv.StartMonth && day >= iv.StartDay) ||
		(month == iv.EndMonth && day <= iv.EndDay)
}

// Lookup returns the first interval containing (month, day)
func Lookup(month, day int) (Interval, bool) {
	for _, iv := range table {
		if iv.Matches(month, day) {
			return iv, true
		}
	}
	return Interval{}, false
}

// Sign returns the sign name for (month, day), or Unknown
func Sign(month, day int) string {
	if iv, ok := Lookup(month, day); ok {
		return iv.Name
	}
	return Unknown
}

// Table returns a copy of the interval table in calendar order from Aries
func Table() []Interval {
	out := make([]Interval, len(table))
	copy(out, table)
	return out
}
