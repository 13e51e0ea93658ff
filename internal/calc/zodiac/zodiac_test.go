package zodiac

import "testing"

func TestSign(t *testing.T) {
	tests := []struct {
		month, day int
		want       string
	}{
		{3, 21, "Aries"},
		{4, 19, "Aries"},
		{4, 20, "Taurus"},
		{5, 17, "Taurus"},
		{6, 21, "Cancer"},
		{8, 23, "Virgo"},
		{11, 21, "Scorpio"},
		{11, 22, "Sagittarius"},
		{12, 21, "Sagittarius"},
		{12, 22, "Capricorn"},
		{12, 31, "Capricorn"},
		{1, 1, "Capricorn"},
		{1, 19, "Capricorn"},
		{1, 20, "Aquarius"},
		{2, 18, "Aquarius"},
		{2, 19, "Pisces"},
		{2, 29, "Pisces"},
		{3, 20, "Pisces"},
		{13, 1, Unknown},
		{0, 10, Unknown},
	}

	for _, tt := range tests {
		if got := Sign(tt.month, tt.day); got != tt.want {
			t.Errorf("Sign(%d, %d) = %q, want %q", tt.month, tt.day, got, tt.want)
		}
	}
}

func TestEveryDayHasExactlyOneSign(t *testing.T) {
	daysIn := []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

	for m := 1; m <= 12; m++ {
		for d := 1; d <= daysIn[m-1]; d++ {
			matches := 0
			for _, iv := range Table() {
				if iv.Matches(m, d) {
					matches++
				}
			}
			if matches != 1 {
				t.Errorf("(%d, %d) matched %d intervals, want 1", m, d, matches)
			}
		}
	}
}

func TestTableIsCopy(t *testing.T) {
	tbl := Table()
	if len(tbl) != 12 {
		t.Fatalf("len(Table()) = %d, want 12", len(tbl))
	}
	tbl[0].Name = "changed"
	if Sign(3, 21) != "Aries" {
		t.Error("modifying Table() result must not affect Sign")
	}
}
