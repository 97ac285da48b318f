package folio

import (
	"testing"
	"time"
)

func TestNewDateNormalizes(t *testing.T) {
	// day 0 rolls back to the last day of the previous month
	got := NewDate(2024, time.March, 0)
	want := NewDate(2024, time.February, 29)
	if got != want {
		t.Errorf("NewDate(2024, March, 0) = %s, want %s", got, want)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-07-01 ", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"2025/07/01", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDate(%q) error = %v, want error %v", tt.input, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2024, time.January, 1), NewDate(2024, time.January, 1), 0},
		{NewDate(2024, time.January, 1), NewDate(2024, time.January, 31), 30},
		{NewDate(2024, time.January, 1), NewDate(2024, time.December, 31), 365}, // leap year
		{NewDate(2024, time.January, 31), NewDate(2024, time.January, 1), -30},
	}
	for _, tt := range tests {
		if got := tt.to.DaysSince(tt.from); got != tt.want {
			t.Errorf("%s.DaysSince(%s) = %d, want %d", tt.to, tt.from, got, tt.want)
		}
	}
}

func TestYearsSince(t *testing.T) {
	from := NewDate(2020, time.January, 1)
	to := NewDate(2020, time.December, 31) // 365 days later
	if got := to.YearsSince(from); got != 1.0 {
		t.Errorf("YearsSince = %v, want 1.0", got)
	}
}

func TestStartEndOf(t *testing.T) {
	d := NewDate(2024, time.August, 14) // a Wednesday
	tests := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, NewDate(2024, time.August, 12), NewDate(2024, time.August, 18)},
		{Monthly, NewDate(2024, time.August, 1), NewDate(2024, time.August, 31)},
		{Quarterly, NewDate(2024, time.July, 1), NewDate(2024, time.September, 30)},
		{Yearly, NewDate(2024, time.January, 1), NewDate(2024, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			if got := d.StartOf(tt.period); got != tt.start {
				t.Errorf("StartOf = %s, want %s", got, tt.start)
			}
			if got := d.EndOf(tt.period); got != tt.end {
				t.Errorf("EndOf = %s, want %s", got, tt.end)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 7)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-03-07"` {
		t.Errorf("MarshalJSON = %s, want %q", data, `"2025-03-07"`)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
