package clock

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestIsToday(t *testing.T) {
	now := date(2024, time.March, 10)
	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-10", true},
		{"2024-03-09", false},
		{"2024-03-11", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := IsToday(tt.date, now); got != tt.want {
			t.Errorf("IsToday(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsYesterday(t *testing.T) {
	tests := []struct {
		name string
		date string
		now  time.Time
		want bool
	}{
		{"plain", "2024-03-09", date(2024, time.March, 10), true},
		{"same day", "2024-03-10", date(2024, time.March, 10), false},
		{"two days", "2024-03-08", date(2024, time.March, 10), false},
		{"month boundary", "2024-02-29", date(2024, time.March, 1), true},
		{"year boundary", "2023-12-31", date(2024, time.January, 1), true},
		{"empty", "", date(2024, time.March, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsYesterday(tt.date, tt.now); got != tt.want {
				t.Errorf("IsYesterday(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{date(2024, time.January, 1), 1},
		{date(2024, time.February, 1), 32},
		{date(2024, time.December, 31), 366},
		{date(2023, time.December, 31), 365},
	}
	for _, tt := range tests {
		if got := DayOfYear(tt.now); got != tt.want {
			t.Errorf("DayOfYear(%s) = %d, want %d", ISODate(tt.now), got, tt.want)
		}
	}
}

func TestFixedClock(t *testing.T) {
	c := &Fixed{T: date(2024, time.March, 10)}
	if Today(c) != "2024-03-10" {
		t.Fatalf("Today = %q", Today(c))
	}
	c.AddDays(1)
	if Today(c) != "2024-03-11" {
		t.Errorf("after AddDays(1) Today = %q", Today(c))
	}
	c.Advance(24 * time.Hour)
	if Today(c) != "2024-03-12" {
		t.Errorf("after Advance(24h) Today = %q", Today(c))
	}
}
