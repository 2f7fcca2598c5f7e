package parser

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"09:30", 9.5},
		{"9:30", 9.5},
		{"00:00", 0},
		{"23:30", 23.5},
		{"10am", 10},
		{"10 AM", 10},
		{"2:30pm", 14.5},
		{"2 : 30 pm", 14.5},
		{"12pm", 12},
		{"12am", 0},
		{"7pm", 19},
		{"14", 14},
		{"  08:15  ", 8.25},
		{"", 0},
		{"xyz", 0},
		{"25:00", 0},
		{"10:75", 0},
		{"13pm", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseClockTime(tt.in); got != tt.want {
				t.Errorf("ParseClockTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatClockTimeRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s := FormatClockTime(float64(h) + float64(m)/60)
			if got := FormatClockTime(ParseClockTime(s)); got != s {
				t.Fatalf("round trip %s -> %s", s, got)
			}
		}
	}

	tests := []struct {
		in   float64
		want string
	}{
		{9.5, "09:30"},
		{14.25, "14:15"},
		{8.999, "09:00"},
		{-3, "00:00"},
		{24, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClockTime(tt.in); got != tt.want {
			t.Errorf("FormatClockTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeClockTime(t *testing.T) {
	got, err := NormalizeClockTime("2:30pm")
	if err != nil || got != "14:30" {
		t.Fatalf("NormalizeClockTime(2:30pm) = %q, %v", got, err)
	}
	if _, err := NormalizeClockTime("noonish"); err == nil {
		t.Fatal("expected error for unparseable time")
	}
	if !IsClockTime("09:05") || IsClockTime("9:05") || IsClockTime("24:00") {
		t.Fatal("IsClockTime must accept only zero-padded 24h values")
	}
}

func TestNormalizeDayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wed 10am class", "Wednesday"},
		{"TUESDAY", "Tuesday"},
		{"fri", "Friday"},
		{"sat morning", "Saturday"},
		{"Sunday", "Sunday"},
		{"xyz", "Monday"},
		{"", "Monday"},
		// Monday is checked first
		{"mon/thu", "Monday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeDayName(tt.in); got != tt.want {
				t.Errorf("NormalizeDayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	if got := WeekDays(false); len(got) != 5 || got[4] != "Friday" {
		t.Errorf("WeekDays(false) = %v", got)
	}
	all := WeekDays(true)
	if len(all) != 7 || all[0] != "Monday" || all[6] != "Sunday" {
		t.Errorf("WeekDays(true) = %v", all)
	}
	all[0] = "changed"
	if WeekDays(true)[0] != "Monday" {
		t.Error("WeekDays must return a copy")
	}
	if Weekday("thurs") != time.Thursday {
		t.Error("Weekday(thurs) should be Thursday")
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-01", "2024-03-01", false},
		{"15/01/2024", "2024-01-15", false},
		{"today", "2024-01-10", false},
		{"Tomorrow", "2024-01-11", false},
		{"3 days", "2024-01-13", false},
		{"1day", "2024-01-11", false},
		{"2 weeks", "2024-01-24", false},
		{"1w", "2024-01-17", false},
		{"31/02/2024", "", true},
		{"next friday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"2024-01-10": "2024-01-10 (today)",
		"2024-01-11": "2024-01-11 (tomorrow)",
		"2024-01-09": "2024-01-09 (yesterday)",
		"2024-01-13": "2024-01-13 (in 3 days)",
		"2024-03-01": "2024-03-01",
		"garbage":    "garbage",
	}
	for in, want := range tests {
		if got := FormatRelativeDate(in, now); got != want {
			t.Errorf("FormatRelativeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseQuickEvent(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	got := ParseQuickEvent("Quiz prep #study at:2pm on:tomorrow +weekly !remind", now)
	if len(got.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
	if got.Title != "Quiz prep" || got.Category != "study" || got.Time != "14:00" ||
		got.Date != "2024-01-11" || !got.Recurring || !got.Reminder {
		t.Errorf("ParseQuickEvent = %+v", got)
	}

	plain := ParseQuickEvent("Dentist", now)
	if plain.Title != "Dentist" || plain.Date != "2024-01-10" || plain.Time != "" || plain.Recurring {
		t.Errorf("plain = %+v", plain)
	}

	rel := ParseQuickEvent("Essay due in:2weeks #work", now)
	if rel.Date != "2024-01-24" || rel.Category != "work" || rel.Title != "Essay due" {
		t.Errorf("relative = %+v", rel)
	}

	bad := ParseQuickEvent("Party #fun at:99 on:someday", now)
	if len(bad.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", bad.Errors)
	}
	if bad.Title != "Party" {
		t.Errorf("bad title = %q", bad.Title)
	}
}

func TestNormalizeCourseCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"cs101", "CS101", false},
		{"CS 101", "CS101", false},
		{"math-2010a", "MATH2010A", false},
		{"", "", false},
		{"101", "", true},
		{"Intro to CS", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeCourseCode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeCourseCode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeCourseCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if IsValidCourseCode(tt.in) == tt.wantErr {
				t.Errorf("IsValidCourseCode(%q) disagrees with NormalizeCourseCode", tt.in)
			}
		})
	}
}
