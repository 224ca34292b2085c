package models

import (
	"testing"
	"time"
)

func TestDaysOfWeekRoundTrip(t *testing.T) {
	days := DaysOfWeek{Monday, Wednesday, Friday}

	v, err := days.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "MONDAY,WEDNESDAY,FRIDAY" {
		t.Errorf("Value = %q", v)
	}

	var scanned DaysOfWeek
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scanned) != 3 || !scanned.Contains(Wednesday) {
		t.Errorf("scanned = %v", scanned)
	}
}

func TestDaysOfWeekEmpty(t *testing.T) {
	var days DaysOfWeek

	v, err := days.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "" {
		t.Errorf("Value = %q, want empty", v)
	}

	var scanned DaysOfWeek
	if err := scanned.Scan(""); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scanned) != 0 {
		t.Errorf("scanned = %v, want empty", scanned)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Errorf("String = %q", d.String())
	}
	if d.Weekday() != time.Saturday {
		t.Errorf("Weekday = %v, want Saturday", d.Weekday())
	}

	for _, bad := range []string{"", "15/06/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) accepted", bad)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	if got := WeekdayOf(NewDate(2024, time.June, 10)); got != Monday {
		t.Errorf("WeekdayOf(2024-06-10) = %s, want MONDAY", got)
	}
	if got := WeekdayOf(NewDate(2024, time.June, 16)); got != Sunday {
		t.Errorf("WeekdayOf(2024-06-16) = %s, want SUNDAY", got)
	}
}

func TestRecurrenceProjection(t *testing.T) {
	target := NewDate(2024, time.June, 15)

	daily := Goal{Type: GoalTypeDaily, DaysOfWeek: DaysOfWeek{Monday}}
	if rec, ok := daily.Recurrence().(Daily); !ok || !rec.Days.Contains(Monday) {
		t.Errorf("daily projection = %#v", daily.Recurrence())
	}

	punctual := Goal{Type: GoalTypePunctual, TargetDate: &target}
	if rec, ok := punctual.Recurrence().(Punctual); !ok || !rec.Date.Equal(target) {
		t.Errorf("punctual projection = %#v", punctual.Recurrence())
	}

	// Invariant-violating rows project to nothing.
	if rec := (&Goal{Type: GoalTypePunctual}).Recurrence(); rec != nil {
		t.Errorf("punctual without date projected %#v", rec)
	}
	if rec := (&Goal{Type: GoalType("WEEKLY")}).Recurrence(); rec != nil {
		t.Errorf("unknown type projected %#v", rec)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if _, err := ParseTimeOfDay("07:30"); err != nil {
		t.Errorf("ParseTimeOfDay(07:30): %v", err)
	}
	for _, bad := range []string{"7:30pm", "25:00", "noon", ""} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("ParseTimeOfDay(%q) accepted", bad)
		}
	}
}
