package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("ParseDuration(90s) = %v", got)
	}
	if got := ParseDuration("not-a-duration", time.Minute); got != time.Minute {
		t.Errorf("expected default on parse failure, got %v", got)
	}
	if got := ParseDuration("", 5*time.Second); got != 5*time.Second {
		t.Errorf("expected default on empty string, got %v", got)
	}
}

func TestDayStart(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 45, 12, 999, time.Local)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if got := DayStart(in); !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-11-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2025, 11, 2, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("02-11-2025"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
