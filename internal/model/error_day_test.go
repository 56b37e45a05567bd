package model

import (
	"testing"
	"time"
)

func TestNewErrorDay(t *testing.T) {
	t.Parallel()

	t.Run("parses database date", func(t *testing.T) {
		t.Parallel()

		day, err := NewErrorDay("2016-07-29", 100, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2016, time.July, 29, 0, 0, 0, 0, time.UTC)
		if !day.Date.Equal(want) {
			t.Errorf("expected %v, got %v", want, day.Date)
		}
		if day.Requests != 100 || day.Errors != 2 {
			t.Errorf("unexpected totals: %+v", day)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()

		if _, err := NewErrorDay("29/07/2016", 1, 1); err == nil {
			t.Error("expected error for malformed date")
		}
	})
}

// TestErrorDayLongDate verifies the month is spelled out and the day has no leading zero.
func TestErrorDayLongDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2016, time.July, 29, 0, 0, 0, 0, time.UTC), "July 29, 2016"},
		{time.Date(2016, time.July, 1, 0, 0, 0, 0, time.UTC), "July 1, 2016"},
		{time.Date(2009, time.December, 9, 0, 0, 0, 0, time.UTC), "December 9, 2009"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			d := ErrorDay{Date: tc.date}
			if got := d.LongDate(); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestErrorDayThreshold covers the exclusive 1% boundary.
func TestErrorDayThreshold(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		requests int64
		errors   int64
		want     bool
	}{
		{"exactly one percent is excluded", 100, 1, false},
		{"two percent is included", 100, 2, true},
		{"just above one percent", 1000, 11, true},
		{"large day at exactly one percent", 38_700, 387, false},
		{"no errors", 50, 0, false},
		{"no requests", 0, 0, false},
		{"every request failed", 3, 3, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := ErrorDay{Requests: tc.requests, Errors: tc.errors}
			if got := d.ExceedsThreshold(); got != tc.want {
				t.Errorf("ExceedsThreshold() = %v, want %v (percent %v)", got, tc.want, d.Percent())
			}
		})
	}
}

func TestErrorDayPercent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		requests int64
		errors   int64
		percent  float64
	}{
		{100, 2, 2},
		{200, 1, 0.5},
		{4, 1, 25},
		{0, 0, 0},
	}

	for _, tc := range testCases {
		d := ErrorDay{Requests: tc.requests, Errors: tc.errors}
		if got := d.Percent(); got != tc.percent {
			t.Errorf("Percent(%d/%d) = %v, want %v", tc.errors, tc.requests, got, tc.percent)
		}
	}
}
