package clock

import (
	"strings"
	"testing"
	"time"
)

func brt(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, Location())
}

func TestEvaluateChatWindow(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		allowed bool
	}{
		{"before opening", brt(7, 59), false},
		{"at opening", brt(8, 0), true},
		{"last minute", brt(16, 59), true},
		{"at closing", brt(17, 0), false},
		{"night", brt(23, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := EvaluateChatWindow(tc.at)
			if w.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%t at %s, got %t", tc.allowed, tc.at, w.Allowed)
			}
			if w.Timezone != TimezoneName {
				t.Fatalf("expected timezone %s, got %s", TimezoneName, w.Timezone)
			}
			if !tc.allowed && !strings.Contains(w.Message, "08:00-17:00") {
				t.Fatalf("expected opening hours in message, got %q", w.Message)
			}
		})
	}

	t.Run("evaluates in civil time regardless of input zone", func(t *testing.T) {
		// 10:30 UTC is 07:30 in Brasília.
		w := EvaluateChatWindow(time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC))
		if w.Allowed || w.Hour != 7 {
			t.Fatalf("expected closed at hour 7, got allowed=%t hour=%d", w.Allowed, w.Hour)
		}
	})
}

func TestEndOfCivilDay(t *testing.T) {
	// 01:00 UTC on the 11th is still the 10th in Brasília.
	end := EndOfCivilDay(time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC))
	local := end.In(Location())
	if local.Day() != 10 || local.Hour() != 23 || local.Minute() != 59 || local.Second() != 59 {
		t.Fatalf("expected 2026-03-10 23:59:59 BRT, got %s", local)
	}
	if local.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("expected .999, got %d ns", local.Nanosecond())
	}
}

func TestCivilMonth(t *testing.T) {
	m, y := CivilMonth(time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC))
	if m != 12 || y != 2025 {
		t.Fatalf("expected 12/2025, got %d/%d", m, y)
	}
}

func TestFixedClock(t *testing.T) {
	c := NewFixed(brt(9, 0))
	c.Advance(90 * time.Minute)
	if got := c.Now(); !got.Equal(brt(10, 30)) {
		t.Fatalf("expected 10:30, got %s", got)
	}
	c.Set(brt(8, 0))
	if got := c.Now(); !got.Equal(brt(8, 0)) {
		t.Fatalf("expected 08:00, got %s", got)
	}
}
