package schedule

import (
	"testing"
	"time"
)

// 2024-04-10 is a Wednesday
var wednesday = time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "today truncates to start of day",
			text:     "today",
			now:      wednesday,
			expected: date(2024, 4, 10),
		},
		{
			name:     "tomorrow is the next day",
			text:     "Tomorrow",
			now:      wednesday,
			expected: date(2024, 4, 11),
		},
		{
			name:     "this week is seven days out",
			text:     "this week",
			now:      wednesday,
			expected: date(2024, 4, 17),
		},
		{
			name:     "next week is fourteen days out",
			text:     "next week",
			now:      wednesday,
			expected: date(2024, 4, 24),
		},
		{
			name:     "this weekend from a Wednesday is the coming Saturday",
			text:     "this weekend",
			now:      wednesday,
			expected: date(2024, 4, 13),
		},
		{
			name:     "this weekend on a Saturday stays on that Saturday",
			text:     "this weekend",
			now:      time.Date(2024, 4, 13, 9, 0, 0, 0, time.UTC),
			expected: date(2024, 4, 13),
		},
		{
			name:     "next month keeps the day of month",
			text:     "next month",
			now:      wednesday,
			expected: date(2024, 5, 10),
		},
		{
			name:     "next month clamps at month end",
			text:     "next month",
			now:      time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC),
			expected: date(2024, 2, 29),
		},
		{
			name:     "in N months discards the count and advances one month",
			text:     "in 3 months",
			now:      wednesday,
			expected: date(2024, 5, 10),
		},
		{
			name:     "before summer anchors to June 1 of the current year",
			text:     "before summer",
			now:      wednesday,
			expected: date(2024, 6, 1),
		},
		{
			name:     "before summer does not roll forward when June has passed",
			text:     "before summer",
			now:      time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC),
			expected: date(2024, 6, 1),
		},
		{
			name:     "by spring anchors to March 20 of the current year",
			text:     "by spring",
			now:      wednesday,
			expected: date(2024, 3, 20),
		},
		{
			name:     "weekday name resolves to the next occurrence",
			text:     "friday",
			now:      wednesday,
			expected: date(2024, 4, 12),
		},
		{
			name:     "same weekday resolves seven days out, not zero",
			text:     "Wednesday",
			now:      wednesday,
			expected: date(2024, 4, 17),
		},
		{
			name:     "ISO date string parses",
			text:     "2024-12-25",
			now:      wednesday,
			expected: date(2024, 12, 25),
		},
		{
			name:     "RFC 3339 timestamp parses",
			text:     "2024-12-25T10:00:00Z",
			now:      wednesday,
			expected: time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace is ignored",
			text:     "  next week  ",
			now:      wednesday,
			expected: date(2024, 4, 24),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveDate(tt.text, tt.now)
			if result == nil {
				t.Fatalf("ResolveDate(%q) = nil, expected %v", tt.text, tt.expected)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ResolveDate(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestResolveDateUnrecognized(t *testing.T) {
	for _, text := range []string{"sometime maybe", "", "   ", "25/12/2024", "in a while"} {
		if result := ResolveDate(text, wednesday); result != nil {
			t.Errorf("ResolveDate(%q) = %v, expected nil", text, result)
		}
	}
}

func TestResolveDateIsDeterministic(t *testing.T) {
	for _, text := range []string{"today", "this weekend", "monday", "in 4 months"} {
		first := ResolveDate(text, wednesday)
		second := ResolveDate(text, wednesday)
		if first == nil || second == nil {
			t.Fatalf("ResolveDate(%q) unexpectedly nil", text)
		}
		if !first.Equal(*second) {
			t.Errorf("ResolveDate(%q) not deterministic: %v vs %v", text, first, second)
		}
	}
}
