// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package format

import (
	"testing"
	"time"
)

func TestEventDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"datetime", "2024-08-01 19:00:00", "Thu, Aug 1, 7:00 PM"},
		{"morning no leading zero", "2024-07-13 08:05:00", "Sat, Jul 13, 8:05 AM"},
		{"noon", "2024-08-01 12:00:00", "Thu, Aug 1, 12:00 PM"},
		{"midnight", "2024-08-01 00:30:00", "Thu, Aug 1, 12:30 AM"},
		{"rfc3339", "2024-08-01T19:00:00Z", "Thu, Aug 1, 7:00 PM"},
		{"html datetime-local", "2024-08-01T19:00", "Thu, Aug 1, 7:00 PM"},
		{"date only", "2024-08-01", "Thu, Aug 1, 12:00 AM"},
		{"garbage passes through", "next tuesday-ish", "next tuesday-ish"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventDate(tt.input); got != tt.want {
				t.Errorf("EventDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 8, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"just now", 0, "Just now"},
		{"30 seconds", 30 * time.Second, "Just now"},
		{"one minute", time.Minute, "1 minute ago"},
		{"five minutes", 5 * time.Minute, "5 minutes ago"},
		{"59 minutes", 59 * time.Minute, "59 minutes ago"},
		{"90 minutes", 90 * time.Minute, "1 hour ago"},
		{"two hours", 2 * time.Hour, "2 hours ago"},
		{"23 hours", 23 * time.Hour, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"three days", 3 * 24 * time.Hour, "3 days ago"},
		{"seven days", 7 * 24 * time.Hour, "7 days ago"},
		{"nine days", 9 * 24 * time.Hour, "9 days ago"},
		{"thirty days", 30 * 24 * time.Hour, "30 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.Add(-tt.elapsed)
			if got := RelativeTime(createdAt, now); got != tt.want {
				t.Errorf("RelativeTime(-%v) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestRelativeTime_FutureClamps(t *testing.T) {
	now := time.Date(2024, 8, 10, 12, 0, 0, 0, time.UTC)
	if got := RelativeTime(now.Add(time.Hour), now); got != "Just now" {
		t.Errorf("RelativeTime(future) = %q, want %q", got, "Just now")
	}
}
