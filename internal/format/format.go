// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package format renders the derived presentation fields attached to every
// event: the human-readable event date and the relative posted time. Both
// functions are pure; RelativeTime takes "now" so tests can pin the clock.
package format

import (
	"fmt"
	"time"
)

// eventDateLayouts are tried in order when parsing stored event dates.
// Event dates are stored verbatim, so older rows may use any of these.
var eventDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// EventDate renders a stored event date as "Mon, Jan 2, 3:04 PM"
// (12-hour clock, no leading zeros on day or hour). Unparseable input is
// returned verbatim rather than failing the whole response.
func EventDate(dateString string) string {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, dateString); err == nil {
			return t.Format("Mon, Jan 2, 3:04 PM")
		}
	}
	return dateString
}

// RelativeTime renders the elapsed time from createdAt back from now:
// "N days ago" beyond a week, "N day(s) ago" within it, then hours,
// minutes, and finally "Just now".
func RelativeTime(createdAt, now time.Time) string {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}

	days := int(elapsed.Hours()) / 24
	hours := int(elapsed.Hours()) % 24
	minutes := int(elapsed.Minutes()) % 60

	switch {
	case days > 7:
		return fmt.Sprintf("%d days ago", days)
	case days > 0:
		return fmt.Sprintf("%d %s ago", days, plural("day", days))
	case hours > 0:
		return fmt.Sprintf("%d %s ago", hours, plural("hour", hours))
	case minutes > 0:
		return fmt.Sprintf("%d %s ago", minutes, plural("minute", minutes))
	default:
		return "Just now"
	}
}

func plural(unit string, n int) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
