// Package dateparse parses the relative and absolute "since" expressions
// accepted by history filters into a point in time.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSince returns the start of the window described by input, measured
// back from the current time.
//
// Supported formats:
//   - Exact dates: "2026-03-01" (midnight, local time)
//   - Relative days, weeks, months: "3d", "2w", "1m" (a leading "-" is allowed)
//   - Go durations: "90m", "36h"
//   - Day names: "monday", "tuesday", etc. (most recent past occurrence)
//   - Keywords: "today", "yesterday", "last-week", "last-month"
func ParseSince(input string) (time.Time, error) {
	return ParseSinceFrom(input, time.Now())
}

// ParseSinceFrom parses input relative to the given reference time.
func ParseSinceFrom(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	// Exact date: YYYY-MM-DD
	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	today := startOfDay(now)
	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "last-week":
		return today.AddDate(0, 0, -7), nil
	case "last-month":
		return today.AddDate(0, -1, 0), nil
	}

	// Relative offsets: Nd, Nw, Nm
	rel := strings.TrimPrefix(input, "-")
	if len(rel) >= 2 {
		suffix := rel[len(rel)-1]
		if n, err := strconv.Atoi(rel[:len(rel)-1]); err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return now.AddDate(0, 0, -n), nil
			case 'w':
				return now.AddDate(0, 0, -7*n), nil
			case 'm':
				return now.AddDate(0, -n, 0), nil
			}
		}
	}

	if d, err := time.ParseDuration(rel); err == nil && d >= 0 {
		return now.Add(-d), nil
	}

	// Day names: most recent occurrence before today
	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := dayMap[input]; ok {
		daysBack := (int(now.Weekday()) - int(target) + 7) % 7
		if daysBack == 0 {
			daysBack = 7
		}
		return today.AddDate(0, 0, -daysBack), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q (try 7d, 2w, yesterday or 2026-03-01)", input)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
