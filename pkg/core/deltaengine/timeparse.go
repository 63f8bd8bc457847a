package deltaengine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Vendor exports use 12-hour times with inconsistent surrounding whitespace
var timePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*$`)

// parseShiftTime converts a vendor 12-hour time string plus a YYYY-MM-DD
// date into an absolute timestamp at that wall-clock moment, zero seconds.
// A malformed time string is a hard failure: unlike a missing value, it
// signals corrupted input.
func parseShiftTime(timeStr, dateStr string) (time.Time, error) {
	match := timePattern.FindStringSubmatch(strings.ToUpper(timeStr))
	if match == nil {
		return time.Time{}, fmt.Errorf("invalid time format %q: expected H:MM AM/PM", timeStr)
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("invalid hour in time %q", timeStr)
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in time %q", timeStr)
	}

	// 12 AM -> 0, 12 PM stays 12, otherwise add 12 for PM
	if match[3] == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC), nil
}

// minutesBetween returns b - a in whole minutes
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a).Minutes())
}
