package timewindow

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered when a schedule is not set yet.
const Placeholder = "TBD"

const minutesPerDay = 24 * 60

// Format renders a pair of 24-hour "HH:MM" strings as a compact 12-hour
// window for display, e.g. ("12:00", "15:00") -> "12-3pm" and
// ("11:00", "13:00") -> "11am-1pm". Missing input renders as "TBD" and
// unparseable numerics fall back to the raw pair. It never fails.
func Format(start, end string) string {
	if start == "" || end == "" || !strings.Contains(start, ":") || !strings.Contains(end, ":") {
		return Placeholder
	}

	startMin, okStart := parseClock(start)
	endMin, okEnd := parseClock(end)

	if !okStart || !okEnd {
		return start + "-" + end
	}

	startLabel, startMer := clock12(startMin)
	endLabel, endMer := clock12(endMin)

	// same meridiem reads fine with a single suffix after the end time
	if startMer == endMer {
		return startLabel + "-" + endLabel + endMer
	}

	return startLabel + startMer + "-" + endLabel + endMer
}

// FormatDuration is the legacy form of Format for records that carry a
// start time and a duration in hours instead of an explicit end time.
// Fractional hours are supported; missing or negative durations count
// as zero. The window wraps across midnight.
func FormatDuration(start string, hours float64) string {
	end := EndOf(start, hours)
	if end == "" {
		return Placeholder
	}

	return Format(start, end)
}

// EndOf converts a start time plus a duration in hours to an explicit
// "HH:MM" end time. It returns the empty string when the start time
// cannot be parsed.
func EndOf(start string, hours float64) string {
	startMin, ok := parseClock(start)
	if !ok {
		return ""
	}

	if math.IsNaN(hours) || hours < 0 {
		hours = 0
	}

	endMin := (startMin + int(math.Round(hours*60))) % minutesPerDay

	return fmt.Sprintf("%02d:%02d", endMin/60, endMin%60)
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(value string) (int, bool) {
	hourStr, minuteStr, found := strings.Cut(value, ":")
	if !found {
		return 0, false
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	minute, err := strconv.Atoi(strings.TrimSpace(minuteStr))
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}

// clock12 renders minutes since midnight on the 12-hour clock, with the
// minutes omitted on the whole hour, and returns the meridiem suffix
// separately so callers can compact it.
func clock12(minutes int) (label, meridiem string) {
	hour := minutes / 60
	minute := minutes % 60

	meridiem = "am"
	if hour >= 12 {
		meridiem = "pm"
	}

	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	if minute == 0 {
		return strconv.Itoa(displayHour), meridiem
	}

	return fmt.Sprintf("%d:%02d", displayHour, minute), meridiem
}
