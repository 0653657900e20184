// Package timezone anchors all time handling to the venue's timezone.
//
// Event dates and clock times are stored as verbatim strings and only
// become time.Time values here, so calendar timestamps, sheet date
// stamps, and audit metadata all resolve against the same location.
//
//  1. Current time and conversion:
//     now := timezone.Now()                    // current time in the venue timezone
//     appTime := timezone.ToAppTime(someTime)  // convert any time to the venue timezone
//
//  2. Formatting and parsing:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//     t, err := timezone.Parse("2006-01-02", "2026-10-03")
//
//  3. Location access:
//     loc := timezone.GetLocation()
//
// The timezone is configured via the APP_TIMEZONE environment variable
// (standard IANA names such as "UTC" or "America/Denver") and is
// initialized when the package is imported.
package timezone
