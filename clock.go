package queue

import "time"

// TimeFormat is the ISO-8601 (RFC 3339, UTC, millisecond-precision)
// layout used whenever a timestamp crosses the CLI/HTTP boundary as a
// string. Fixed fractional digits keep the representation lexically
// monotonic, matching the comparison the store performs natively via
// SQL on the underlying time.Time columns.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in the queue's canonical ISO-8601 form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// AddSeconds returns now shifted forward by d, matching the §4.4
// add_seconds(now, d) helper.
func AddSeconds(now time.Time, d time.Duration) time.Time {
	return now.Add(d)
}
