package internal

import "time"

// cocoaEpoch is the Unix time of 2001-01-01T00:00:00Z, the reference epoch
// the app uses for every numeric timestamp in its backup files.
const cocoaEpoch = 978307200

// CocoaTime converts a Cocoa timestamp (seconds since 2001-01-01 UTC) to
// calendar time. Fractional seconds are preserved.
func CocoaTime(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(cocoaEpoch+sec, nsec).UTC()
}

// FormatCocoa renders a Cocoa timestamp for display. Zero means the source
// never recorded a time.
func FormatCocoa(ts float64) string {
	if ts == 0 {
		return "Unknown"
	}
	return CocoaTime(ts).Format("2006-01-02 15:04:05")
}
