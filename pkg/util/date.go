package util

import (
	"strconv"
	"time"
)

// nseDateLayout is the expiry/date format used by NSE payloads, e.g. "27-Mar-2025".
const nseDateLayout = "02-Jan-2006"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// ParseNSEDate parses NSE's dd-Mon-yyyy dates. Returns (t, true) on success.
func ParseNSEDate(s string) (time.Time, bool) {
	t, err := time.Parse(nseDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
