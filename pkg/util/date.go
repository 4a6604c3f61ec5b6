package util

import "time"

const DateLayout = "2006-01-02"

// UnixDate formats Unix seconds as a UTC calendar date.
func UnixDate(seconds int64) string {
	return time.Unix(seconds, 0).UTC().Format(DateLayout)
}

// ParseDurationDefault parses a Go duration ("90s", "5m") or returns def if empty/invalid.
func ParseDurationDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
