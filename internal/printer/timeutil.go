package printer

import (
	"fmt"
	"time"
)

// TimeAgo returns a human-readable time relative to now, in UTC.
// Examples: "5 seconds ago (UTC)", "2 minutes ago (UTC)", "3 hours ago (UTC)".
func TimeAgo(t time.Time) string {
	return TimeAgoFrom(time.Now(), t)
}

// TimeAgoFrom is like TimeAgo but relative to the given now.
func TimeAgoFrom(now, t time.Time) string {
	diff := now.UTC().Sub(t.UTC())

	switch {
	case diff < 0:
		return "in the future (UTC)"
	case diff < time.Minute:
		return ago(int(diff.Seconds()), "second")
	case diff < time.Hour:
		return ago(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return ago(int(diff.Hours()), "hour")
	default:
		return ago(int(diff.Hours()/24), "day")
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago (UTC)", unit)
	}
	return fmt.Sprintf("%d %ss ago (UTC)", n, unit)
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
