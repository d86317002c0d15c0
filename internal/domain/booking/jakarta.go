package booking

import (
	"fmt"
	"time"
)

// Jakarta is Western Indonesia Time. Indonesia observes no DST, so a fixed
// zone avoids depending on the host's tzdata.
var Jakarta = time.FixedZone("WIB", 7*60*60)

// JakartaDate truncates t to midnight of its Jakarta calendar day.
func JakartaDate(t time.Time) time.Time {
	y, m, d := t.In(Jakarta).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Jakarta)
}

// IsBeforeJakartaToday reports whether t falls on a Jakarta calendar day
// strictly before the one containing now. Time of day is ignored.
func IsBeforeJakartaToday(t, now time.Time) bool {
	return JakartaDate(t).Before(JakartaDate(now))
}

// ParseBookingDate accepts RFC 3339 timestamps, "2006-01-02 15:04" and plain
// "2006-01-02" dates. Zone-less inputs are read as Jakarta local time.
func ParseBookingDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, Jakarta); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised booking date %q", s)
}
