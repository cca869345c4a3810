package utils

import "time"

// FormatDateToLocal turns an ISO date (YYYY-MM-DD, or an RFC 3339 stamp)
// into the short US display form, e.g. "2022-12-06" -> "Dec 6, 2022".
// Input that is not a date is returned unchanged.
func FormatDateToLocal(iso string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return iso
}

// Today returns t's calendar date in UTC as YYYY-MM-DD.
func Today(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
