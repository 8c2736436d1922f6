package utils

import "time"

// FormatDate renders t as dd/mm/yyyy, or "" for a missing date.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006")
}
