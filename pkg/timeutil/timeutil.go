// Package timeutil provides date helpers for the student registry.
// All student-facing dates (date of birth, enrollment date) are plain
// ISO calendar dates without a time component, so the helpers here work
// on the YYYY-MM-DD layout exclusively.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// ISODate is the wire layout for all calendar dates in the registry.
const ISODate = "2006-01-02"

// BackupStamp is the layout used to name backup files (second resolution).
const BackupStamp = "20060102_150405"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current date formatted as an ISO date string.
func Today() string {
	return Now().Format(ISODate)
}

// ParseISODate parses a YYYY-MM-DD string into a time.Time.
// Returns an error for any other layout or impossible calendar date.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// FormatISODate formats a time as a YYYY-MM-DD string.
func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}

// IsValidISODate reports whether s is a parseable YYYY-MM-DD date.
func IsValidISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

// AgeAt computes full years between birth and now, subtracting one year
// when the birthday has not yet occurred in the current year.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeFromISO computes the age for an ISO date of birth against the
// current date. Returns 0 for an unparseable date; callers validate
// dates before storing them, so this is a belt-and-suspenders default.
func AgeFromISO(dob string) int {
	birth, err := ParseISODate(dob)
	if err != nil {
		return 0
	}
	return AgeAt(birth, Now())
}

// BackupTimestamp formats a time for use in backup file names.
func BackupTimestamp(t time.Time) string {
	return t.Format(BackupStamp)
}
