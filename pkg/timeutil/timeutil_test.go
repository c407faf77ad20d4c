package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2001-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2001, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParseISODate_RejectsImpossibleDates(t *testing.T) {
	for _, s := range []string{"2001-13-40", "2001-02-30", "15/03/2001", "2001-3-5", ""} {
		_, err := ParseISODate(s)
		assert.Error(t, err, s)
	}
}

func TestIsValidISODate(t *testing.T) {
	assert.True(t, IsValidISODate("2000-02-29")) // leap year
	assert.False(t, IsValidISODate("1900-02-29"))
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2001, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, AgeAt(birth, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, AgeAt(birth, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, AgeAt(birth, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeAt(birth, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		"age never goes negative")
}

func TestBackupTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 28, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "20260828_140509", BackupTimestamp(ts))
}

func TestAgeFromISO_BadInputIsZero(t *testing.T) {
	assert.Equal(t, 0, AgeFromISO("not-a-date"))
}
