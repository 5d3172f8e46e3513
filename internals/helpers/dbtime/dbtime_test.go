package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDateOf_CrossesUTCMidnight(t *testing.T) {
	jakarta := mustLoc(t, "Asia/Jakarta")

	// 23:30 UTC 9 Juni = 06:30 WIB 10 Juni — tanggal lokal yang dipakai
	utc := time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)
	d := DateOf(utc, jakarta)

	assert.Equal(t, "2024-06-10", DateString(d))
	assert.Equal(t, jakarta, d.Location())
	assert.Zero(t, d.Hour())
}

func TestParseDate_RoundTrip(t *testing.T) {
	jakarta := mustLoc(t, "Asia/Jakarta")

	d, err := ParseDate("2024-06-05", jakarta)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", DateString(d))
	assert.Equal(t, jakarta, d.Location())

	_, err = ParseDate("05-06-2024", jakarta)
	assert.Error(t, err)
}

func TestLastDayOfMonth(t *testing.T) {
	jakarta := mustLoc(t, "Asia/Jakarta")

	cases := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.June, "2024-06-30"},
		{2024, time.December, "2024-12-31"},
		{2024, time.February, "2024-02-29"},
		{2023, time.February, "2023-02-28"},
	}
	for _, tc := range cases {
		got := LastDayOfMonth(tc.year, tc.month, jakarta)
		assert.Equal(t, tc.want, DateString(got))
	}
}

func TestYesterday(t *testing.T) {
	jakarta := mustLoc(t, "Asia/Jakarta")

	today := Today(jakarta)
	assert.Equal(t, today.AddDate(0, 0, -1), Yesterday(jakarta))
}
