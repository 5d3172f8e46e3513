// file: internals/helpers/dbtime/dbtime.go
package dbtime

import "time"

const DateLayout = "2006-01-02"

// Semua perhitungan "hari sekolah" memakai *time.Location eksplisit
// (dimuat dari SCHOOL_TIMEZONE), bukan offset jam manual — pergantian
// tanggal mengikuti hari lokal lembaga, bukan tengah malam UTC.

// Today mengembalikan tanggal hari ini (tengah malam) di timezone sekolah.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc), loc)
}

// Yesterday = Today - 1 hari.
func Yesterday(loc *time.Location) time.Time {
	return Today(loc).AddDate(0, 0, -1)
}

// DateOf memotong t ke tengah malam di timezone loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DateString memformat tanggal ke "YYYY-MM-DD".
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate mem-parse "YYYY-MM-DD" sebagai tengah malam di loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// LastDayOfMonth mengembalikan tanggal terakhir (1..31) bulan ybs.
func LastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	// hari ke-0 bulan berikutnya = hari terakhir bulan ini
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}
