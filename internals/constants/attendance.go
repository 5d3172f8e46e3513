package constants

// Status absensi santri. Nilainya disimpan apa adanya di kolom
// attendance_status (CHECK constraint di DB). Baris yang tidak ada
// ("belum diabsen") berbeda makna dengan semua status di bawah.
const (
	AttendanceHadir = "Hadir"
	AttendanceSakit = "Sakit"
	AttendanceIzin  = "Izin"
	AttendanceAlpha = "Alpha"
	AttendanceLibur = "Libur"
)

var AttendanceStatuses = []string{
	AttendanceHadir,
	AttendanceSakit,
	AttendanceIzin,
	AttendanceAlpha,
	AttendanceLibur,
}

func IsValidAttendanceStatus(s string) bool {
	for _, v := range AttendanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}
