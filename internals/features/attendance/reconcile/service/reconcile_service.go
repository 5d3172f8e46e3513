package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tpqku_backend/internals/constants"
	"tpqku_backend/internals/helpers/dbtime"
)

// ReconcileService menambal absensi yang bolong dengan status Alpha:
// harian (auto-alpha) dan mundur per bulan (fill-past-alpha).
// Store & timezone di-inject; "hari" selalu dihitung di timezone sekolah.
type ReconcileService struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewReconcileService(store Store, loc *time.Location) *ReconcileService {
	return &ReconcileService{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

/* =========================================================
   Job harian: auto-alpha
   ========================================================= */

type AutoAlphaResult struct {
	Date     string `json:"date"`
	Enrolled int    `json:"enrolled"`
	Existing int    `json:"existing"`
	Marked   int    `json:"marked"`
}

// AutoAlphaToday menandai Alpha semua santri terdaftar yang belum punya
// catatan absensi hari ini. Idempoten: baris Alpha hasil run sebelumnya
// terhitung "sudah ada", run berikutnya tidak menyentuhnya. Tidak pernah
// meng-update baris — hanya satu batch insert.
func (s *ReconcileService) AutoAlphaToday(ctx context.Context) (AutoAlphaResult, error) {
	today := dbtime.DateOf(s.now(), s.loc)
	res := AutoAlphaResult{Date: dbtime.DateString(today)}

	students, err := s.store.ListEnrolledStudents(ctx)
	if err != nil {
		return res, err
	}
	res.Enrolled = len(students)

	existing, err := s.store.ListAttendanceByDate(ctx, today)
	if err != nil {
		return res, err
	}
	res.Existing = len(existing)

	have := make(map[uuid.UUID]struct{}, len(existing))
	for _, r := range existing {
		have[r.StudentID] = struct{}{}
	}

	runAt := s.now().In(s.loc)
	var missing []AttendanceRow
	for _, st := range students {
		if _, ok := have[st.StudentID]; ok {
			continue
		}
		t := runAt
		missing = append(missing, AttendanceRow{
			StudentID: st.StudentID,
			ClassID:   st.ClassID,
			Date:      today,
			Status:    constants.AttendanceAlpha,
			Time:      &t,
		})
	}

	if len(missing) == 0 {
		// bukan error: semua santri sudah punya catatan hari ini
		return res, nil
	}

	if err := s.store.InsertAttendances(ctx, missing); err != nil {
		return res, err
	}
	res.Marked = len(missing)
	return res, nil
}

// CurrentMonthYear: bulan (0-indexed) & tahun berjalan di timezone sekolah,
// dipakai sebagai default query fill-past-alpha.
func (s *ReconcileService) CurrentMonthYear() (month0, year int) {
	t := s.now().In(s.loc)
	return int(t.Month()) - 1, t.Year()
}

/* =========================================================
   Rentang tanggal backfill (iterator eksplisit)
   ========================================================= */

// DateRange: rentang tanggal inklusif. End sebelum Start = rentang kosong.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Days() []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// BackfillRange menentukan rentang yang di-backfill untuk (month0, year):
// tanggal 1 s/d akhir bulan — kecuali bulan berjalan, yang dibatasi sampai
// KEMARIN (hari ini urusan job harian, dan harinya masih berjalan).
// month0 0-indexed (0 = Januari), mengikuti konvensi frontend.
func BackfillRange(month0, year int, now time.Time, loc *time.Location) DateRange {
	month := time.Month(month0 + 1)
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := dbtime.LastDayOfMonth(year, month, loc)

	today := dbtime.DateOf(now, loc)
	if year == today.Year() && month == today.Month() {
		end = today.AddDate(0, 0, -1)
	}
	return DateRange{Start: start, End: end}
}

/* =========================================================
   Job backfill: fill-past-alpha
   ========================================================= */

type DayOutcome string

const (
	DayBackfilled  DayOutcome = "backfilled"   // hari aktif, N baris Alpha masuk
	DayHoliday     DayOutcome = "holiday"      // nol catatan → dianggap libur, dilewati
	DayFetchError  DayOutcome = "fetch_error"  // gagal baca absensi hari itu, dilewati
	DayInsertError DayOutcome = "insert_error" // gagal tulis, hari tidak dihitung
)

// DayResult: hasil satu hari; agregasi/logging diputuskan pemanggil.
type DayResult struct {
	Date     time.Time  `json:"date"`
	Outcome  DayOutcome `json:"outcome"`
	Inserted int        `json:"inserted"`
	Err      error      `json:"-"`
}

type BackfillResult struct {
	Month int         `json:"month"` // 0-indexed, sesuai input
	Year  int         `json:"year"`
	Total int         `json:"total"`
	Days  []DayResult `json:"days"`
	Log   []string    `json:"log"`
}

// FillPastAlpha menjalankan kebijakan auto-alpha mundur untuk satu bulan.
// Daftar santri diambil SEKALI di awal dan dipakai ulang tiap hari.
// Hari diproses berurutan, satu insert per hari — kegagalan di tengah
// bulan tidak membatalkan hari-hari yang sudah masuk.
func (s *ReconcileService) FillPastAlpha(ctx context.Context, month0, year int) (BackfillResult, error) {
	res := BackfillResult{Month: month0, Year: year, Log: []string{}}

	students, err := s.store.ListEnrolledStudents(ctx)
	if err != nil {
		return res, err
	}

	rng := BackfillRange(month0, year, s.now(), s.loc)
	for _, d := range rng.Days() {
		day := s.backfillDay(ctx, d, students)
		res.Days = append(res.Days, day)

		switch day.Outcome {
		case DayBackfilled:
			res.Total += day.Inserted
			res.Log = append(res.Log, fmt.Sprintf("%s: %d Alpha ditambahkan", dbtime.DateString(d), day.Inserted))
		case DayHoliday:
			// nol catatan = sekolah tidak jalan; tidak dihitung, tidak di-log
		case DayFetchError:
			log.Printf("[BACKFILL] %s: gagal baca absensi, hari dilewati: %v", dbtime.DateString(d), day.Err)
		case DayInsertError:
			log.Printf("[BACKFILL] %s: gagal insert, hari tidak dihitung: %v", dbtime.DateString(d), day.Err)
		}
	}
	return res, nil
}

// backfillDay mengevaluasi satu tanggal secara independen.
// Aturan libur: nol catatan apapun pada hari itu ⇒ dianggap hari libur
// (kalau sekolah jalan, minimal penanda absen sudah jadi "catatan").
func (s *ReconcileService) backfillDay(ctx context.Context, d time.Time, students []EnrolledStudent) DayResult {
	existing, err := s.store.ListAttendanceByDate(ctx, d)
	if err != nil {
		return DayResult{Date: d, Outcome: DayFetchError, Err: err}
	}
	if len(existing) == 0 {
		return DayResult{Date: d, Outcome: DayHoliday}
	}

	have := make(map[uuid.UUID]struct{}, len(existing))
	for _, r := range existing {
		have[r.StudentID] = struct{}{}
	}

	var missing []AttendanceRow
	for _, st := range students {
		if _, ok := have[st.StudentID]; ok {
			continue
		}
		missing = append(missing, AttendanceRow{
			StudentID: st.StudentID,
			ClassID:   st.ClassID,
			Date:      d,
			Status:    constants.AttendanceAlpha,
			Time:      nil, // backfill bukan momen check-in nyata
		})
	}

	if len(missing) == 0 {
		return DayResult{Date: d, Outcome: DayBackfilled, Inserted: 0}
	}

	if err := s.store.InsertAttendances(ctx, missing); err != nil {
		return DayResult{Date: d, Outcome: DayInsertError, Err: err}
	}
	return DayResult{Date: d, Outcome: DayBackfilled, Inserted: len(missing)}
}
