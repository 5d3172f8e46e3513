package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpqku_backend/internals/constants"
)

var jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		panic(err)
	}
	return loc
}()

// fakeStore: Store in-memory untuk menguji service tanpa DB.
type fakeStore struct {
	students []EnrolledStudent
	rows     map[string][]AttendanceRow // key: "2006-01-02"

	listStudentsErr error
	listByDateErr   map[string]error
	insertErr       map[string]error

	insertCalls [][]AttendanceRow
	listCalls   int
}

func newFakeStore(students []EnrolledStudent) *fakeStore {
	return &fakeStore{
		students:      students,
		rows:          map[string][]AttendanceRow{},
		listByDateErr: map[string]error{},
		insertErr:     map[string]error{},
	}
}

func (f *fakeStore) ListEnrolledStudents(ctx context.Context) ([]EnrolledStudent, error) {
	if f.listStudentsErr != nil {
		return nil, f.listStudentsErr
	}
	return f.students, nil
}

func (f *fakeStore) ListAttendanceByDate(ctx context.Context, date time.Time) ([]AttendanceRow, error) {
	f.listCalls++
	key := date.Format("2006-01-02")
	if err := f.listByDateErr[key]; err != nil {
		return nil, err
	}
	return f.rows[key], nil
}

func (f *fakeStore) InsertAttendances(ctx context.Context, rows []AttendanceRow) error {
	if len(rows) == 0 {
		return nil
	}
	key := rows[0].Date.Format("2006-01-02")
	if err := f.insertErr[key]; err != nil {
		return err
	}
	f.insertCalls = append(f.insertCalls, rows)
	f.rows[key] = append(f.rows[key], rows...)
	return nil
}

// seed: tandai beberapa santri sudah punya catatan pada tanggal tsb
func (f *fakeStore) seed(date time.Time, status string, students ...EnrolledStudent) {
	key := date.Format("2006-01-02")
	for _, st := range students {
		f.rows[key] = append(f.rows[key], AttendanceRow{
			StudentID: st.StudentID,
			ClassID:   st.ClassID,
			Date:      date,
			Status:    status,
		})
	}
}

func makeStudents(n int, classID uuid.UUID) []EnrolledStudent {
	out := make([]EnrolledStudent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, EnrolledStudent{StudentID: uuid.New(), ClassID: classID})
	}
	return out
}

func newServiceAt(store Store, at time.Time) *ReconcileService {
	svc := NewReconcileService(store, jakarta)
	svc.now = func() time.Time { return at }
	return svc
}

/* =========================================================
   Job harian
   ========================================================= */

func TestAutoAlphaToday_MarksMissingStudents(t *testing.T) {
	classA := uuid.New()
	classB := uuid.New()
	students := append(makeStudents(3, classA), makeStudents(2, classB)...)
	store := newFakeStore(students)

	at := time.Date(2024, 6, 10, 20, 30, 0, 0, jakarta)
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, jakarta)
	store.seed(today, constants.AttendanceHadir, students[0], students[3])

	svc := newServiceAt(store, at)
	res, err := svc.AutoAlphaToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", res.Date)
	assert.Equal(t, 5, res.Enrolled)
	assert.Equal(t, 2, res.Existing)
	assert.Equal(t, 3, res.Marked)

	require.Len(t, store.insertCalls, 1)
	for _, row := range store.insertCalls[0] {
		assert.Equal(t, constants.AttendanceAlpha, row.Status)
		assert.Equal(t, "2024-06-10", row.Date.Format("2006-01-02"))
		require.NotNil(t, row.Time, "job harian menyimpan timestamp run")
		assert.True(t, row.Time.Equal(at))
	}

	// class_id ikut santri masing-masing
	marked := map[uuid.UUID]uuid.UUID{}
	for _, row := range store.insertCalls[0] {
		marked[row.StudentID] = row.ClassID
	}
	assert.Equal(t, classA, marked[students[1].StudentID])
	assert.Equal(t, classA, marked[students[2].StudentID])
	assert.Equal(t, classB, marked[students[4].StudentID])
}

func TestAutoAlphaToday_Idempotent(t *testing.T) {
	students := makeStudents(4, uuid.New())
	store := newFakeStore(students)
	at := time.Date(2024, 6, 10, 21, 0, 0, 0, jakarta)
	svc := newServiceAt(store, at)

	first, err := svc.AutoAlphaToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, first.Marked)

	// run kedua: baris Alpha run pertama terhitung "sudah ada"
	second, err := svc.AutoAlphaToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Marked)
	assert.Equal(t, 4, second.Existing)
	assert.Len(t, store.insertCalls, 1, "run kedua tidak insert apapun")
}

func TestAutoAlphaToday_OnlyEnrolledStudentsMarked(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(3, classID)
	store := newFakeStore(students)

	// catatan hari ini milik santri yang sudah keluar kelas (bukan anggota
	// daftar terdaftar) — dia tidak boleh ikut ditandai
	former := EnrolledStudent{StudentID: uuid.New(), ClassID: classID}
	at := time.Date(2024, 6, 10, 21, 0, 0, 0, jakarta)
	store.seed(time.Date(2024, 6, 10, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, former)

	svc := newServiceAt(store, at)
	res, err := svc.AutoAlphaToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Marked, "hanya santri terdaftar yang ditandai")
	require.Len(t, store.insertCalls, 1)
	for _, row := range store.insertCalls[0] {
		assert.NotEqual(t, former.StudentID, row.StudentID)
	}
}

func TestAutoAlphaToday_NoEnrolledStudents(t *testing.T) {
	store := newFakeStore(nil)
	svc := newServiceAt(store, time.Date(2024, 6, 10, 21, 0, 0, 0, jakarta))

	res, err := svc.AutoAlphaToday(context.Background())
	require.NoError(t, err, "kosong bukan error")
	assert.Equal(t, 0, res.Marked)
	assert.Empty(t, store.insertCalls)
}

func TestAutoAlphaToday_FetchErrorAborts(t *testing.T) {
	store := newFakeStore(makeStudents(2, uuid.New()))
	store.listStudentsErr = errors.New("connection refused")
	svc := newServiceAt(store, time.Date(2024, 6, 10, 21, 0, 0, 0, jakarta))

	_, err := svc.AutoAlphaToday(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.insertCalls, "tidak ada insert parsial")
}

func TestAutoAlphaToday_InsertErrorSurfaced(t *testing.T) {
	store := newFakeStore(makeStudents(2, uuid.New()))
	store.insertErr["2024-06-10"] = ErrDuplicateAttendance
	svc := newServiceAt(store, time.Date(2024, 6, 10, 21, 0, 0, 0, jakarta))

	_, err := svc.AutoAlphaToday(context.Background())
	require.ErrorIs(t, err, ErrDuplicateAttendance)
}

/* =========================================================
   Rentang backfill
   ========================================================= */

func TestBackfillRange_PastMonthFullCalendar(t *testing.T) {
	now := time.Date(2024, 8, 15, 10, 0, 0, 0, jakarta)

	rng := BackfillRange(5, 2024, now, jakarta) // Juni (0-indexed)
	days := rng.Days()

	require.Len(t, days, 30, "Juni punya 30 hari, semua diproses")
	assert.Equal(t, "2024-06-01", days[0].Format("2006-01-02"))
	assert.Equal(t, "2024-06-30", days[29].Format("2006-01-02"))
}

func TestBackfillRange_CurrentMonthStopsAtYesterday(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, jakarta)

	rng := BackfillRange(5, 2024, now, jakarta)
	days := rng.Days()

	require.Len(t, days, 14)
	assert.Equal(t, "2024-06-14", days[len(days)-1].Format("2006-01-02"), "hari ini tidak pernah di-backfill")
}

func TestBackfillRange_FirstDayOfCurrentMonthIsEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, jakarta)

	rng := BackfillRange(5, 2024, now, jakarta)
	assert.Empty(t, rng.Days())
}

func TestBackfillRange_February(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, jakarta)

	days := BackfillRange(1, 2024, now, jakarta).Days()
	require.Len(t, days, 29, "2024 kabisat")

	days = BackfillRange(1, 2023, now, jakarta).Days()
	require.Len(t, days, 28)
}

/* =========================================================
   Job backfill
   ========================================================= */

func TestFillPastAlpha_HolidayInference(t *testing.T) {
	students := makeStudents(10, uuid.New())
	store := newFakeStore(students)
	// Juni 2024: tidak ada satu pun catatan → semua hari dianggap libur
	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))

	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Log)
	assert.Empty(t, store.insertCalls)
	for _, d := range res.Days {
		assert.Equal(t, DayHoliday, d.Outcome)
	}
}

func TestFillPastAlpha_PartialDay(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(10, classID)
	store := newFakeStore(students)

	day := time.Date(2024, 6, 5, 0, 0, 0, 0, jakarta)
	store.seed(day, constants.AttendanceHadir, students[:6]...)

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total, "tepat satu baris per santri yang bolong")
	require.Len(t, store.insertCalls, 1)
	for _, row := range store.insertCalls[0] {
		assert.Equal(t, constants.AttendanceAlpha, row.Status)
		assert.Equal(t, classID, row.ClassID)
		assert.Equal(t, "2024-06-05", row.Date.Format("2006-01-02"))
		assert.Nil(t, row.Time, "backfill tidak punya jam check-in")
	}
}

func TestFillPastAlpha_OnlyEnrolledStudentsBackfilled(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(3, classID)
	store := newFakeStore(students)

	// satu-satunya catatan hari itu milik santri yang sudah keluar kelas:
	// hari tetap dianggap aktif, tapi hanya santri terdaftar yang ditandai
	// dan si mantan santri tidak pernah di-insert
	former := EnrolledStudent{StudentID: uuid.New(), ClassID: classID}
	day := time.Date(2024, 6, 5, 0, 0, 0, 0, jakarta)
	store.seed(day, constants.AttendanceHadir, former)

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Log, 1)
	assert.Equal(t, "2024-06-05: 3 Alpha ditambahkan", res.Log[0])

	require.Len(t, store.insertCalls, 1)
	inserted := map[uuid.UUID]bool{}
	for _, row := range store.insertCalls[0] {
		inserted[row.StudentID] = true
	}
	assert.False(t, inserted[former.StudentID])
	for _, st := range students {
		assert.True(t, inserted[st.StudentID])
	}
}

func TestFillPastAlpha_Scenario_June2024(t *testing.T) {
	// 20 santri; absensi hanya ada 1-3 Juni dan 10 Juni (15 santri/hari sudah
	// tercatat) → 4 hari aktif × 5 bolong = 20 baris, log 4 entri "5 Alpha".
	classID := uuid.New()
	students := makeStudents(20, classID)
	store := newFakeStore(students)

	activeDays := []int{1, 2, 3, 10}
	for _, d := range activeDays {
		day := time.Date(2024, 6, d, 0, 0, 0, 0, jakarta)
		store.seed(day, constants.AttendanceHadir, students[:15]...)
	}

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 20, res.Total)
	require.Len(t, res.Log, 4)
	for i, d := range activeDays {
		expected := fmt.Sprintf("2024-06-%02d: 5 Alpha ditambahkan", d)
		assert.Equal(t, expected, res.Log[i])
	}
	assert.Len(t, res.Days, 30, "semua hari kalender dievaluasi")
}

func TestFillPastAlpha_FetchErrorSkipsDayOnly(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(5, classID)
	store := newFakeStore(students)

	store.seed(time.Date(2024, 6, 3, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[0])
	store.seed(time.Date(2024, 6, 4, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[0])
	store.listByDateErr["2024-06-03"] = errors.New("timeout")

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err, "satu hari error tidak menggagalkan seluruh bulan")

	assert.Equal(t, 4, res.Total, "hanya 4 Juni yang di-backfill")
	require.Len(t, res.Log, 1)
	assert.Contains(t, res.Log[0], "2024-06-04")

	var errored *DayResult
	for i := range res.Days {
		if res.Days[i].Outcome == DayFetchError {
			errored = &res.Days[i]
		}
	}
	require.NotNil(t, errored)
	assert.Equal(t, "2024-06-03", errored.Date.Format("2006-01-02"))
}

func TestFillPastAlpha_InsertErrorDayNotCounted(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(5, classID)
	store := newFakeStore(students)

	store.seed(time.Date(2024, 6, 3, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[0])
	store.seed(time.Date(2024, 6, 4, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[0])
	store.insertErr["2024-06-03"] = errors.New("disk full")

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total, "hari yang gagal insert tidak menambah total")
	require.Len(t, res.Log, 1)
	assert.Contains(t, res.Log[0], "2024-06-04")
}

func TestFillPastAlpha_NeverTouchesToday(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(5, classID)
	store := newFakeStore(students)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, jakarta)
	// hari ini ada aktivitas, tapi tetap tidak boleh disentuh backfill
	store.seed(time.Date(2024, 6, 15, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[0])

	svc := newServiceAt(store, now)
	res, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Total)
	for _, d := range res.Days {
		assert.NotEqual(t, "2024-06-15", d.Date.Format("2006-01-02"))
	}
	assert.Empty(t, store.insertCalls)
}

func TestFillPastAlpha_StudentFetchErrorAborts(t *testing.T) {
	store := newFakeStore(nil)
	store.listStudentsErr = errors.New("connection refused")

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))
	_, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.Error(t, err)
	assert.Zero(t, store.listCalls, "daftar santri gagal → tidak ada hari yang diproses")
}

func TestFillPastAlpha_IdempotentPerDay(t *testing.T) {
	classID := uuid.New()
	students := makeStudents(8, classID)
	store := newFakeStore(students)
	store.seed(time.Date(2024, 6, 5, 0, 0, 0, 0, jakarta), constants.AttendanceHadir, students[:3]...)

	svc := newServiceAt(store, time.Date(2024, 8, 1, 0, 0, 0, 0, jakarta))

	first, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Total)

	// run kedua: hari tetap "aktif" (ada baris Alpha), missing set kini kosong
	second, err := svc.FillPastAlpha(context.Background(), 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total)
	require.Len(t, second.Log, 1)
	assert.Equal(t, "2024-06-05: 0 Alpha ditambahkan", second.Log[0])
}

func TestCurrentMonthYear(t *testing.T) {
	store := newFakeStore(nil)
	svc := newServiceAt(store, time.Date(2024, 1, 15, 10, 0, 0, 0, jakarta))

	month, year := svc.CurrentMonthYear()
	assert.Equal(t, 0, month, "Januari = 0")
	assert.Equal(t, 2024, year)
}
