package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpqku_backend/internals/features/attendance/reconcile/route"
	"tpqku_backend/internals/features/attendance/reconcile/service"
	"tpqku_backend/internals/middlewares"
)

type stubStore struct {
	students []service.EnrolledStudent
	rows     map[string][]service.AttendanceRow

	calls int
}

func (s *stubStore) ListEnrolledStudents(ctx context.Context) ([]service.EnrolledStudent, error) {
	s.calls++
	return s.students, nil
}

func (s *stubStore) ListAttendanceByDate(ctx context.Context, date time.Time) ([]service.AttendanceRow, error) {
	s.calls++
	return s.rows[date.Format("2006-01-02")], nil
}

func (s *stubStore) InsertAttendances(ctx context.Context, rows []service.AttendanceRow) error {
	s.calls++
	if s.rows == nil {
		s.rows = map[string][]service.AttendanceRow{}
	}
	key := rows[0].Date.Format("2006-01-02")
	s.rows[key] = append(s.rows[key], rows...)
	return nil
}

func newTestApp(store service.Store, cronSecret string) *fiber.App {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	svc := service.NewReconcileService(store, loc)

	app := fiber.New()
	cron := app.Group("/api/cron", middlewares.CronAuth(cronSecret))
	route.CronRoutes(cron, svc)
	admin := app.Group("/api/attendance")
	route.AdminRoutes(admin, svc)
	return app
}

func decodeBody(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestAutoAlpha_RequiresCronSecret(t *testing.T) {
	store := &stubStore{students: []service.EnrolledStudent{{StudentID: uuid.New(), ClassID: uuid.New()}}}
	app := newTestApp(store, "rahasia-cron")

	// tanpa header
	req := httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// secret salah
	req = httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	req.Header.Set("Authorization", "Bearer salah")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	assert.Zero(t, store.calls, "ditolak sebelum menyentuh data")
}

func TestAutoAlpha_EmptySecretDisablesEndpoint(t *testing.T) {
	store := &stubStore{}
	app := newTestApp(store, "")

	req := httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, store.calls)
}

func TestAutoAlpha_MarksAndReports(t *testing.T) {
	students := []service.EnrolledStudent{
		{StudentID: uuid.New(), ClassID: uuid.New()},
		{StudentID: uuid.New(), ClassID: uuid.New()},
	}
	store := &stubStore{students: students}
	app := newTestApp(store, "rahasia-cron")

	req := httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	req.Header.Set("Authorization", "Bearer rahasia-cron")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "2 santri ditandai Alpha")

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["marked"])
	assert.Equal(t, float64(2), data["enrolled"])
}

func TestAutoAlpha_SecondRunIsNoOp(t *testing.T) {
	students := []service.EnrolledStudent{{StudentID: uuid.New(), ClassID: uuid.New()}}
	store := &stubStore{students: students}
	app := newTestApp(store, "rahasia-cron")

	req := httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	req.Header.Set("Authorization", "Bearer rahasia-cron")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Contains(t, body["message"], "tidak ada yang ditandai")
}

func TestFillPastAlpha_ValidatesQuery(t *testing.T) {
	store := &stubStore{}
	app := newTestApp(store, "rahasia-cron")

	for _, target := range []string{
		"/api/attendance/fill-past-alpha?month=12",
		"/api/attendance/fill-past-alpha?month=-1",
		"/api/attendance/fill-past-alpha?year=1999",
		// non-angka harus 400, bukan diam-diam jatuh ke bulan berjalan
		"/api/attendance/fill-past-alpha?month=abc",
		"/api/attendance/fill-past-alpha?year=abc",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
	assert.Zero(t, store.calls)
}

// store yang menolak bekerja kalau context request sudah dibatalkan
type ctxCheckedStore struct {
	stubStore
}

func (s *ctxCheckedStore) ListEnrolledStudents(ctx context.Context) ([]service.EnrolledStudent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.stubStore.ListEnrolledStudents(ctx)
}

func TestAutoAlpha_RequestContextReachesStore(t *testing.T) {
	store := &ctxCheckedStore{stubStore{students: []service.EnrolledStudent{{StudentID: uuid.New(), ClassID: uuid.New()}}}}
	loc, _ := time.LoadLocation("Asia/Jakarta")
	svc := service.NewReconcileService(store, loc)

	app := fiber.New()
	// middleware timeout ala main.go, tapi langsung kedaluwarsa
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	route.CronRoutes(app.Group("/api/cron", middlewares.CronAuth("rahasia-cron")), svc)

	req := httptest.NewRequest("GET", "/api/cron/auto-alpha", nil)
	req.Header.Set("Authorization", "Bearer rahasia-cron")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, "deadline request harus terasa sampai store")
}

func TestFillPastAlpha_EmptyMonthResponse(t *testing.T) {
	// bulan lampau tanpa satu pun catatan: semua hari libur, log kosong
	store := &stubStore{students: []service.EnrolledStudent{{StudentID: uuid.New(), ClassID: uuid.New()}}}
	app := newTestApp(store, "rahasia-cron")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/attendance/fill-past-alpha?month=5&year=2024", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "fill-past-alpha", body["mode"])
	assert.Equal(t, float64(5), body["month"])
	assert.Equal(t, float64(2024), body["year"])
	assert.Equal(t, float64(0), body["total"])
	assert.Empty(t, body["log"])
}

func TestFillPastAlpha_BackfillsActiveDays(t *testing.T) {
	classID := uuid.New()
	present := service.EnrolledStudent{StudentID: uuid.New(), ClassID: classID}
	absent := service.EnrolledStudent{StudentID: uuid.New(), ClassID: classID}
	loc, _ := time.LoadLocation("Asia/Jakarta")

	store := &stubStore{
		students: []service.EnrolledStudent{present, absent},
		rows: map[string][]service.AttendanceRow{
			"2024-06-03": {{
				StudentID: present.StudentID,
				ClassID:   classID,
				Date:      time.Date(2024, 6, 3, 0, 0, 0, 0, loc),
				Status:    "Hadir",
			}},
		},
	}
	app := newTestApp(store, "rahasia-cron")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/attendance/fill-past-alpha?month=5&year=2024", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(1), body["total"])

	logs := body["log"].([]interface{})
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-06-03: 1 Alpha ditambahkan", logs[0])
}
