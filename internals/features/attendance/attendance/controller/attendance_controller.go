package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attDTO "tpqku_backend/internals/features/attendance/attendance/dto"
	attModel "tpqku_backend/internals/features/attendance/attendance/model"
	studentModel "tpqku_backend/internals/features/tpq/students/model"

	"tpqku_backend/internals/constants"
	helper "tpqku_backend/internals/helpers"
	"tpqku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Loc       *time.Location
}

func NewAttendanceController(db *gorm.DB, loc *time.Location) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
		Loc:       loc,
	}
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// ===============================
// GET /api/attendance
// Filter: ?date= &class_id= &student_id= &status= (+paging)
// ===============================
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	var q attDTO.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	tx := ctl.DB.WithContext(c.UserContext()).Model(&attModel.AttendanceModel{})

	if q.Date != nil && strings.TrimSpace(*q.Date) != "" {
		d, err := dbtime.ParseDate(strings.TrimSpace(*q.Date), ctl.Loc)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("attendance_date = ?", dbtime.DateString(d))
	}
	if q.ClassID != nil && strings.TrimSpace(*q.ClassID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*q.ClassID))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id bukan UUID")
		}
		tx = tx.Where("attendance_class_id = ?", id)
	}
	if q.StudentID != nil && strings.TrimSpace(*q.StudentID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*q.StudentID))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id bukan UUID")
		}
		tx = tx.Where("attendance_student_id = ?", id)
	}
	if q.Status != nil && strings.TrimSpace(*q.Status) != "" {
		s := strings.TrimSpace(*q.Status)
		if !constants.IsValidAttendanceStatus(s) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid (Hadir/Sakit/Izin/Alpha/Libur)")
		}
		tx = tx.Where("attendance_status = ?", s)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var rows []attModel.AttendanceModel
	if err := tx.Order("attendance_date DESC, attendance_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// ===============================
// POST /api/attendance
// Upsert manual oleh guru: satu baris per (santri, tanggal); status
// diganti kalau barisnya sudah ada (koreksi Alpha → Sakit, dst).
// ===============================
func (ctl *AttendanceController) Upsert(c *fiber.Ctx) error {
	var req attDTO.UpsertAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if !constants.IsValidAttendanceStatus(req.AttendanceStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid (Hadir/Sakit/Izin/Alpha/Libur)")
	}

	var student studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", req.AttendanceStudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if student.StudentClassID == nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Santri belum terdaftar di kelas manapun")
	}

	m, err := req.ToModel(*student.StudentClassID, ctl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attendance_student_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_status", "attendance_time", "attendance_class_id", "attendance_updated_at",
			}),
		}).
		Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Absensi tersimpan", m)
}

// ===============================
// POST /api/public/attendance/scan
// Check-in via kartu QR santri → Hadir dengan jam scan.
// Scan kedua di hari yang sama = conflict, bukan overwrite.
// ===============================
func (ctl *AttendanceController) Scan(c *fiber.Ctx) error {
	var req attDTO.ScanAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var student studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&student, "student_qr_token = ?", req.QRToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kartu QR tidak dikenali")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if student.StudentClassID == nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Santri belum terdaftar di kelas manapun")
	}

	now := time.Now().In(ctl.Loc)
	m := attModel.AttendanceModel{
		AttendanceStudentID: student.StudentID,
		AttendanceClassID:   *student.StudentClassID,
		AttendanceDate:      dbtime.DateOf(now, ctl.Loc),
		AttendanceStatus:    constants.AttendanceHadir,
		AttendanceTime:      &now,
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Sudah absen hari ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Absen berhasil: "+student.StudentName, m)
}

// ===============================
// DELETE /api/attendance/:id
// ===============================
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Delete(&attModel.AttendanceModel{}, "attendance_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Absensi tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Absensi dihapus", fiber.Map{"attendance_id": id})
}

// ===============================
// DELETE /api/attendance/reset?date=&class_id=
// Reset satu hari (per kelas, atau semua kelas kalau class_id kosong)
// ===============================
func (ctl *AttendanceController) ResetDay(c *fiber.Ctx) error {
	dateStr := strings.TrimSpace(c.Query("date"))
	if dateStr == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date wajib diisi (YYYY-MM-DD)")
	}
	d, err := dbtime.ParseDate(dateStr, ctl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date invalid format, expected YYYY-MM-DD")
	}

	tx := ctl.DB.WithContext(c.UserContext()).Where("attendance_date = ?", dbtime.DateString(d))
	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id bukan UUID")
		}
		tx = tx.Where("attendance_class_id = ?", id)
	}

	res := tx.Delete(&attModel.AttendanceModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	return helper.JsonDeleted(c, "Absensi satu hari dihapus", fiber.Map{
		"date":    dbtime.DateString(d),
		"deleted": res.RowsAffected,
	})
}
