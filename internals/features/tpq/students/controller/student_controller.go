package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	classModel "tpqku_backend/internals/features/tpq/classes/model"
	studentDTO "tpqku_backend/internals/features/tpq/students/dto"
	studentModel "tpqku_backend/internals/features/tpq/students/model"

	helper "tpqku_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validator: validator.New()}
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Pastikan kelas target ada (kalau diset)
func (ctl *StudentController) ensureClassExists(c *fiber.Ctx, classID *uuid.UUID) error {
	if classID == nil {
		return nil
	}
	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&classModel.ClassModel{}).
		Where("class_id = ?", *classID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Kelas tujuan tidak ditemukan")
	}
	return nil
}

// ===============================
// GET /api/students (?class_id= &enrolled_only= &q= + paging)
// ===============================
func (ctl *StudentController) List(c *fiber.Ctx) error {
	var q studentDTO.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	tx := ctl.DB.WithContext(c.UserContext()).Model(&studentModel.StudentModel{})
	if q.ClassID != nil && strings.TrimSpace(*q.ClassID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*q.ClassID))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id bukan UUID")
		}
		tx = tx.Where("student_class_id = ?", id)
	}
	if q.EnrolledOnly {
		tx = tx.Where("student_class_id IS NOT NULL")
	}
	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		like := "%" + strings.TrimSpace(*q.Search) + "%"
		tx = tx.Where("student_name ILIKE ? OR student_nis ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var rows []studentModel.StudentModel
	if err := tx.Order("student_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// ===============================
// GET /api/students/:id
// ===============================
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}
	var m studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", m)
}

// ===============================
// POST /api/students
// ===============================
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if err := ctl.ensureClassExists(c, req.StudentClassID); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIS sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Santri ditambahkan", m)
}

// ===============================
// PATCH /api/students/:id
// ===============================
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if req.SetClass {
		if err := ctl.ensureClassExists(c, req.StudentClassID); err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	var m studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyPatch(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIS sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Data santri diperbarui", m)
}

// ===============================
// POST /api/students/:id/regenerate-qr
// Kartu hilang → token lama hangus, cetak kartu baru
// ===============================
func (ctl *StudentController) RegenerateQR(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	var m studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m.StudentQRToken = uuid.New()
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Token QR diperbarui", fiber.Map{
		"student_id":       m.StudentID,
		"student_qr_token": m.StudentQRToken,
	})
}

// ===============================
// DELETE /api/students/:id
// ===============================
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&studentModel.StudentModel{}, "student_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Santri dihapus", fiber.Map{"student_id": id})
}
