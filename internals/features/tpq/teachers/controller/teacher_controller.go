package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	teacherDTO "tpqku_backend/internals/features/tpq/teachers/dto"
	teacherModel "tpqku_backend/internals/features/tpq/teachers/model"

	helper "tpqku_backend/internals/helpers"
)

type TeacherController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db, Validator: validator.New()}
}

// GET /api/teachers (?active=true)
func (ctl *TeacherController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).Model(&teacherModel.TeacherModel{})
	if strings.EqualFold(c.Query("active"), "true") {
		tx = tx.Where("teacher_is_active = TRUE")
	}

	var rows []teacherModel.TeacherModel
	if err := tx.Order("teacher_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}

// POST /api/teachers
func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	var req teacherDTO.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Ustadz/ustadzah ditambahkan", m)
}

// PATCH /api/teachers/:id
func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	var req teacherDTO.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m teacherModel.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Guru tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyPatch(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Data guru diperbarui", m)
}

// DELETE /api/teachers/:id
func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&teacherModel.TeacherModel{}, "teacher_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Guru tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Guru dihapus", fiber.Map{"teacher_id": id})
}
