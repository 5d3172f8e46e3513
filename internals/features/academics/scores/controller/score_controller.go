package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scoreDTO "tpqku_backend/internals/features/academics/scores/dto"
	scoreModel "tpqku_backend/internals/features/academics/scores/model"

	helper "tpqku_backend/internals/helpers"
)

type ScoreController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Loc       *time.Location
}

func NewScoreController(db *gorm.DB, loc *time.Location) *ScoreController {
	return &ScoreController{DB: db, Validator: validator.New(), Loc: loc}
}

// GET /api/scores (?student_id= &class_id= &subject= + paging)
func (ctl *ScoreController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).Model(&scoreModel.ScoreModel{})

	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id bukan UUID")
		}
		tx = tx.Where("score_student_id = ?", id)
	}
	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id bukan UUID")
		}
		tx = tx.Where("score_class_id = ?", id)
	}
	if sub := strings.TrimSpace(c.Query("subject")); sub != "" {
		tx = tx.Where("score_subject ILIKE ?", sub)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var rows []scoreModel.ScoreModel
	if err := tx.Order("score_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/scores/report/:student_id — nilai dikelompokkan per mapel
func (ctl *ScoreController) Report(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id bukan UUID")
	}

	var rows []scoreModel.ScoreModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("score_student_id = ?", id).
		Order("score_date ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "", scoreDTO.BuildStudentReport(id, rows))
}

// POST /api/scores
func (ctl *ScoreController) Create(c *fiber.Ctx) error {
	var req scoreDTO.CreateScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m, err := req.ToModel(ctl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Nilai tersimpan", m)
}

// PATCH /api/scores/:id
func (ctl *ScoreController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	var req scoreDTO.UpdateScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m scoreModel.ScoreModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "score_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Nilai tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyPatch(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Nilai diperbarui", m)
}

// DELETE /api/scores/:id
func (ctl *ScoreController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&scoreModel.ScoreModel{}, "score_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Nilai tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Nilai dihapus", fiber.Map{"score_id": id})
}
