package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	journalDTO "tpqku_backend/internals/features/academics/journals/dto"
	journalModel "tpqku_backend/internals/features/academics/journals/model"

	helper "tpqku_backend/internals/helpers"
	"tpqku_backend/internals/helpers/dbtime"
)

type JournalController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Loc       *time.Location
}

func NewJournalController(db *gorm.DB, loc *time.Location) *JournalController {
	return &JournalController{DB: db, Validator: validator.New(), Loc: loc}
}

// GET /api/journals (?class_id= &teacher_id= &date_from= &date_to= + paging)
func (ctl *JournalController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).Model(&journalModel.JournalModel{})

	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id bukan UUID")
		}
		tx = tx.Where("journal_class_id = ?", id)
	}
	if tid := strings.TrimSpace(c.Query("teacher_id")); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id bukan UUID")
		}
		tx = tx.Where("journal_teacher_id = ?", id)
	}
	if from := strings.TrimSpace(c.Query("date_from")); from != "" {
		d, err := dbtime.ParseDate(from, ctl.Loc)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("journal_date >= ?", dbtime.DateString(d))
	}
	if to := strings.TrimSpace(c.Query("date_to")); to != "" {
		d, err := dbtime.ParseDate(to, ctl.Loc)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("journal_date <= ?", dbtime.DateString(d))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var rows []journalModel.JournalModel
	if err := tx.Order("journal_date DESC, journal_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// POST /api/journals
func (ctl *JournalController) Create(c *fiber.Ctx) error {
	var req journalDTO.CreateJournalRequest
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
	return helper.JsonCreated(c, "Jurnal tersimpan", m)
}

// PATCH /api/journals/:id
func (ctl *JournalController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	var req journalDTO.UpdateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var m journalModel.JournalModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "journal_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jurnal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyPatch(&m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Jurnal diperbarui", m)
}

// DELETE /api/journals/:id
func (ctl *JournalController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&journalModel.JournalModel{}, "journal_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jurnal tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Jurnal dihapus", fiber.Map{"journal_id": id})
}
