package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	infaqDTO "tpqku_backend/internals/features/finance/infaq/dto"
	infaqModel "tpqku_backend/internals/features/finance/infaq/model"
	infaqService "tpqku_backend/internals/features/finance/infaq/service"

	helper "tpqku_backend/internals/helpers"
	"tpqku_backend/internals/helpers/dbtime"
)

type InfaqController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Loc       *time.Location
}

func NewInfaqController(db *gorm.DB, loc *time.Location) *InfaqController {
	return &InfaqController{DB: db, Validator: validator.New(), Loc: loc}
}

// GET /api/infaq (?month=&year=&type= + paging)
func (ctl *InfaqController) List(c *fiber.Ctx) error {
	now := time.Now().In(ctl.Loc)
	month := c.QueryInt("month", int(now.Month())-1) // 0-indexed
	year := c.QueryInt("year", now.Year())
	if month < 0 || month > 11 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month harus 0..11 (0 = Januari)")
	}

	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, ctl.Loc)
	next := start.AddDate(0, 1, 0)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&infaqModel.InfaqModel{}).
		Where("infaq_date >= ? AND infaq_date < ?", dbtime.DateString(start), dbtime.DateString(next))

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if t != string(infaqModel.InfaqMasuk) && t != string(infaqModel.InfaqKeluar) {
			return helper.JsonError(c, fiber.StatusBadRequest, "type harus masuk/keluar")
		}
		tx = tx.Where("infaq_type = ?", t)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var rows []infaqModel.InfaqModel
	if err := tx.Order("infaq_date DESC, infaq_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/infaq/summary?month=&year= — total masuk/keluar/saldo (hanya yang paid)
func (ctl *InfaqController) Summary(c *fiber.Ctx) error {
	now := time.Now().In(ctl.Loc)
	month := c.QueryInt("month", int(now.Month())-1)
	year := c.QueryInt("year", now.Year())
	if month < 0 || month > 11 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month harus 0..11 (0 = Januari)")
	}

	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, ctl.Loc)
	next := start.AddDate(0, 1, 0)

	type row struct {
		InfaqType string
		Total     int64
	}
	var rows []row
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&infaqModel.InfaqModel{}).
		Select("infaq_type, COALESCE(SUM(infaq_amount), 0) AS total").
		Where("infaq_status = ?", infaqModel.InfaqPaid).
		Where("infaq_date >= ? AND infaq_date < ?", dbtime.DateString(start), dbtime.DateString(next)).
		Group("infaq_type").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	sum := infaqDTO.MonthlySummary{Month: month, Year: year}
	for _, r := range rows {
		switch infaqModel.InfaqType(r.InfaqType) {
		case infaqModel.InfaqMasuk:
			sum.Masuk = r.Total
		case infaqModel.InfaqKeluar:
			sum.Keluar = r.Total
		}
	}
	sum.Saldo = sum.Masuk - sum.Keluar

	return helper.JsonOK(c, "", sum)
}

// POST /api/infaq — entri kas manual (langsung paid)
func (ctl *InfaqController) Create(c *fiber.Ctx) error {
	var req infaqDTO.CreateInfaqRequest
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
	return helper.JsonCreated(c, "Entri infaq tersimpan", m)
}

// POST /api/public/infaq/pay — buat transaksi Snap, entri pending dulu
func (ctl *InfaqController) Pay(c *fiber.Ctx) error {
	var req infaqDTO.PayInfaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	now := time.Now().In(ctl.Loc)
	orderID := fmt.Sprintf("INFAQ-%s", uuid.New().String())
	m := infaqModel.InfaqModel{
		InfaqDate:        dbtime.DateOf(now, ctl.Loc),
		InfaqType:        infaqModel.InfaqMasuk,
		InfaqAmount:      req.InfaqAmount,
		InfaqStudentID:   req.InfaqStudentID,
		InfaqDescription: req.InfaqDescription,
		InfaqOrderID:     &orderID,
		InfaqStatus:      infaqModel.InfaqPending,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := infaqService.GenerateSnapToken(m, req.DonorName, req.DonorEmail)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi Midtrans: "+err.Error())
	}

	return helper.JsonCreated(c, "Transaksi infaq dibuat", fiber.Map{
		"infaq_id":   m.InfaqID,
		"order_id":   orderID,
		"snap_token": token,
	})
}

// POST /api/public/infaq/notification — webhook status Midtrans
func (ctl *InfaqController) Notification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := infaqService.HandleInfaqStatusWebhook(ctl.DB.WithContext(c.UserContext()), body); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Notifikasi diproses", nil)
}

// DELETE /api/infaq/:id
func (ctl *InfaqController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id bukan UUID")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&infaqModel.InfaqModel{}, "infaq_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Entri infaq tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Entri infaq dihapus", fiber.Map{"infaq_id": id})
}
