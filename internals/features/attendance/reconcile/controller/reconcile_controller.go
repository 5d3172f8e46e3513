package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tpqku_backend/internals/features/attendance/reconcile/service"
	helper "tpqku_backend/internals/helpers"
)

type ReconcileController struct {
	Service *service.ReconcileService
}

func NewReconcileController(svc *service.ReconcileService) *ReconcileController {
	return &ReconcileController{Service: svc}
}

// =========================================================
// GET /api/cron/auto-alpha
// Dipanggil scheduler eksternal tiap hari (setelah jam mengaji selesai).
// CronAuth sudah memverifikasi bearer secret sebelum sampai sini.
// =========================================================
func (ctl *ReconcileController) AutoAlpha(c *fiber.Ctx) error {
	res, err := ctl.Service.AutoAlphaToday(c.UserContext())
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAttendance) {
			// ada tulisan manual menyelip antara read dan insert
			return helper.JsonError(c, fiber.StatusConflict, "Bentrok dengan penulisan absensi lain, jalankan ulang job")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	msg := fmt.Sprintf("%d santri ditandai Alpha", res.Marked)
	if res.Marked == 0 {
		msg = "Semua santri sudah punya catatan absensi hari ini, tidak ada yang ditandai"
	}
	return helper.JsonOK(c, msg, res)
}

// =========================================================
// GET /api/attendance/fill-past-alpha?month=&year=
// month 0-indexed (0 = Januari) mengikuti konvensi frontend;
// keduanya opsional, default bulan & tahun berjalan.
// =========================================================
func (ctl *ReconcileController) FillPastAlpha(c *fiber.Ctx) error {
	month, year := ctl.Service.CurrentMonthYear()

	// parse manual: ?month=abc harus ditolak, bukan diam-diam jatuh ke default
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "month harus 0..11 (0 = Januari)")
		}
		month = v
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "year tidak masuk akal")
		}
		year = v
	}

	if month < 0 || month > 11 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month harus 0..11 (0 = Januari)")
	}
	if year < 2000 || year > 2100 {
		return helper.JsonError(c, fiber.StatusBadRequest, "year tidak masuk akal")
	}

	res, err := ctl.Service.FillPastAlpha(c.UserContext(), month, year)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"mode":    "fill-past-alpha",
		"month":   res.Month,
		"year":    res.Year,
		"total":   res.Total,
		"log":     res.Log,
	})
}
